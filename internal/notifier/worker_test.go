package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_alert_system/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(cfg *config.Config) *Worker {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	return &Worker{
		logger: logger,
		cfg:    cfg,
		httpClient: &http.Client{
			Timeout: time.Second,
		},
	}
}

func testEvent() AlertEvent {
	return AlertEvent{
		AlertID:   uuid.New(),
		Title:     "Severe Storm Alert",
		Severity:  4,
		Latitude:  14.625,
		Longitude: -90.525,
		Source:    "OPEN_METEO",
		CreatedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestDeliver_SignsPayloadWithHMAC(t *testing.T) {
	// Подготовка
	var gotSignature string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get("X-Notification-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		NotifyURL:        server.URL,
		NotifySecret:     "top-secret",
		NotifyMaxRetries: 3,
		NotifyBaseDelay:  time.Millisecond,
	})

	event := testEvent()
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	// Действие
	worker.deliver(context.Background(), event, string(payload))

	// Проверки
	assert.Equal(t, generateHMACSHA256(string(payload), "top-secret"), gotSignature)
	assert.JSONEq(t, string(payload), string(gotBody))
}

func TestDeliver_NoSignatureWithoutSecret(t *testing.T) {
	// Подготовка
	var hasSignature bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasSignature = r.Header["X-Notification-Signature"]
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		NotifyURL:        server.URL,
		NotifyMaxRetries: 3,
		NotifyBaseDelay:  time.Millisecond,
	})

	// Действие
	worker.deliver(context.Background(), testEvent(), `{"severity":4}`)

	// Проверки
	assert.False(t, hasSignature)
}

func TestDeliver_RetriesOnServerError(t *testing.T) {
	// Подготовка: первая попытка падает, вторая проходит
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		NotifyURL:        server.URL,
		NotifyMaxRetries: 3,
		NotifyBaseDelay:  time.Millisecond,
	})

	// Действие
	worker.deliver(context.Background(), testEvent(), `{"severity":4}`)

	// Проверки
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestDeliver_GivesUpAfterMaxRetries(t *testing.T) {
	// Подготовка
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		NotifyURL:        server.URL,
		NotifyMaxRetries: 2,
		NotifyBaseDelay:  time.Millisecond,
	})

	// Действие
	worker.deliver(context.Background(), testEvent(), `{"severity":4}`)

	// Проверки
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestDeliver_SkipsWhenURLUnconfigured(t *testing.T) {
	// Подготовка
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
	}))
	defer server.Close()

	worker := newTestWorker(&config.Config{
		NotifyMaxRetries: 3,
		NotifyBaseDelay:  time.Millisecond,
	})

	// Действие
	worker.deliver(context.Background(), testEvent(), `{"severity":4}`)

	// Проверки
	assert.Equal(t, int32(0), atomic.LoadInt32(&attempts))
}

func TestGenerateHMACSHA256_Deterministic(t *testing.T) {
	first := generateHMACSHA256(`{"alert_id":"abc"}`, "secret")
	second := generateHMACSHA256(`{"alert_id":"abc"}`, "secret")
	other := generateHMACSHA256(`{"alert_id":"abc"}`, "another-secret")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64) // hex от SHA-256
}
