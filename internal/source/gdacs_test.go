package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/disaster_alert_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGDACSAdapter_SeverityMappingAndWindow(t *testing.T) {
	// Подготовка: фиксированные часы для детерминированного окна в 7 дней
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-03-03", r.URL.Query().Get("fromdate"))
		assert.Equal(t, "2026-03-10", r.URL.Query().Get("todate"))
		assert.Equal(t, "GT", r.URL.Query().Get("country"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"features": [
				{
					"properties": {"eventtype": "EQ", "alertlevel": "Red", "title": "Earthquake", "description": "M6.1"},
					"geometry": {"type": "Point", "coordinates": [-90.53, 14.63]}
				},
				{
					"properties": {"eventtype": "TC", "alertlevel": "Orange", "title": "Cyclone", "description": ""},
					"geometry": {"type": "Polygon", "coordinates": [[[-91.0, 15.0], [-91.1, 15.1]]]}
				},
				{
					"properties": {"eventtype": "FL", "alertlevel": "Purple", "title": "Flood", "description": ""},
					"geometry": {"type": "Unknown", "coordinates": null}
				}
			]
		}`))
	}))
	defer server.Close()

	adapter := NewGDACSAdapter(server.URL, "GT", 14.625, -90.525, time.Second, clock)

	// Действие
	alerts, err := adapter.Fetch(context.Background())

	// Проверки
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	// Point: координаты в порядке lon,lat
	assert.Equal(t, "GDACS: Earthquake", alerts[0].Title)
	assert.Equal(t, models.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, 14.63, alerts[0].Latitude)
	assert.Equal(t, -90.53, alerts[0].Longitude)

	// Polygon: первая вершина первого кольца
	assert.Equal(t, models.SeverityHigh, alerts[1].Severity)
	assert.Equal(t, 15.0, alerts[1].Latitude)
	assert.Equal(t, -91.0, alerts[1].Longitude)

	// Неизвестный уровень и геометрия: умеренная серьёзность, точка по умолчанию
	assert.Equal(t, models.SeverityModerate, alerts[2].Severity)
	assert.Equal(t, 14.625, alerts[2].Latitude)
	assert.Equal(t, -90.525, alerts[2].Longitude)
}

func TestNASAPowerAdapter_HighAverageTemperature(t *testing.T) {
	// Подготовка
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20260208", r.URL.Query().Get("start"))
		assert.Equal(t, "20260310", r.URL.Query().Get("end"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"properties": {"parameter": {"T2M": {"20260308": 31.0, "20260309": 33.0, "20260310": 32.0}}}
		}`))
	}))
	defer server.Close()

	adapter := NewNASAPowerAdapter(server.URL, 14.625, -90.525, time.Second, clock)

	// Действие
	alerts, err := adapter.Fetch(context.Background())

	// Проверки: средняя 32.0 выше порога
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "High Temperature Trend", alerts[0].Title)
	assert.Contains(t, alerts[0].Description, "32.0")
	assert.Equal(t, models.SeverityModerate, alerts[0].Severity)
}

func TestNASAPowerAdapter_NormalTemperatureNoAlerts(t *testing.T) {
	// Подготовка
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"properties": {"parameter": {"T2M": {"20260308": 22.0, "20260309": 24.0}}}
		}`))
	}))
	defer server.Close()

	adapter := NewNASAPowerAdapter(server.URL, 14.625, -90.525, time.Second, clockwork.NewFakeClock())

	// Действие
	alerts, err := adapter.Fetch(context.Background())

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestGoogleAlertsAdapter_PassthroughWithSeverityDefault(t *testing.T) {
	// Подготовка
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"alerts": [
				{"title": "Flood Warning", "description": "river rising", "severity": 3, "coordinates": {"lat": 14.60, "lng": -90.50}},
				{"title": "Advisory", "description": "", "severity": 0, "coordinates": {"lat": 14.61, "lng": -90.51}}
			]
		}`))
	}))
	defer server.Close()

	adapter := NewGoogleAlertsAdapter(server.URL, time.Second)

	// Действие
	alerts, err := adapter.Fetch(context.Background())

	// Проверки: нулевая серьёзность фида заменяется умеренной
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, models.SeverityHigh, alerts[0].Severity)
	assert.Equal(t, models.SeverityModerate, alerts[1].Severity)
	assert.Equal(t, models.SourceGoogle, alerts[0].Source)
}

func TestGoogleAlertsAdapter_UnconfiguredFeed(t *testing.T) {
	adapter := NewGoogleAlertsAdapter("", time.Second)
	alerts, err := adapter.Fetch(context.Background())
	require.ErrorIs(t, err, ErrNoAPIKey)
	assert.Nil(t, alerts)
}
