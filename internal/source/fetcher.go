package source

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shenikar/disaster_alert_system/internal/models"
	"github.com/shenikar/disaster_alert_system/internal/observability"
	"github.com/sirupsen/logrus"
)

// Fetcher опрашивает все адаптеры параллельно. Каждый вызов получает
// собственный таймаут, поэтому медленный провайдер не задерживает остальных,
// а упавший провайдер вносит пустой вклад и не влияет на чужие результаты.
type Fetcher struct {
	adapters []Adapter
	timeout  time.Duration
	logger   *logrus.Logger
	metrics  *observability.Metrics
}

// NewFetcher создает Fetcher поверх набора адаптеров
func NewFetcher(adapters []Adapter, timeout time.Duration, logger *logrus.Logger, metrics *observability.Metrics) *Fetcher {
	return &Fetcher{
		adapters: adapters,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}
}

// FetchAll собирает сырые тревоги от всех адаптеров. Возвращается после
// того, как каждый адаптер либо ответил, либо исчерпал таймаут. Порядок
// результата фиксирован порядком регистрации адаптеров, чтобы последующая
// обработка была воспроизводимой.
func (f *Fetcher) FetchAll(ctx context.Context) []models.RawAlert {
	results := make([][]models.RawAlert, len(f.adapters))

	var wg sync.WaitGroup
	for i, adapter := range f.adapters {
		wg.Add(1)
		go func(i int, adapter Adapter) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()

			alerts, err := adapter.Fetch(fetchCtx)
			if err != nil {
				f.observeFailure(adapter.Name(), fetchCtx, err)
				return
			}

			f.logger.WithFields(logrus.Fields{
				"source": adapter.Name(),
				"count":  len(alerts),
			}).Debug("Source fetch completed")
			if f.metrics != nil {
				f.metrics.SourceFetches.WithLabelValues(adapter.Name(), "success").Inc()
				f.metrics.SourceAlerts.WithLabelValues(adapter.Name()).Add(float64(len(alerts)))
			}
			results[i] = alerts
		}(i, adapter)
	}
	wg.Wait()

	merged := make([]models.RawAlert, 0)
	for _, part := range results {
		merged = append(merged, part...)
	}
	return merged
}

// observeFailure логирует и считает сбой источника. Отсутствие учетных
// данных - не авария, источник просто молчит.
func (f *Fetcher) observeFailure(name string, ctx context.Context, err error) {
	outcome := "error"
	switch {
	case errors.Is(err, ErrNoAPIKey):
		f.logger.WithField("source", name).Debug("Source skipped: no credentials configured")
		return
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		outcome = "timeout"
	}

	f.logger.WithError(err).WithField("source", name).Warn("Source fetch failed, contributing empty result")
	if f.metrics != nil {
		f.metrics.SourceFetches.WithLabelValues(name, outcome).Inc()
	}
}
