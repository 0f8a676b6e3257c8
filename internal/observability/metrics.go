package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics хранит счетчики и гистограммы Prometheus для конвейера тревог
type Metrics struct {
	SourceFetches *prometheus.CounterVec // labels: source, outcome={success,error,timeout}
	SourceAlerts  *prometheus.CounterVec // labels: source

	AlertsIngested     prometheus.Counter
	AlertsDeduplicated prometheus.Counter
	IngestFailures     prometheus.Counter

	AnalysisDuration *prometheus.HistogramVec // labels: analysis={dashboard,risk,correlation,recommendation}

	NotificationsQueued    prometheus.Counter
	NotificationsDelivered prometheus.Counter
	NotificationsFailed    prometheus.Counter
}

// NewMetrics создает все метрики и регистрирует их в реестре Prometheus по умолчанию
func NewMetrics() *Metrics {
	m := &Metrics{
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "source_fetches_total",
			Help:      "Total fetch attempts per external source.",
		}, []string{"source", "outcome"}),
		SourceAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "source_alerts_total",
			Help:      "Total raw alerts produced per external source.",
		}, []string{"source"}),
		AlertsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "alerts_ingested_total",
			Help:      "Total alerts persisted by the ingestion path.",
		}),
		AlertsDeduplicated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "alerts_deduplicated_total",
			Help:      "Total candidates dropped because a record with the same title exists.",
		}),
		IngestFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "ingest_failures_total",
			Help:      "Total candidates that failed to persist due to store errors.",
		}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "disaster_alerts",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a full analysis computation over the alert snapshot.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"analysis"}),
		NotificationsQueued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "notifications_queued_total",
			Help:      "Total notification events pushed to the dispatch queue.",
		}),
		NotificationsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "notifications_delivered_total",
			Help:      "Total notification events delivered to the dispatch endpoint.",
		}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_alerts",
			Name:      "notifications_failed_total",
			Help:      "Total notification events dropped after exhausting retries.",
		}),
	}

	prometheus.MustRegister(
		m.SourceFetches,
		m.SourceAlerts,
		m.AlertsIngested,
		m.AlertsDeduplicated,
		m.IngestFailures,
		m.AnalysisDuration,
		m.NotificationsQueued,
		m.NotificationsDelivered,
		m.NotificationsFailed,
	)
	return m
}
