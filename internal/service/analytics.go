package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/disaster_alert_system/internal/analysis"
	"github.com/shenikar/disaster_alert_system/internal/config"
	"github.com/shenikar/disaster_alert_system/internal/models"
	"github.com/shenikar/disaster_alert_system/internal/observability"
	"github.com/shenikar/disaster_alert_system/internal/recommend"
	"github.com/sirupsen/logrus"
)

const (
	dashboardCacheKey = "analytics:dashboard"
	dashboardCacheTTL = 30 * time.Second
	// Радиус сопоставления внешних и локальных тревог, градусы
	correlationRadius = 0.02
)

// DashboardSummary - агрегированный срез состояния для панели мониторинга
type DashboardSummary struct {
	TotalAlerts       int                     `json:"total_alerts"`
	ExternalAlerts    int                     `json:"external_alerts"`
	RecentAlerts24h   int                     `json:"recent_alerts_24h"`
	HighSeverity      int                     `json:"high_severity"`
	AverageSeverity   float64                 `json:"average_severity"`
	SeverityBreakdown map[int]int             `json:"severity_breakdown"`
	Risk              analysis.RiskAssessment `json:"risk"`
	Trend             analysis.TrendResult    `json:"trend"`
	HourlyPeak        string                  `json:"hourly_peak,omitempty"`
	GeneratedAt       time.Time               `json:"generated_at"`
}

// Correlation - одна обнаруженная связь между событиями
type Correlation struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Source      string  `json:"source,omitempty"`
	Count       int     `json:"count"`
	Confidence  float64 `json:"confidence"`
}

// CorrelationReport - сводка временных и географических закономерностей
type CorrelationReport struct {
	TemporalPattern    string              `json:"temporal_pattern,omitempty"`
	GeographicClusters []*analysis.Cluster `json:"geographic_clusters"`
	Correlations       []Correlation       `json:"correlations"`
	GeneratedAt        time.Time           `json:"generated_at"`
}

// AnalyticsService определяет контракт аналитической поверхности
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*DashboardSummary, error)
	AssessRisk(ctx context.Context) (analysis.RiskAssessment, error)
	Correlations(ctx context.Context) (*CorrelationReport, error)
	Recommend(ctx context.Context, role recommend.Role, location *recommend.Location) (recommend.Recommendation, error)
	ListAlerts(ctx context.Context, limit int) ([]*models.Alert, error)
	ListShelters(ctx context.Context) ([]*models.Shelter, error)
}

type analyticsService struct {
	alerts   AlertRepository
	shelters ShelterRepository
	logger   *logrus.Logger
	cfg      *config.Config
	clock    clockwork.Clock
	metrics  *observability.Metrics
}

func NewAnalyticsService(alerts AlertRepository, shelters ShelterRepository, logger *logrus.Logger, cfg *config.Config, clock clockwork.Clock, metrics *observability.Metrics) AnalyticsService {
	return &analyticsService{
		alerts:   alerts,
		shelters: shelters,
		logger:   logger,
		cfg:      cfg,
		clock:    clock,
		metrics:  metrics,
	}
}

// snapshot загружает срез тревог в стабильном порядке по времени создания.
// Порядок важен: кластеризация зависит от порядка обхода.
func (s *analyticsService) snapshot(ctx context.Context) ([]*models.Alert, error) {
	alerts, err := s.alerts.ListAll(ctx, s.cfg.SnapshotLimit)
	if err != nil {
		return nil, fmt.Errorf("service: could not load alert snapshot: %w", err)
	}

	// Битые записи исключаются из среза, но не валят анализ
	valid := alerts[:0]
	for _, alert := range alerts {
		if alert == nil || alert.Title == "" {
			s.logger.WithField("service", "analytics").Warn("Skipping malformed alert record in snapshot")
			continue
		}
		valid = append(valid, alert)
	}
	return valid, nil
}

func (s *analyticsService) observe(op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.AnalysisDuration.WithLabelValues(op).Observe(s.clock.Since(start).Seconds())
	}
}

// Dashboard собирает сводку панели мониторинга с коротким кешем в Redis
func (s *analyticsService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  "Dashboard",
	})
	start := s.clock.Now()
	defer s.observe("dashboard", start)

	if cached, err := s.alerts.GetCache(ctx, dashboardCacheKey); err != nil {
		log.WithError(err).Warn("Failed to read dashboard cache")
	} else if cached != nil {
		var summary DashboardSummary
		if err := json.Unmarshal(cached, &summary); err == nil {
			log.Debug("Dashboard served from cache")
			return &summary, nil
		}
		log.Warn("Discarding malformed dashboard cache entry")
	}

	alerts, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	summary := s.buildDashboard(alerts)

	if payload, err := json.Marshal(summary); err == nil {
		if err := s.alerts.SetCache(ctx, dashboardCacheKey, payload, dashboardCacheTTL); err != nil {
			log.WithError(err).Warn("Failed to write dashboard cache")
		}
	}

	log.WithField("total_alerts", summary.TotalAlerts).Info("Dashboard summary generated")
	return summary, nil
}

func (s *analyticsService) buildDashboard(alerts []*models.Alert) *DashboardSummary {
	now := s.clock.Now().UTC()

	external := 0
	for _, a := range alerts {
		if a.IsExternal() {
			external++
		}
	}

	clusters := analysis.ClusterAlerts(alerts, s.cfg.ClusterRadiusDegrees)
	trend := analysis.AnalyzeTrend(alerts, s.cfg.TrendWindowDays)
	risk := analysis.ScoreRisk(alerts, clusters, trend, external)

	return &DashboardSummary{
		TotalAlerts:       len(alerts),
		ExternalAlerts:    external,
		RecentAlerts24h:   analysis.RecentCount(alerts, now.Add(-24*time.Hour)),
		HighSeverity:      analysis.CountHighSeverity(alerts),
		AverageSeverity:   analysis.AverageSeverity(alerts),
		SeverityBreakdown: analysis.SeverityHistogram(alerts),
		Risk:              risk,
		Trend:             trend,
		HourlyPeak:        analysis.HourlyPeak(alerts),
		GeneratedAt:       now,
	}
}

// AssessRisk считает оценку риска по текущему срезу без кеша
func (s *analyticsService) AssessRisk(ctx context.Context) (analysis.RiskAssessment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  "AssessRisk",
	})
	start := s.clock.Now()
	defer s.observe("risk", start)

	alerts, err := s.snapshot(ctx)
	if err != nil {
		return analysis.RiskAssessment{}, err
	}

	external := 0
	for _, a := range alerts {
		if a.IsExternal() {
			external++
		}
	}

	clusters := analysis.ClusterAlerts(alerts, s.cfg.ClusterRadiusDegrees)
	trend := analysis.AnalyzeTrend(alerts, s.cfg.TrendWindowDays)
	risk := analysis.ScoreRisk(alerts, clusters, trend, external)

	log.WithFields(logrus.Fields{
		"level": risk.Level,
		"score": risk.Score,
	}).Info("Risk assessment generated")
	return risk, nil
}

// Correlations ищет временные и географические закономерности в срезе
func (s *analyticsService) Correlations(ctx context.Context) (*CorrelationReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  "Correlations",
	})
	start := s.clock.Now()
	defer s.observe("correlation", start)

	alerts, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := &CorrelationReport{
		TemporalPattern:    analysis.HourlyPeak(alerts),
		GeographicClusters: analysis.ClusterAlerts(alerts, s.cfg.ClusterRadiusDegrees),
		Correlations:       []Correlation{},
		GeneratedAt:        s.clock.Now().UTC(),
	}

	for _, c := range report.GeographicClusters {
		report.Correlations = append(report.Correlations, Correlation{
			Type:        "geographic",
			Description: fmt.Sprintf("%d alerts clustered around (%.4f, %.4f)", len(c.Alerts), c.CenterLat, c.CenterLon),
			Count:       len(c.Alerts),
			Confidence:  0.8,
		})
	}

	report.Correlations = append(report.Correlations, s.crossSourceMatches(alerts)...)

	log.WithField("correlations", len(report.Correlations)).Info("Correlation report generated")
	return report, nil
}

// crossSourceMatches сопоставляет внешние тревоги локальным в радиусе
// correlationRadius: совпадение подтверждает локальное событие внешними данными
func (s *analyticsService) crossSourceMatches(alerts []*models.Alert) []Correlation {
	locals := make([]*models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if !a.IsExternal() {
			locals = append(locals, a)
		}
	}

	bySource := make(map[string]int)
	for _, ext := range alerts {
		if !ext.IsExternal() {
			continue
		}
		if len(analysis.Nearby(locals, ext.Latitude, ext.Longitude, correlationRadius)) > 0 {
			bySource[ext.Source]++
		}
	}

	out := make([]Correlation, 0, len(bySource))
	for source, count := range bySource {
		out = append(out, Correlation{
			Type:        "cross_source",
			Description: fmt.Sprintf("%d external alerts from %s confirm nearby local reports", count, source),
			Source:      source,
			Count:       count,
			Confidence:  0.7,
		})
	}
	return out
}

// Recommend строит рекомендации для роли на основе текущего среза
func (s *analyticsService) Recommend(ctx context.Context, role recommend.Role, location *recommend.Location) (recommend.Recommendation, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  "Recommend",
		"role":    role,
	})
	start := s.clock.Now()
	defer s.observe("recommend", start)

	alerts, err := s.snapshot(ctx)
	if err != nil {
		return recommend.Recommendation{}, err
	}
	shelters, err := s.shelters.ListAll(ctx)
	if err != nil {
		return recommend.Recommendation{}, fmt.Errorf("service: could not load shelters: %w", err)
	}

	clusters := analysis.ClusterAlerts(alerts, s.cfg.ClusterRadiusDegrees)
	rec := recommend.Build(role, alerts, clusters, shelters, location)
	log.WithFields(logrus.Fields{
		"items":    len(rec.Items),
		"priority": rec.Priority,
	}).Info("Recommendations generated")
	return rec, nil
}

// ListAlerts возвращает последние тревоги для API
func (s *analyticsService) ListAlerts(ctx context.Context, limit int) ([]*models.Alert, error) {
	if limit <= 0 || limit > s.cfg.SnapshotLimit {
		limit = s.cfg.SnapshotLimit
	}
	alerts, err := s.alerts.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	return alerts, nil
}

// ListShelters возвращает все известные убежища
func (s *analyticsService) ListShelters(ctx context.Context) ([]*models.Shelter, error) {
	shelters, err := s.shelters.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list shelters: %w", err)
	}
	return shelters, nil
}
