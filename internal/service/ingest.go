package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/disaster_alert_system/internal/config"
	"github.com/shenikar/disaster_alert_system/internal/models"
	"github.com/shenikar/disaster_alert_system/internal/notifier"
	"github.com/shenikar/disaster_alert_system/internal/observability"
	"github.com/sirupsen/logrus"
)

// AlertRepository определяет контракт для работы с хранилищем тревог
type AlertRepository interface {
	// CreateIfAbsent атомарно вставляет тревогу, если ее title свободен.
	// Возвращает false без ошибки для дубликата.
	CreateIfAbsent(ctx context.Context, alert *models.Alert) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Alert, error)
	ListAll(ctx context.Context, limit int) ([]*models.Alert, error)
	GetCache(ctx context.Context, key string) ([]byte, error)
	SetCache(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ShelterRepository определяет контракт для работы с хранилищем убежищ
type ShelterRepository interface {
	ListAll(ctx context.Context) ([]*models.Shelter, error)
}

// SourceFetcher собирает сырые тревоги со всех внешних источников
type SourceFetcher interface {
	FetchAll(ctx context.Context) []models.RawAlert
}

// RefreshReport - итог одного раунда опроса источников
type RefreshReport struct {
	Fetched    int `json:"fetched"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Failed     int `json:"failed"`
}

// IngestService определяет контракт конвейера приема тревог
type IngestService interface {
	// SubmitAlert принимает локальную тревогу через API.
	// Возвращает false для дубликата по title.
	SubmitAlert(ctx context.Context, alert *models.Alert) (bool, error)
	// Ingest нормализует кандидатов и вставляет только новые.
	// Возвращает фактически сохраненные записи.
	Ingest(ctx context.Context, candidates []models.RawAlert) ([]*models.Alert, error)
	// RefreshSources выполняет раунд опрос-и-прием по всем источникам
	RefreshSources(ctx context.Context) (*RefreshReport, error)
}

type ingestService struct {
	repo      AlertRepository
	fetcher   SourceFetcher
	publisher notifier.Publisher
	logger    *logrus.Logger
	cfg       *config.Config
	metrics   *observability.Metrics
}

func NewIngestService(repo AlertRepository, fetcher SourceFetcher, publisher notifier.Publisher, logger *logrus.Logger, cfg *config.Config, metrics *observability.Metrics) IngestService {
	return &ingestService{
		repo:      repo,
		fetcher:   fetcher,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		metrics:   metrics,
	}
}

// SubmitAlert принимает внешнюю подачу тревоги тем же путем, что и адаптеры
func (s *ingestService) SubmitAlert(ctx context.Context, alert *models.Alert) (bool, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "ingest",
		"method":  "SubmitAlert",
		"title":   alert.Title,
	})
	log.Info("Attempting to submit a new alert")

	if alert.Source == "" {
		alert.Source = models.SourceLocal
	}
	candidate := models.RawAlert{
		Title:       alert.Title,
		Description: alert.Description,
		Severity:    alert.Severity,
		Latitude:    alert.Latitude,
		Longitude:   alert.Longitude,
		Source:      alert.Source,
	}

	persisted, err := s.Ingest(ctx, []models.RawAlert{candidate})
	if err != nil {
		return false, fmt.Errorf("service: could not submit alert: %w", err)
	}
	if len(persisted) == 0 {
		log.Info("Alert with the same title already exists, submission is a no-op")
		return false, nil
	}

	*alert = *persisted[0]
	log.WithField("alert_id", alert.ID).Info("Alert submitted successfully")
	return true, nil
}

// Ingest обрабатывает кандидатов по одному: нормализация, атомарная проверка
// существования по title, вставка. Частичный успех сохраняется: сбой
// хранилища на одном кандидате не отменяет остальных.
func (s *ingestService) Ingest(ctx context.Context, candidates []models.RawAlert) ([]*models.Alert, error) {
	persisted, _, _, err := s.ingestBatch(ctx, candidates)
	return persisted, err
}

func (s *ingestService) ingestBatch(ctx context.Context, candidates []models.RawAlert) ([]*models.Alert, int, int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "ingest",
		"method":     "Ingest",
		"candidates": len(candidates),
	})

	persisted := make([]*models.Alert, 0, len(candidates))
	duplicates := 0
	var storeErrs []error

	for _, candidate := range candidates {
		alert, ok := s.normalize(candidate)
		if !ok {
			log.WithField("source", candidate.Source).Warn("Skipping malformed candidate without title")
			continue
		}

		inserted, err := s.repo.CreateIfAbsent(ctx, alert)
		if err != nil {
			log.WithError(err).WithField("title", alert.Title).Error("Failed to persist alert candidate")
			if s.metrics != nil {
				s.metrics.IngestFailures.Inc()
			}
			storeErrs = append(storeErrs, fmt.Errorf("candidate %q: %w", alert.Title, err))
			continue
		}
		if !inserted {
			// Дубликат - штатный исход, не ошибка
			duplicates++
			if s.metrics != nil {
				s.metrics.AlertsDeduplicated.Inc()
			}
			continue
		}

		if s.metrics != nil {
			s.metrics.AlertsIngested.Inc()
		}
		persisted = append(persisted, alert)
		s.notify(ctx, alert)
	}

	log.WithField("persisted", len(persisted)).Info("Ingest batch completed")
	if len(storeErrs) > 0 {
		err := fmt.Errorf("service: ingest batch had %d store failures: %w", len(storeErrs), errors.Join(storeErrs...))
		return persisted, duplicates, len(storeErrs), err
	}
	return persisted, duplicates, 0, nil
}

// RefreshSources опрашивает все источники и принимает их тревоги
func (s *ingestService) RefreshSources(ctx context.Context) (*RefreshReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "ingest",
		"method":  "RefreshSources",
	})
	log.Info("Refreshing external sources")

	candidates := s.fetcher.FetchAll(ctx)
	persisted, duplicates, failed, err := s.ingestBatch(ctx, candidates)

	report := &RefreshReport{
		Fetched:    len(candidates),
		Inserted:   len(persisted),
		Duplicates: duplicates,
		Failed:     failed,
	}
	if err != nil {
		log.WithError(err).Error("Source refresh completed with store failures")
		return report, fmt.Errorf("service: refresh sources: %w", err)
	}

	log.WithFields(logrus.Fields{
		"fetched":  report.Fetched,
		"inserted": report.Inserted,
	}).Info("Source refresh completed")
	return report, nil
}

// normalize приводит кандидата к инвариантам канонической записи:
// серьёзность зажимается в 1..4, нулевые координаты заменяются точкой
// по умолчанию. Кандидат без title отбраковывается.
func (s *ingestService) normalize(candidate models.RawAlert) (*models.Alert, bool) {
	title := strings.TrimSpace(candidate.Title)
	if title == "" {
		return nil, false
	}

	severity := candidate.Severity
	if severity < models.SeverityLow {
		severity = models.SeverityLow
	}
	if severity > models.SeverityCritical {
		severity = models.SeverityCritical
	}

	lat, lon := candidate.Latitude, candidate.Longitude
	if lat == 0 && lon == 0 {
		lat, lon = s.cfg.DefaultLatitude, s.cfg.DefaultLongitude
	}

	source := candidate.Source
	if source == "" {
		source = models.SourceLocal
	}

	return &models.Alert{
		Title:       title,
		Description: candidate.Description,
		Severity:    severity,
		Latitude:    lat,
		Longitude:   lon,
		Source:      source,
	}, true
}

// notify ставит событие в очередь диспетчеру. Сбой публикации логируется
// и никогда не проваливает ингест.
func (s *ingestService) notify(ctx context.Context, alert *models.Alert) {
	event := notifier.AlertEvent{
		AlertID:     alert.ID,
		Title:       alert.Title,
		Description: alert.Description,
		Severity:    alert.Severity,
		Latitude:    alert.Latitude,
		Longitude:   alert.Longitude,
		Source:      alert.Source,
		CreatedAt:   alert.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("alert_id", alert.ID).Warn("Failed to queue alert notification")
		return
	}
	if s.metrics != nil {
		s.metrics.NotificationsQueued.Inc()
	}
}
