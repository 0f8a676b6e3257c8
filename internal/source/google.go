package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shenikar/disaster_alert_system/internal/models"
)

// GoogleAlertsAdapter читает настроенный фид тревог (формат Google alerts).
// Фид уже содержит готовые тревоги, адаптер только переносит поля.
type GoogleAlertsAdapter struct {
	feedURL    string
	httpClient *http.Client
}

// NewGoogleAlertsAdapter создает адаптер фида. Пустой URL означает,
// что источник не настроен.
func NewGoogleAlertsAdapter(feedURL string, timeout time.Duration) *GoogleAlertsAdapter {
	return &GoogleAlertsAdapter{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (a *GoogleAlertsAdapter) Name() string { return models.SourceGoogle }

type googleFeedResponse struct {
	Alerts []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Severity    int    `json:"severity"`
		Coordinates struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"coordinates"`
	} `json:"alerts"`
}

// Fetch возвращает тревоги фида как есть; нормализация - забота ингеста
func (a *GoogleAlertsAdapter) Fetch(ctx context.Context) ([]models.RawAlert, error) {
	if a.feedURL == "" {
		return nil, fmt.Errorf("google alerts: %w", ErrNoAPIKey)
	}

	var data googleFeedResponse
	if err := getJSON(ctx, a.httpClient, a.feedURL, nil, &data); err != nil {
		return nil, fmt.Errorf("google alerts: %w", err)
	}

	alerts := make([]models.RawAlert, 0, len(data.Alerts))
	for _, entry := range data.Alerts {
		severity := entry.Severity
		if severity == 0 {
			severity = models.SeverityModerate
		}
		alerts = append(alerts, models.RawAlert{
			Title:       entry.Title,
			Description: entry.Description,
			Severity:    severity,
			Latitude:    entry.Coordinates.Lat,
			Longitude:   entry.Coordinates.Lng,
			Source:      models.SourceGoogle,
		})
	}
	return alerts, nil
}
