package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/disaster_alert_system/internal/models"
)

// Отображение уровней GDACS на порядковую серьёзность
var gdacsSeverity = map[string]int{
	"Green":  models.SeverityModerate,
	"Orange": models.SeverityHigh,
	"Red":    models.SeverityCritical,
}

// GDACSAdapter получает список глобальных событий о бедствиях GDACS
type GDACSAdapter struct {
	baseURL    string
	country    string
	defaultLat float64
	defaultLon float64
	httpClient *http.Client
	clock      clockwork.Clock
}

// NewGDACSAdapter создает адаптер GDACS. Часы инжектируются, чтобы окно
// выборки за последние 7 дней было детерминированным в тестах.
func NewGDACSAdapter(baseURL, country string, defaultLat, defaultLon float64, timeout time.Duration, clock clockwork.Clock) *GDACSAdapter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &GDACSAdapter{
		baseURL:    baseURL,
		country:    country,
		defaultLat: defaultLat,
		defaultLon: defaultLon,
		httpClient: &http.Client{Timeout: timeout},
		clock:      clock,
	}
}

func (a *GDACSAdapter) Name() string { return models.SourceGDACS }

type gdacsResponse struct {
	Features []struct {
		Properties struct {
			EventType   string `json:"eventtype"`
			AlertLevel  string `json:"alertlevel"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"properties"`
		Geometry struct {
			Type        string          `json:"type"`
			Coordinates json.RawMessage `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Fetch возвращает события за последние 7 дней по настроенной стране
func (a *GDACSAdapter) Fetch(ctx context.Context) ([]models.RawAlert, error) {
	now := a.clock.Now()
	params := url.Values{
		"fromdate":   {now.AddDate(0, 0, -7).Format("2006-01-02")},
		"todate":     {now.Format("2006-01-02")},
		"alertlevel": {"Green,Orange,Red"},
		"country":    {a.country},
	}

	var data gdacsResponse
	if err := getJSON(ctx, a.httpClient, a.baseURL, params, &data); err != nil {
		return nil, fmt.Errorf("gdacs: %w", err)
	}

	alerts := make([]models.RawAlert, 0, len(data.Features))
	for _, feature := range data.Features {
		severity, ok := gdacsSeverity[feature.Properties.AlertLevel]
		if !ok {
			severity = models.SeverityModerate
		}

		lat, lon := a.extractPoint(feature.Geometry.Type, feature.Geometry.Coordinates)

		alerts = append(alerts, models.RawAlert{
			Title:       fmt.Sprintf("GDACS: %s", feature.Properties.Title),
			Description: feature.Properties.Description,
			Severity:    severity,
			Latitude:    lat,
			Longitude:   lon,
			Source:      models.SourceGDACS,
		})
	}
	return alerts, nil
}

// extractPoint сводит геометрию к одной точке: для полигона берется первая
// вершина, для точки - сами координаты, иначе - точка по умолчанию.
// GDACS отдает координаты в порядке lon,lat.
func (a *GDACSAdapter) extractPoint(geomType string, raw json.RawMessage) (float64, float64) {
	switch geomType {
	case "Point":
		var point [2]float64
		if err := json.Unmarshal(raw, &point); err == nil {
			return point[1], point[0]
		}
	case "Polygon":
		var rings [][][2]float64
		if err := json.Unmarshal(raw, &rings); err == nil && len(rings) > 0 && len(rings[0]) > 0 {
			return rings[0][0][1], rings[0][0][0]
		}
	}
	return a.defaultLat, a.defaultLon
}
