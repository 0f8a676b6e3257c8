package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shenikar/disaster_alert_system/internal/models"
)

// Порог тренда NASA POWER: средняя температура за 30 дней выше 30°C
const nasaPowerAvgTempC = 30.0

// NASAPowerAdapter анализирует суточные климатические ряды NASA POWER
type NASAPowerAdapter struct {
	baseURL    string
	lat, lon   float64
	httpClient *http.Client
	clock      clockwork.Clock
}

// NewNASAPowerAdapter создает адаптер NASA POWER для точки наблюдения
func NewNASAPowerAdapter(baseURL string, lat, lon float64, timeout time.Duration, clock clockwork.Clock) *NASAPowerAdapter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &NASAPowerAdapter{
		baseURL:    baseURL,
		lat:        lat,
		lon:        lon,
		httpClient: &http.Client{Timeout: timeout},
		clock:      clock,
	}
}

func (a *NASAPowerAdapter) Name() string { return models.SourceNASAPower }

type nasaPowerResponse struct {
	Properties struct {
		Parameter struct {
			T2M map[string]float64 `json:"T2M"`
		} `json:"parameter"`
	} `json:"properties"`
}

// Fetch синтезирует тревогу тренда при аномально высокой средней температуре
// за последние 30 дней
func (a *NASAPowerAdapter) Fetch(ctx context.Context) ([]models.RawAlert, error) {
	now := a.clock.Now()
	params := url.Values{
		"parameters": {"T2M,PRECTOT,WS2M,RH2M"},
		"start":      {now.AddDate(0, 0, -30).Format("20060102")},
		"end":        {now.Format("20060102")},
		"latitude":   {fmt.Sprintf("%g", a.lat)},
		"longitude":  {fmt.Sprintf("%g", a.lon)},
		"community":  {"AG"},
		"format":     {"JSON"},
	}

	var data nasaPowerResponse
	if err := getJSON(ctx, a.httpClient, a.baseURL, params, &data); err != nil {
		return nil, fmt.Errorf("nasa power: %w", err)
	}

	temperatures := data.Properties.Parameter.T2M
	if len(temperatures) == 0 {
		return nil, nil
	}

	sum := 0.0
	for _, temp := range temperatures {
		sum += temp
	}
	avg := sum / float64(len(temperatures))

	if avg <= nasaPowerAvgTempC {
		return nil, nil
	}

	return []models.RawAlert{{
		Title:       "High Temperature Trend",
		Description: fmt.Sprintf("High average temperature detected: %.1f°C", avg),
		Severity:    models.SeverityModerate,
		Latitude:    a.lat,
		Longitude:   a.lon,
		Source:      models.SourceNASAPower,
	}}, nil
}
