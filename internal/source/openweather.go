package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shenikar/disaster_alert_system/internal/models"
)

// Пороги синтеза тревог OpenWeatherMap: температура > 35°C - риск пожаров,
// ветер > 15 м/с - возможные разрушения.
const (
	openWeatherHotTempC = 35.0
	openWeatherWindMS   = 15.0
	openWeatherPath     = "weather"
)

var severeConditions = map[string]bool{
	"Thunderstorm": true,
	"Hurricane":    true,
	"Tornado":      true,
}

// ErrNoAPIKey возвращается адаптерами, требующими учетных данных
var ErrNoAPIKey = fmt.Errorf("API key not configured")

// OpenWeatherAdapter получает текущую погоду OpenWeatherMap (требует API ключ)
type OpenWeatherAdapter struct {
	apiKey     string
	baseURL    string
	lat, lon   float64
	httpClient *http.Client
}

// NewOpenWeatherAdapter создает адаптер OpenWeatherMap для точки наблюдения
func NewOpenWeatherAdapter(apiKey, baseURL string, lat, lon float64, timeout time.Duration) *OpenWeatherAdapter {
	return &OpenWeatherAdapter{
		apiKey:     apiKey,
		baseURL:    baseURL,
		lat:        lat,
		lon:        lon,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (a *OpenWeatherAdapter) Name() string { return models.SourceOpenWeather }

type openWeatherResponse struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Fetch синтезирует тревоги из текущих условий. Без ключа возвращает ErrNoAPIKey.
func (a *OpenWeatherAdapter) Fetch(ctx context.Context) ([]models.RawAlert, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("openweather: %w", ErrNoAPIKey)
	}

	params := url.Values{
		"lat":   {fmt.Sprintf("%g", a.lat)},
		"lon":   {fmt.Sprintf("%g", a.lon)},
		"appid": {a.apiKey},
		"units": {"metric"},
	}

	var data openWeatherResponse
	if err := getJSON(ctx, a.httpClient, a.baseURL+"/"+openWeatherPath, params, &data); err != nil {
		return nil, fmt.Errorf("openweather: %w", err)
	}

	alerts := make([]models.RawAlert, 0, 3)

	if len(data.Weather) > 0 && severeConditions[data.Weather[0].Main] {
		alerts = append(alerts, models.RawAlert{
			Title:       fmt.Sprintf("Weather Alert: %s", data.Weather[0].Main),
			Description: fmt.Sprintf("Severe weather condition detected. %s in the zone.", data.Weather[0].Main),
			Severity:    models.SeverityCritical,
			Latitude:    a.lat,
			Longitude:   a.lon,
			Source:      models.SourceOpenWeather,
		})
	}

	if data.Main.Temp > openWeatherHotTempC {
		alerts = append(alerts, models.RawAlert{
			Title:       "Extreme Temperature Alert",
			Description: fmt.Sprintf("Very high temperature: %.1f°C. Wildfire risk.", data.Main.Temp),
			Severity:    models.SeverityHigh,
			Latitude:    a.lat,
			Longitude:   a.lon,
			Source:      models.SourceOpenWeather,
		})
	}

	if data.Wind.Speed > openWeatherWindMS {
		alerts = append(alerts, models.RawAlert{
			Title:       "Strong Wind Alert",
			Description: fmt.Sprintf("Winds of %.1f m/s detected. Possible damage.", data.Wind.Speed),
			Severity:    models.SeverityHigh,
			Latitude:    a.lat,
			Longitude:   a.lon,
			Source:      models.SourceOpenWeather,
		})
	}

	return alerts, nil
}
