package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Точка по умолчанию: используется адаптерами и при нормализации,
	// если провайдер не передал координаты
	DefaultLatitude  float64 `env:"DEFAULT_LATITUDE" envDefault:"14.625"`
	DefaultLongitude float64 `env:"DEFAULT_LONGITUDE" envDefault:"-90.525"`

	// Источники внешних данных
	OpenWeatherAPIKey  string        `env:"OPENWEATHER_API_KEY"`
	OpenWeatherBaseURL string        `env:"OPENWEATHER_BASE_URL" envDefault:"http://api.openweathermap.org/data/2.5"`
	OpenMeteoURL       string        `env:"OPEN_METEO_URL" envDefault:"https://api.open-meteo.com/v1/forecast"`
	GDACSURL           string        `env:"GDACS_URL" envDefault:"https://www.gdacs.org/gdacsapi/api/events/get/eventlist/SEARCH"`
	GDACSCountry       string        `env:"GDACS_COUNTRY" envDefault:"GT"`
	NASAPowerURL       string        `env:"NASA_POWER_URL" envDefault:"https://power.larc.nasa.gov/api/temporal/daily/point"`
	GoogleAlertsURL    string        `env:"GOOGLE_ALERTS_URL"`
	SourceTimeout      time.Duration `env:"SOURCE_TIMEOUT" envDefault:"10s"`
	FetchInterval      time.Duration `env:"FETCH_INTERVAL" envDefault:"15m"`

	// Параметры аналитики
	ClusterRadiusDegrees float64 `env:"CLUSTER_RADIUS_DEGREES" envDefault:"0.01"`
	TrendWindowDays      int     `env:"TREND_WINDOW_DAYS" envDefault:"7"`
	SnapshotLimit        int     `env:"SNAPSHOT_LIMIT" envDefault:"500"`

	// Доставка уведомлений (SMS/push шлюз)
	NotifyURL        string        `env:"NOTIFY_URL"`
	NotifySecret     string        `env:"NOTIFY_SECRET"`
	NotifyTimeout    time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
	NotifyMaxRetries int           `env:"NOTIFY_MAX_RETRIES" envDefault:"3"`
	NotifyBaseDelay  time.Duration `env:"NOTIFY_BASE_DELAY" envDefault:"500ms"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "json"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:            os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		DefaultLatitude:      getEnvAsFloat("DEFAULT_LATITUDE", 14.625),
		DefaultLongitude:     getEnvAsFloat("DEFAULT_LONGITUDE", -90.525),
		OpenWeatherAPIKey:    os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL:   getEnv("OPENWEATHER_BASE_URL", "http://api.openweathermap.org/data/2.5"),
		OpenMeteoURL:         getEnv("OPEN_METEO_URL", "https://api.open-meteo.com/v1/forecast"),
		GDACSURL:             getEnv("GDACS_URL", "https://www.gdacs.org/gdacsapi/api/events/get/eventlist/SEARCH"),
		GDACSCountry:         getEnv("GDACS_COUNTRY", "GT"),
		NASAPowerURL:         getEnv("NASA_POWER_URL", "https://power.larc.nasa.gov/api/temporal/daily/point"),
		GoogleAlertsURL:      os.Getenv("GOOGLE_ALERTS_URL"),
		SourceTimeout:        getEnvAsDuration("SOURCE_TIMEOUT", 10*time.Second),
		FetchInterval:        getEnvAsDuration("FETCH_INTERVAL", 15*time.Minute),
		ClusterRadiusDegrees: getEnvAsFloat("CLUSTER_RADIUS_DEGREES", 0.01),
		TrendWindowDays:      getEnvAsInt("TREND_WINDOW_DAYS", 7),
		SnapshotLimit:        getEnvAsInt("SNAPSHOT_LIMIT", 500),
		NotifyURL:            os.Getenv("NOTIFY_URL"),
		NotifySecret:         os.Getenv("NOTIFY_SECRET"),
		NotifyTimeout:        getEnvAsDuration("NOTIFY_TIMEOUT", 5*time.Second),
		NotifyMaxRetries:     getEnvAsInt("NOTIFY_MAX_RETRIES", 3),
		NotifyBaseDelay:      getEnvAsDuration("NOTIFY_BASE_DELAY", 500*time.Millisecond),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
