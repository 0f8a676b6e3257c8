package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shenikar/disaster_alert_system/internal/config"
	v1 "github.com/shenikar/disaster_alert_system/internal/handler/http/v1"
	"github.com/shenikar/disaster_alert_system/internal/notifier"
	"github.com/shenikar/disaster_alert_system/internal/observability"
	"github.com/shenikar/disaster_alert_system/internal/repository"
	"github.com/shenikar/disaster_alert_system/internal/service"
	"github.com/shenikar/disaster_alert_system/internal/source"
	"github.com/shenikar/disaster_alert_system/pkg/logger"
	"github.com/shenikar/disaster_alert_system/pkg/postgres"
	redisclient "github.com/shenikar/disaster_alert_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/disaster_alert_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Disaster Alert System API
// @version 1.0
// @description This is a Disaster Alert System API server.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// newAdapters собирает все сконфигурированные адаптеры внешних источников
func newAdapters(cfg *config.Config, clock clockwork.Clock) []source.Adapter {
	return []source.Adapter{
		source.NewOpenMeteoAdapter(cfg.OpenMeteoURL, cfg.DefaultLatitude, cfg.DefaultLongitude, cfg.SourceTimeout),
		source.NewOpenWeatherAdapter(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.DefaultLatitude, cfg.DefaultLongitude, cfg.SourceTimeout),
		source.NewGDACSAdapter(cfg.GDACSURL, cfg.GDACSCountry, cfg.DefaultLatitude, cfg.DefaultLongitude, cfg.SourceTimeout, clock),
		source.NewNASAPowerAdapter(cfg.NASAPowerURL, cfg.DefaultLatitude, cfg.DefaultLongitude, cfg.SourceTimeout, clock),
		source.NewGoogleAlertsAdapter(cfg.GoogleAlertsURL, cfg.SourceTimeout),
	}
}

// runFetchScheduler периодически опрашивает внешние источники
func runFetchScheduler(ctx context.Context, ingest service.IngestService, interval time.Duration, log *logrus.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Fetch scheduler stopped")
			return
		case <-ticker.C:
			if _, err := ingest.RefreshSources(ctx); err != nil {
				log.WithError(err).Error("Scheduled source refresh failed")
			}
		}
	}
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Метрики и часы
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Инициализация издателя уведомлений
	publisher := notifier.NewRedisPublisher(redisClient)

	// Инициализация и запуск воркера уведомлений
	worker := notifier.NewWorker(redisClient, log, cfg, metrics)
	worker.Start(ctx)

	// Инициализация репозиториев
	alertRepo := repository.NewAlertRepository(dbpool, redisClient)
	shelterRepo := repository.NewShelterRepository(dbpool)

	// Адаптеры внешних источников и сборщик
	fetcher := source.NewFetcher(newAdapters(cfg, clock), cfg.SourceTimeout, log, metrics)

	// Инициализация сервисов
	ingestService := service.NewIngestService(alertRepo, fetcher, publisher, log, cfg, metrics)
	analyticsService := service.NewAnalyticsService(alertRepo, shelterRepo, log, cfg, clock, metrics)

	// Периодический опрос внешних источников
	go runFetchScheduler(ctx, ingestService, cfg.FetchInterval, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(ingestService, analyticsService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Метрики Prometheus
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
