package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/disaster_alert_system/internal/models"
	"github.com/shenikar/disaster_alert_system/internal/service"
)

type AlertRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewAlertRepository(db *pgxpool.Pool, redisClient *redis.Client) service.AlertRepository {
	return &AlertRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// CreateIfAbsent вставляет тревогу, только если записи с таким title еще нет.
// Уникальность обеспечивает ограничение на стороне бд: ON CONFLICT DO NOTHING
// гарантирует не более одной записи на title даже при конкурентных вставках.
// Возвращает false без ошибки, если title уже занят.
func (r *AlertRepository) CreateIfAbsent(ctx context.Context, alert *models.Alert) (bool, error) {
	query := `
		INSERT INTO alerts (title, description, severity, location, source)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326), $6)
		ON CONFLICT (title) DO NOTHING
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		alert.Title,
		alert.Description,
		alert.Severity,
		alert.Longitude,
		alert.Latitude,
		alert.Source,
	).Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		// Конфликт по title: вставка не произошла, RETURNING пуст
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create alert: %w", err)
	}
	return true, nil
}

const alertColumns = `
		id,
		title,
		description,
		severity,
		ST_Y(location::geometry) as latitude,
		ST_X(location::geometry) as longitude,
		source,
		created_at
`

// ListRecent возвращает последние тревоги, новые первыми
func (r *AlertRepository) ListRecent(ctx context.Context, limit int) ([]*models.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		ORDER BY created_at DESC, id
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent alerts: %w", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

// ListAll возвращает снимок тревог в стабильном хронологическом порядке.
// Этот порядок - контракт для кластеризации: ее результат зависит от
// порядка обхода.
func (r *AlertRepository) ListAll(ctx context.Context, limit int) ([]*models.Alert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM alerts
		ORDER BY created_at ASC, id
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	return scanAlerts(rows)
}

func scanAlerts(rows pgx.Rows) ([]*models.Alert, error) {
	alerts := make([]*models.Alert, 0)
	for rows.Next() {
		alert := &models.Alert{}
		err := rows.Scan(
			&alert.ID,
			&alert.Title,
			&alert.Description,
			&alert.Severity,
			&alert.Latitude,
			&alert.Longitude,
			&alert.Source,
			&alert.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error alert list iteration: %w", err)
	}
	return alerts, nil
}

// GetCache пытается получить значение из Redis; промах - (nil, nil)
func (r *AlertRepository) GetCache(ctx context.Context, key string) ([]byte, error) {
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get value from cache: %w", err)
	}
	return val, nil
}

// SetCache сохраняет значение в Redis с заданным сроком жизни
func (r *AlertRepository) SetCache(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.redisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set value in cache: %w", err)
	}
	return nil
}
