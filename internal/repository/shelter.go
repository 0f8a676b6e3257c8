package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/disaster_alert_system/internal/models"
	"github.com/shenikar/disaster_alert_system/internal/service"
)

type ShelterRepository struct {
	db *pgxpool.Pool
}

func NewShelterRepository(db *pgxpool.Pool) service.ShelterRepository {
	return &ShelterRepository{db: db}
}

// ListAll возвращает все убежища
func (r *ShelterRepository) ListAll(ctx context.Context) ([]*models.Shelter, error) {
	query := `
		SELECT
			id,
			name,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			capacity,
			shelter_type
		FROM shelters
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelters: %w", err)
	}
	defer rows.Close()

	shelters := make([]*models.Shelter, 0)
	for rows.Next() {
		shelter := &models.Shelter{}
		err := rows.Scan(
			&shelter.ID,
			&shelter.Name,
			&shelter.Latitude,
			&shelter.Longitude,
			&shelter.Capacity,
			&shelter.ShelterType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shelter row: %w", err)
		}
		shelters = append(shelters, shelter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error shelter list iteration: %w", err)
	}
	return shelters, nil
}
