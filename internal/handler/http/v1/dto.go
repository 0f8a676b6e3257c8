package v1

import (
	"time"

	"github.com/google/uuid"
)

// CreateAlertRequest DTO для подачи локальной тревоги
// @Description DTO для подачи локальной тревоги
type CreateAlertRequest struct {
	Title       string  `json:"title" validate:"required,min=2,max=255"`
	Description string  `json:"description,omitempty"`
	Severity    int     `json:"severity" validate:"required,gte=1,lte=4"`
	Latitude    float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   float64 `json:"longitude" validate:"omitempty,longitude"`
}

// AlertResponse DTO для ответа с информацией о тревоге
// @Description DTO для ответа с информацией о тревоге
type AlertResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Severity    int       `json:"severity"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

// ShelterResponse DTO для ответа с информацией об убежище
// @Description DTO для ответа с информацией об убежище
type ShelterResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Capacity    int       `json:"capacity"`
	ShelterType string    `json:"shelter_type"`
}

// LocationRequest DTO координат запрашивающего
// @Description DTO координат запрашивающего
type LocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// RecommendationRequest DTO запроса рекомендаций по роли.
// Неизвестная роль трактуется как general.
// @Description DTO запроса рекомендаций по роли
type RecommendationRequest struct {
	Role     string           `json:"role" validate:"required"`
	Location *LocationRequest `json:"location,omitempty"`
}

// RecommendationItemResponse DTO одной рекомендации
// @Description DTO одной рекомендации
type RecommendationItemResponse struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Actions     []string `json:"actions,omitempty"`
}

// RecommendationResponse DTO для ответа с рекомендациями
// @Description DTO для ответа с рекомендациями
type RecommendationResponse struct {
	Role            string                       `json:"role"`
	Priority        string                       `json:"priority"`
	Items           []RecommendationItemResponse `json:"items"`
	ValiditySeconds int                          `json:"validity_seconds"`
}

// RefreshResponse DTO итога опроса внешних источников
// @Description DTO итога опроса внешних источников
type RefreshResponse struct {
	Fetched    int `json:"fetched"`
	Inserted   int `json:"inserted"`
	Duplicates int `json:"duplicates"`
	Failed     int `json:"failed"`
}
