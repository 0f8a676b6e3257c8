package models

import (
	"time"

	"github.com/google/uuid"
)

// Серьёзность тревоги: порядковая шкала 1..4
const (
	SeverityLow      = 1
	SeverityModerate = 2
	SeverityHigh     = 3
	SeverityCritical = 4
)

// Теги источников данных
const (
	SourceLocal       = "LOCAL"
	SourceOpenMeteo   = "OPEN_METEO"
	SourceOpenWeather = "OPENWEATHER"
	SourceGDACS       = "GDACS"
	SourceNASAPower   = "NASA_POWER"
	SourceGoogle      = "GOOGLE"
)

// Alert - каноническая запись о тревоге. После вставки в бд запись неизменяема.
type Alert struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    int       `json:"severity"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

// RawAlert - сырая тревога от адаптера источника, до нормализации и вставки
type RawAlert struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Severity    int     `json:"severity"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Source      string  `json:"source"`
}

// IsExternal сообщает, пришла ли тревога из внешнего провайдера
func (a *Alert) IsExternal() bool {
	return a.Source != SourceLocal && a.Source != ""
}
