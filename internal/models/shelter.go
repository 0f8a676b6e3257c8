package models

import (
	"github.com/google/uuid"
)

// Типы убежищ
const (
	ShelterRefuge       = "refuge"
	ShelterHospital     = "hospital"
	ShelterMeetingPoint = "meeting_point"
)

// Shelter представляет убежище с координатами и вместимостью
type Shelter struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Capacity    int       `json:"capacity"`
	ShelterType string    `json:"shelter_type"`
}
