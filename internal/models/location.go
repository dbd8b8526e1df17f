package models

import (
	"time"

	"github.com/google/uuid"
)

// LocationPing - запись о переданном стажером местоположении
type LocationPing struct {
	ID         int64     `json:"id"`
	StudentID  uuid.UUID `json:"student_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Latest переводит запись в формат последней точки живой карты
func (p *LocationPing) Latest() *LatestLocation {
	return &LatestLocation{Lat: p.Latitude, Lng: p.Longitude, Timestamp: p.RecordedAt}
}
