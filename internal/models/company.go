package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shenikar/ojt_tracker/internal/geo"
)

// Company - компания, принимающая стажеров; SafeZone хранится в GeoJSON (lng-first)
type Company struct {
	ID            uuid.UUID     `json:"_id"`
	Name          string        `json:"name"`
	Address       string        `json:"address,omitempty"`
	SafeZone      *geo.Geometry `json:"safeZone"`
	SafeZoneLabel string        `json:"safeZoneLabel,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Zone возвращает безопасную зону компании; подпись по умолчанию - название компании
func (c *Company) Zone() *geo.SafeZone {
	if c == nil {
		return nil
	}
	label := c.SafeZoneLabel
	if label == "" {
		label = c.Name
	}
	return &geo.SafeZone{Geometry: c.SafeZone, Label: label}
}
