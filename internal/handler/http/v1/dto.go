package v1

import (
	"time"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
)

// LocationRequest DTO периодической точки стажера
// @Description DTO периодической точки стажера
type LocationRequest struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

// LocationResponse DTO сохраненной точки
// @Description DTO сохраненной точки
type LocationResponse struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// CoordinatesRequest DTO отметки прихода/ухода, координаты в порядке [lng, lat]
// @Description DTO отметки прихода/ухода, координаты в порядке [lng, lat]
type CoordinatesRequest struct {
	Coordinates *geo.Position `json:"coordinates" swaggertype:"array,number"`
}

// DTRResponse DTO ответа на отметку
// @Description DTO ответа на отметку
type DTRResponse struct {
	DTR *models.AttendanceRecord `json:"dtr"`
}

// SafeZoneRequest DTO замены безопасной зоны; safeZone: null снимает ограничение
// @Description DTO замены безопасной зоны
type SafeZoneRequest struct {
	SafeZone      *geo.Geometry `json:"safeZone" swaggertype:"object"`
	SafeZoneLabel string        `json:"safeZoneLabel,omitempty" validate:"max=255"`
}

// MessageResponse DTO ошибки отметки
// @Description DTO ошибки отметки
type MessageResponse struct {
	Message string `json:"message"`
}
