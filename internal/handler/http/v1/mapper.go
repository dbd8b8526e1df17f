package v1

import (
	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/models"
)

// DTOToCoordinate преобразует DTO точки в координату приложения.
// Вызывается только после валидации, поля не nil.
func DTOToCoordinate(dto LocationRequest) geo.AppCoordinate {
	return geo.AppCoordinate{Lat: *dto.Lat, Lng: *dto.Lng}
}

// ModelToLocationResponse преобразует сохраненную точку в DTO для ответа
func ModelToLocationResponse(ping *models.LocationPing) *LocationResponse {
	latest := ping.Latest()
	return &LocationResponse{
		Lat:       latest.Lat,
		Lng:       latest.Lng,
		Timestamp: latest.Timestamp,
	}
}

// ModelToDTRResponse оборачивает запись DTR в ответ
func ModelToDTRResponse(record *models.AttendanceRecord) *DTRResponse {
	return &DTRResponse{DTR: record}
}
