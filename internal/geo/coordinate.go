package geo

import (
	"encoding/json"
	"fmt"
)

// AppCoordinate - координата в порядке приложения: сначала широта, потом долгота
type AppCoordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Position - координата в порядке GeoJSON: [lng, lat]
type Position struct {
	Lng float64
	Lat float64
}

// ToPosition переводит координату приложения в порядок GeoJSON
func (c AppCoordinate) ToPosition() Position {
	return Position{Lng: c.Lng, Lat: c.Lat}
}

// ToApp переводит позицию GeoJSON в порядок приложения
func (p Position) ToApp() AppCoordinate {
	return AppCoordinate{Lat: p.Lat, Lng: p.Lng}
}

// Valid проверяет диапазоны WGS84
func (c AppCoordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

func (c AppCoordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lng)
}

// MarshalJSON кодирует позицию как массив [lng, lat]
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lng, p.Lat})
}

// UnmarshalJSON разбирает массив [lng, lat]; высота (третий элемент) отбрасывается
func (p *Position) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("position must be a [lng, lat] array: %w", err)
	}
	if len(raw) < 2 {
		return fmt.Errorf("position must have at least 2 elements, got %d", len(raw))
	}
	p.Lng, p.Lat = raw[0], raw[1]
	return nil
}

// ToPositions переводит ломаную из порядка приложения в порядок GeoJSON
func ToPositions(coords []AppCoordinate) []Position {
	out := make([]Position, len(coords))
	for i, c := range coords {
		out[i] = c.ToPosition()
	}
	return out
}

// ToAppCoordinates - обратное преобразование к ToPositions
func ToAppCoordinates(positions []Position) []AppCoordinate {
	out := make([]AppCoordinate, len(positions))
	for i, p := range positions {
		out[i] = p.ToApp()
	}
	return out
}
