package geo

import "math"

// Bounds - прямоугольник в градусах WGS84
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// PointBounds возвращает вырожденный прямоугольник из одной точки
func PointBounds(c AppCoordinate) Bounds {
	return Bounds{South: c.Lat, West: c.Lng, North: c.Lat, East: c.Lng}
}

// Extend расширяет прямоугольник до точки
func (b Bounds) Extend(c AppCoordinate) Bounds {
	b.South = math.Min(b.South, c.Lat)
	b.North = math.Max(b.North, c.Lat)
	b.West = math.Min(b.West, c.Lng)
	b.East = math.Max(b.East, c.Lng)
	return b
}

// Union объединяет два прямоугольника
func (b Bounds) Union(o Bounds) Bounds {
	return b.Extend(AppCoordinate{Lat: o.South, Lng: o.West}).Extend(AppCoordinate{Lat: o.North, Lng: o.East})
}

// Center возвращает центр прямоугольника
func (b Bounds) Center() AppCoordinate {
	return AppCoordinate{Lat: (b.South + b.North) / 2, Lng: (b.West + b.East) / 2}
}

// Pad расширяет прямоугольник на долю ratio от размера в каждую сторону
func (b Bounds) Pad(ratio float64) Bounds {
	dLat := (b.North - b.South) * ratio
	dLng := (b.East - b.West) * ratio
	return Bounds{
		South: b.South - dLat,
		West:  b.West - dLng,
		North: b.North + dLat,
		East:  b.East + dLng,
	}
}

// Contains проверяет попадание точки в прямоугольник включая границу
func (b Bounds) Contains(c AppCoordinate) bool {
	return c.Lat >= b.South && c.Lat <= b.North && c.Lng >= b.West && c.Lng <= b.East
}

// RectanglePolygon строит полигон GeoJSON из прямоугольника (кольцо замкнуто)
func RectanglePolygon(b Bounds) Polygon {
	return Polygon{Ring{
		{Lng: b.West, Lat: b.South},
		{Lng: b.East, Lat: b.South},
		{Lng: b.East, Lat: b.North},
		{Lng: b.West, Lat: b.North},
		{Lng: b.West, Lat: b.South},
	}}
}
