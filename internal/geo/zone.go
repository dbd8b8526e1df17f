package geo

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	TypePolygon      = "Polygon"
	TypeMultiPolygon = "MultiPolygon"
)

var (
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	ErrInvalidRing         = errors.New("ring must have at least 3 positions")
	ErrInvalidPosition     = errors.New("position out of WGS84 range")
)

// Geometry - геометрия безопасной зоны в формате GeoJSON (Polygon или MultiPolygon), порядок [lng, lat]
type Geometry struct {
	Type     string
	Polygons []Polygon
}

type geometryJSON struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// NewPolygonGeometry оборачивает один полигон в геометрию типа Polygon
func NewPolygonGeometry(p Polygon) *Geometry {
	return &Geometry{Type: TypePolygon, Polygons: []Polygon{p}}
}

// MarshalJSON кодирует геометрию в GeoJSON
func (g Geometry) MarshalJSON() ([]byte, error) {
	switch g.Type {
	case TypePolygon:
		var coords Polygon
		if len(g.Polygons) > 0 {
			coords = g.Polygons[0]
		}
		return json.Marshal(struct {
			Type        string  `json:"type"`
			Coordinates Polygon `json:"coordinates"`
		}{g.Type, coords})
	case TypeMultiPolygon:
		return json.Marshal(struct {
			Type        string    `json:"type"`
			Coordinates []Polygon `json:"coordinates"`
		}{g.Type, g.Polygons})
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedGeometry, g.Type)
}

// UnmarshalJSON разбирает GeoJSON Polygon/MultiPolygon
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw geometryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode geometry: %w", err)
	}

	switch raw.Type {
	case TypePolygon:
		var p Polygon
		if len(raw.Coordinates) > 0 {
			if err := json.Unmarshal(raw.Coordinates, &p); err != nil {
				return fmt.Errorf("failed to decode polygon coordinates: %w", err)
			}
		}
		g.Type, g.Polygons = raw.Type, []Polygon{p}
	case TypeMultiPolygon:
		var mp []Polygon
		if len(raw.Coordinates) > 0 {
			if err := json.Unmarshal(raw.Coordinates, &mp); err != nil {
				return fmt.Errorf("failed to decode multipolygon coordinates: %w", err)
			}
		}
		g.Type, g.Polygons = raw.Type, mp
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedGeometry, raw.Type)
	}
	return nil
}

// Outer возвращает первый полигон геометрии или nil
func (g *Geometry) Outer() Polygon {
	if g == nil || len(g.Polygons) == 0 {
		return nil
	}
	return g.Polygons[0]
}

// OuterRing возвращает внешнее кольцо первого полигона
func (g *Geometry) OuterRing() Ring {
	p := g.Outer()
	if len(p) == 0 {
		return nil
	}
	return p[0]
}

// Validate проверяет тип геометрии, размер колец и диапазоны координат
func (g *Geometry) Validate() error {
	if g.Type != TypePolygon && g.Type != TypeMultiPolygon {
		return fmt.Errorf("%w: %q", ErrUnsupportedGeometry, g.Type)
	}
	for _, p := range g.Polygons {
		for _, r := range p {
			if len(r) < 3 {
				return ErrInvalidRing
			}
			for _, pos := range r {
				if !pos.ToApp().Valid() {
					return fmt.Errorf("%w: [%v, %v]", ErrInvalidPosition, pos.Lng, pos.Lat)
				}
			}
		}
	}
	return nil
}

// Bounds возвращает ограничивающий прямоугольник всех внешних колец
func (g *Geometry) Bounds() (Bounds, bool) {
	var (
		out Bounds
		ok  bool
	)
	if g == nil {
		return out, false
	}
	for _, p := range g.Polygons {
		if len(p) == 0 {
			continue
		}
		b, has := p[0].Bounds()
		if !has {
			continue
		}
		if !ok {
			out, ok = b, true
			continue
		}
		out = out.Union(b)
	}
	return out, ok
}

// SafeZone - разрешенная зона компании и ее подпись
type SafeZone struct {
	Geometry *Geometry `json:"geometry"`
	Label    string    `json:"label"`
}

// Restricts сообщает, ограничивает ли зона отметку времени.
// Отсутствующая или вырожденная геометрия означает "без ограничений".
func (z *SafeZone) Restricts() bool {
	if z == nil {
		return false
	}
	return len(z.Geometry.OuterRing()) >= 3
}

// Contains проверяет, находится ли координата внутри зоны; без ограничений всегда true
func (z *SafeZone) Contains(c AppCoordinate) bool {
	if !z.Restricts() {
		return true
	}
	return PointInPolygon(c.ToPosition(), z.Geometry.Outer())
}
