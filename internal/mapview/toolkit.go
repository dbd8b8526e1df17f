package mapview

import (
	"errors"
	"fmt"

	"github.com/shenikar/ojt_tracker/internal/geo"
)

//go:generate mockgen -source=toolkit.go -destination=mocks/toolkit_mock.go -package=mocks

var ErrInvalidShape = errors.New("shape needs at least 3 distinct corners")

// ZoneListener получает изменения зоны, нарисованной оператором
type ZoneListener interface {
	OnZoneDrawn(zone geo.Geometry)
	OnZoneCleared()
}

// Toolkit - адаптер инструмента рисования поверх карты
type Toolkit interface {
	// Attach подключает элементы рисования и подписывает handler на события фигур
	Attach(handler func(ShapeEvent))
	Detach()
	// Remove убирает ранее нарисованную фигуру с карты
	Remove(shapeID string)
}

type EventKind int

const (
	ShapeCreated EventKind = iota
	ShapeEdited
	ShapeDeleted
)

func (k EventKind) String() string {
	switch k {
	case ShapeCreated:
		return "created"
	case ShapeEdited:
		return "edited"
	case ShapeDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

type ShapeKind int

const (
	ShapePolygon ShapeKind = iota
	ShapeRectangle
)

// ShapeEvent - событие инструмента; координаты в порядке lat, lng
type ShapeEvent struct {
	Kind    EventKind
	Shape   ShapeKind
	ShapeID string
	LatLngs []geo.AppCoordinate
}

// ShapeGeometry переводит фигуру в геометрию зоны: порядок lng, lat, кольцо замкнуто.
// Для прямоугольника достаточно двух противоположных углов.
func ShapeGeometry(shape ShapeKind, latLngs []geo.AppCoordinate) (*geo.Geometry, error) {
	if shape == ShapeRectangle && len(latLngs) == 2 {
		b := geo.PointBounds(latLngs[0]).Extend(latLngs[1])
		return geo.NewPolygonGeometry(geo.RectanglePolygon(b)), nil
	}

	ring := geo.Ring(geo.ToPositions(latLngs)).Closed()
	if len(ring) < 4 {
		return nil, ErrInvalidShape
	}
	g := geo.NewPolygonGeometry(geo.Polygon{ring})
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	return g, nil
}
