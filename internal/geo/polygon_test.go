package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() Polygon {
	return Polygon{Ring{
		{Lng: 0, Lat: 0},
		{Lng: 0, Lat: 1},
		{Lng: 1, Lat: 1},
		{Lng: 1, Lat: 0},
	}}
}

func TestPointInPolygon_UnitSquare(t *testing.T) {
	assert.True(t, PointInPolygon(Position{Lng: 0.5, Lat: 0.5}, square()))
	assert.False(t, PointInPolygon(Position{Lng: 2, Lat: 2}, square()))
}

func TestPointInPolygon_BoundaryIsDeterministic(t *testing.T) {
	p := Position{Lng: 0, Lat: 0.5}
	first := PointInPolygon(p, square())
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, PointInPolygon(p, square()))
	}
}

func TestPointInPolygon_Empty(t *testing.T) {
	assert.False(t, PointInPolygon(Position{Lng: 0.5, Lat: 0.5}, nil))
	assert.False(t, PointInPolygon(Position{Lng: 0.5, Lat: 0.5}, Polygon{}))
	assert.False(t, PointInPolygon(Position{Lng: 0.5, Lat: 0.5}, Polygon{Ring{}}))
	assert.False(t, PointInPolygon(Position{Lng: 0.5, Lat: 0.5}, Polygon{Ring{{Lng: 0, Lat: 0}, {Lng: 1, Lat: 1}}}))
}

func TestPointInPolygon_ClosedAndOpenRingsAgree(t *testing.T) {
	open := square()
	closed := Polygon{open[0].Closed()}
	require.Len(t, closed[0], 5)

	for _, p := range []Position{{Lng: 0.5, Lat: 0.5}, {Lng: 0.9, Lat: 0.1}, {Lng: 1.5, Lat: 0.5}, {Lng: -0.1, Lat: 0.5}} {
		assert.Equal(t, PointInPolygon(p, open), PointInPolygon(p, closed), "point %v", p)
	}
}

func TestPointInPolygon_HolesAreIgnored(t *testing.T) {
	withHole := Polygon{
		Ring{{Lng: 0, Lat: 0}, {Lng: 0, Lat: 10}, {Lng: 10, Lat: 10}, {Lng: 10, Lat: 0}},
		Ring{{Lng: 4, Lat: 4}, {Lng: 4, Lat: 6}, {Lng: 6, Lat: 6}, {Lng: 6, Lat: 4}},
	}
	// точка внутри дырки считается внутри полигона
	assert.True(t, PointInPolygon(Position{Lng: 5, Lat: 5}, withHole))
}

func TestPointInPolygon_ConcaveShape(t *testing.T) {
	// буква "U"
	u := Polygon{Ring{
		{Lng: 0, Lat: 0}, {Lng: 3, Lat: 0}, {Lng: 3, Lat: 3}, {Lng: 2, Lat: 3},
		{Lng: 2, Lat: 1}, {Lng: 1, Lat: 1}, {Lng: 1, Lat: 3}, {Lng: 0, Lat: 3},
	}}
	assert.True(t, PointInPolygon(Position{Lng: 0.5, Lat: 2}, u))
	assert.False(t, PointInPolygon(Position{Lng: 1.5, Lat: 2}, u))
	assert.True(t, PointInPolygon(Position{Lng: 1.5, Lat: 0.5}, u))
}

func TestPointInPolygon_CoordinateOrder(t *testing.T) {
	// вытянутый по долготе прямоугольник: lng 120..122, lat 14..14.5
	zone := Polygon{Ring{
		{Lng: 120, Lat: 14}, {Lng: 122, Lat: 14}, {Lng: 122, Lat: 14.5}, {Lng: 120, Lat: 14.5},
	}}
	point := Position{Lng: 121, Lat: 14.2}
	require.True(t, PointInPolygon(point, zone))

	swap := func(p Position) Position { return Position{Lng: p.Lat, Lat: p.Lng} }
	swappedZone := Polygon{make(Ring, len(zone[0]))}
	for i, v := range zone[0] {
		swappedZone[0][i] = swap(v)
	}

	// согласованная перестановка не меняет результат
	assert.Equal(t, PointInPolygon(point, zone), PointInPolygon(swap(point), swappedZone))

	// перестановка только одной стороны дает неверный ответ, и это ожидаемо
	assert.False(t, PointInPolygon(swap(point), zone))
	assert.False(t, PointInPolygon(point, swappedZone))
}

func TestCoordinateConversion_RoundTrip(t *testing.T) {
	c := AppCoordinate{Lat: 14.5995, Lng: 120.9842}
	p := c.ToPosition()
	assert.Equal(t, 120.9842, p.Lng)
	assert.Equal(t, 14.5995, p.Lat)
	assert.Equal(t, c, p.ToApp())

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `[120.9842, 14.5995]`, string(b))
}

func TestPosition_UnmarshalRejectsShortArray(t *testing.T) {
	var p Position
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &p))
	require.NoError(t, json.Unmarshal([]byte(`[1, 2, 30]`), &p))
	assert.Equal(t, Position{Lng: 1, Lat: 2}, p)
}
