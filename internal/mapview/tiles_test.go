package mapview_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/mapview"
)

func TestTileAt(t *testing.T) {
	assert.Equal(t, mapview.Tile{X: 27396, Y: 15040, Z: 15}, mapview.TileAt(manila, 15))
	assert.Equal(t, mapview.Tile{X: 0, Y: 0, Z: 0}, mapview.TileAt(manila, 0))

	// Полюса и антимеридиан прижимаются к краю сетки
	assert.Equal(t, mapview.Tile{X: 1, Y: 0, Z: 1}, mapview.TileAt(geo.AppCoordinate{Lat: 90, Lng: 180}, 1))
}

func TestTileRange(t *testing.T) {
	world := geo.Bounds{South: -85, West: -180, North: 85, East: 179.9}
	assert.Len(t, mapview.TileRange(world, 0), 1)
	assert.Equal(t, []mapview.Tile{
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	}, mapview.TileRange(world, 1))

	around := geo.PointBounds(manila).Pad(0)
	assert.Equal(t, []mapview.Tile{mapview.TileAt(manila, 15)}, mapview.TileRange(around, 15))
}

func TestTileURL(t *testing.T) {
	tile := mapview.Tile{X: 27396, Y: 15040, Z: 15}
	assert.Equal(t, "https://tile.openstreetmap.org/15/27396/15040.png", tile.URL(mapview.DefaultTileURL))
	assert.Equal(t, "https://b.tile.example.org/15/27396/15040.png", tile.URL("https://{s}.tile.example.org/{z}/{x}/{y}.png"))
}

func TestBoundsZoom(t *testing.T) {
	b := geo.Bounds{South: manila.Lat - 0.012, West: manila.Lng - 0.012, North: manila.Lat + 0.012, East: manila.Lng + 0.012}
	assert.Equal(t, 15, mapview.BoundsZoom(b, 800, 600))
	assert.Equal(t, mapview.MaxZoom, mapview.BoundsZoom(geo.PointBounds(manila), 800, 600))
	assert.Equal(t, 0, mapview.BoundsZoom(geo.Bounds{South: -85, West: -180, North: 85, East: 180}, 256, 256))
}

func TestSurface_TileURLs(t *testing.T) {
	surface := mapview.NewSurface(mapview.Options{
		Mode:    mapview.ReadOnly,
		TileURL: "https://{s}.tiles.test/{z}/{x}/{y}.png",
	}, silentLogger())
	surface.SetUserLocation(&manila)

	urls := surface.TileURLs()
	assert.NotEmpty(t, urls)
	center := mapview.TileAt(manila, mapview.PointZoom).URL("https://{s}.tiles.test/{z}/{x}/{y}.png")
	assert.Contains(t, urls, center)
	for _, u := range urls {
		assert.True(t, strings.Contains(u, "/17/"), u)
	}
}
