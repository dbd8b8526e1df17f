package main

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/mapview"
)

func TestParseLatLng(t *testing.T) {
	c, err := parseLatLng(" 14.5995, 120.9842 ")
	require.NoError(t, err)
	assert.Equal(t, geo.AppCoordinate{Lat: 14.5995, Lng: 120.9842}, c)

	for _, in := range []string{"", "14.5", "a,b", "91,0", "0,181", "1,2,3"} {
		_, err := parseLatLng(in)
		assert.Error(t, err, in)
	}
}

func TestParseLatLngList(t *testing.T) {
	pts, err := parseLatLngList("14.58,120.97; 14.61,120.97;14.61,121.00;")
	require.NoError(t, err)
	assert.Len(t, pts, 3)

	_, err = parseLatLngList("14.58,120.97;oops")
	assert.Error(t, err)
}

func TestParseBounds(t *testing.T) {
	b, err := parseBounds("14.58,120.97,14.61,121.00")
	require.NoError(t, err)
	assert.Equal(t, geo.Bounds{South: 14.58, West: 120.97, North: 14.61, East: 121.00}, b)

	_, err = parseBounds("14.61,120.97,14.58,121.00")
	assert.Error(t, err)
	_, err = parseBounds("1,2,3")
	assert.Error(t, err)
}

type recordingListener struct {
	drawn   []geo.Geometry
	cleared int
}

func (l *recordingListener) OnZoneDrawn(zone geo.Geometry) { l.drawn = append(l.drawn, zone) }
func (l *recordingListener) OnZoneCleared() { l.cleared++ }

func TestScriptedToolkit_DrivesSurface(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	toolkit := &scriptedToolkit{}
	listener := &recordingListener{}
	surface := mapview.NewSurface(mapview.Options{Mode: mapview.Editable, Toolkit: toolkit, Listener: listener}, logger)

	ok := toolkit.emit(mapview.ShapeEvent{
		Kind:    mapview.ShapeCreated,
		Shape:   mapview.ShapeRectangle,
		ShapeID: "a",
		LatLngs: []geo.AppCoordinate{{Lat: 14.58, Lng: 120.97}, {Lat: 14.61, Lng: 121.00}},
	})
	require.True(t, ok)
	require.Len(t, listener.drawn, 1)
	assert.True(t, surface.Zone().Contains(geo.AppCoordinate{Lat: 14.6, Lng: 120.98}))

	toolkit.emit(mapview.ShapeEvent{
		Kind:    mapview.ShapeCreated,
		Shape:   mapview.ShapePolygon,
		ShapeID: "b",
		LatLngs: []geo.AppCoordinate{{Lat: 14.58, Lng: 120.97}, {Lat: 14.61, Lng: 120.97}, {Lat: 14.61, Lng: 121.00}},
	})
	assert.Len(t, listener.drawn, 2)
	assert.Equal(t, []string{"a"}, toolkit.removed)

	toolkit.emit(mapview.ShapeEvent{Kind: mapview.ShapeDeleted, ShapeID: "b"})
	assert.Equal(t, 1, listener.cleared)

	surface.Close()
	assert.False(t, toolkit.emit(mapview.ShapeEvent{Kind: mapview.ShapeDeleted}))
}
