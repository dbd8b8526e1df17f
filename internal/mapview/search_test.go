package mapview_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/mapview"
	"github.com/shenikar/ojt_tracker/internal/mapview/mocks"
)

func searchSurface(t *testing.T, geocoder mapview.Geocoder) *mapview.Surface {
	ctrl := gomock.NewController(t)
	toolkit := mocks.NewMockToolkit(ctrl)
	toolkit.EXPECT().Attach(gomock.Any())

	s := mapview.NewSurface(mapview.Options{Mode: mapview.Editable, Toolkit: toolkit, Geocoder: geocoder}, silentLogger())
	s.SetKnownZones([]mapview.NamedZone{
		{Name: "Acme Makati Office", Zone: &geo.SafeZone{Geometry: geo.NewPolygonGeometry(geo.RectanglePolygon(geo.Bounds{South: 14.55, West: 121.01, North: 14.56, East: 121.03}))}},
		{Name: "Acme", Zone: &geo.SafeZone{Geometry: geo.NewPolygonGeometry(geo.RectanglePolygon(geo.Bounds{South: 14.58, West: 120.97, North: 14.61, East: 120.99}))}},
		{Name: "Unzoned Corp", Zone: nil},
	})
	return s
}

func TestSearch_ExactZoneNameWins(t *testing.T) {
	s := searchSurface(t, nil)

	res, err := s.Search(context.Background(), "  acme ")
	require.NoError(t, err)
	assert.Equal(t, mapview.SourceZone, res.Source)
	assert.Equal(t, "Acme", res.Name)
	assert.Equal(t, 14.61, res.Bounds.North)
	assert.Equal(t, res.View, s.View())
}

func TestSearch_PartialZoneName(t *testing.T) {
	s := searchSurface(t, nil)

	res, err := s.Search(context.Background(), "makati")
	require.NoError(t, err)
	assert.Equal(t, "Acme Makati Office", res.Name)
}

func TestSearch_FallsBackToGeocoder(t *testing.T) {
	ctrl := gomock.NewController(t)
	geocoder := mocks.NewMockGeocoder(ctrl)
	place := &mapview.Place{Name: "Cebu City", Center: geo.AppCoordinate{Lat: 10.3, Lng: 123.9}, Bounds: geo.Bounds{South: 10.2, West: 123.8, North: 10.4, East: 124.0}}
	geocoder.EXPECT().Search(gomock.Any(), "Cebu City").Return(place, nil)

	s := searchSurface(t, geocoder)
	res, err := s.Search(context.Background(), "Cebu City")
	require.NoError(t, err)
	assert.Equal(t, mapview.SourceGeocoder, res.Source)
	assert.Equal(t, place.Bounds, res.Bounds)
	assert.True(t, s.View().Bounds.Contains(place.Center))
}

func TestSearch_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	geocoder := mocks.NewMockGeocoder(ctrl)
	geocoder.EXPECT().Search(gomock.Any(), "nowhere").Return(nil, nil)
	geocoder.EXPECT().Search(gomock.Any(), "offline").Return(nil, errors.New("dial tcp: timeout"))

	s := searchSurface(t, geocoder)

	_, err := s.Search(context.Background(), "nowhere")
	assert.ErrorIs(t, err, mapview.ErrPlaceNotFound)

	_, err = s.Search(context.Background(), "offline")
	assert.ErrorIs(t, err, mapview.ErrPlaceNotFound)

	// Компания без зоны не участвует в поиске
	_, err = searchSurface(t, nil).Search(context.Background(), "Unzoned")
	assert.ErrorIs(t, err, mapview.ErrPlaceNotFound)
}

func TestSearch_Preconditions(t *testing.T) {
	_, err := searchSurface(t, nil).Search(context.Background(), "   ")
	assert.ErrorIs(t, err, mapview.ErrEmptyQuery)

	readOnly := mapview.NewSurface(mapview.Options{Mode: mapview.ReadOnly}, silentLogger())
	_, err = readOnly.Search(context.Background(), "Acme")
	assert.ErrorIs(t, err, mapview.ErrSearchUnavailable)
}

func TestNominatim_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "Intramuros, Manila", r.URL.Query().Get("q"))
		assert.Equal(t, "ojt-tracker-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lat":"14.5906","lon":"120.9754","display_name":"Intramuros, Manila","boundingbox":["14.5840","14.5960","120.9690","120.9800"]},
			{"lat":"1","lon":"1","display_name":"ignored"}
		]`))
	}))
	defer server.Close()

	n := mapview.NewNominatim(server.URL, "ojt-tracker-test", time.Second)
	place, err := n.Search(context.Background(), "Intramuros, Manila")
	require.NoError(t, err)
	require.NotNil(t, place)

	assert.Equal(t, "Intramuros, Manila", place.Name)
	assert.Equal(t, geo.AppCoordinate{Lat: 14.5906, Lng: 120.9754}, place.Center)
	assert.Equal(t, geo.Bounds{South: 14.584, North: 14.596, West: 120.969, East: 120.98}, place.Bounds)
}

func TestNominatim_EmptyAndErrors(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	n := mapview.NewNominatim(server.URL+"/", "", time.Second)

	place, err := n.Search(context.Background(), "atlantis")
	require.NoError(t, err)
	assert.Nil(t, place)

	status = http.StatusTooManyRequests
	_, err = n.Search(context.Background(), "atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
