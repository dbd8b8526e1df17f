package sampler

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenikar/ojt_tracker/internal/geo"
)

func TestParseTrack_CSV(t *testing.T) {
	data := []byte("lat,lng\n# office gate\n14.5995, 120.9842\n14.6000,120.9850\n")
	track, err := ParseTrack(data)
	require.NoError(t, err)
	assert.Equal(t, []geo.AppCoordinate{
		{Lat: 14.5995, Lng: 120.9842},
		{Lat: 14.6000, Lng: 120.9850},
	}, track)
}

func TestParseTrack_CSVInvalidLine(t *testing.T) {
	_, err := ParseTrack([]byte("14.5,120.9\nfoo,bar\n"))
	assert.Error(t, err)

	_, err = ParseTrack([]byte("95,120.9\n"))
	assert.Error(t, err)
}

func TestParseTrack_GeoJSONLineString(t *testing.T) {
	data := []byte(`{"type":"Feature","geometry":{"type":"LineString","coordinates":[[120.9842,14.5995],[120.99,14.6]]}}`)
	track, err := ParseTrack(data)
	require.NoError(t, err)
	require.Len(t, track, 2)
	assert.Equal(t, geo.AppCoordinate{Lat: 14.5995, Lng: 120.9842}, track[0])
}

func TestParseTrack_GeoJSONFeatureCollection(t *testing.T) {
	data := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[3,4]}}
	]}`)
	track, err := ParseTrack(data)
	require.NoError(t, err)
	assert.Equal(t, []geo.AppCoordinate{{Lat: 2, Lng: 1}, {Lat: 4, Lng: 3}}, track)
}

func TestParseTrack_Empty(t *testing.T) {
	_, err := ParseTrack([]byte("  \n"))
	assert.ErrorIs(t, err, ErrEmptyTrack)
}

func TestReplayProvider_EmitsOnEachTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := &ReplayProvider{
		Track:    []geo.AppCoordinate{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}},
		Interval: 2 * time.Second,
		Clock:    clock,
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := p.Watch(ctx, DefaultOptions())
	require.NoError(t, err)

	first := <-updates
	require.NotNil(t, first.Sample)
	assert.Equal(t, 1.0, first.Sample.Lat)

	waitCtx, waitCancel := context.WithTimeout(ctx, time.Second)
	defer waitCancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
	clock.Advance(2 * time.Second)

	second := <-updates
	require.NotNil(t, second.Sample)
	assert.Equal(t, 2.0, second.Sample.Lat)

	cancel()
	for range updates {
	}
}

func TestReplayProvider_EmptyTrack(t *testing.T) {
	_, err := (&ReplayProvider{}).Watch(context.Background(), DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyTrack)
}
