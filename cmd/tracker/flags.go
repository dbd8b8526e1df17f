package main

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shenikar/ojt_tracker/internal/geo"
	"github.com/shenikar/ojt_tracker/internal/sampler"
)

var errNoProvider = errors.New("no location source: pass -at or -track")

// locationFlags - источник геолокации для CLI: фиксированная точка или записанный трек
type locationFlags struct {
	at       string
	track    string
	step     time.Duration
	loop     bool
	timeout  time.Duration
	maxAge   time.Duration
	lowPower bool
}

func (f *locationFlags) register(fs *flag.FlagSet, gpsTimeout, gpsMaxAge time.Duration) {
	fs.StringVar(&f.at, "at", "", `fixed location as "lat,lng"`)
	fs.StringVar(&f.track, "track", "", "replay a recorded track (CSV lat,lng or GeoJSON)")
	fs.DurationVar(&f.step, "step", time.Second, "interval between replayed fixes")
	fs.BoolVar(&f.loop, "loop", false, "restart the track from the beginning when it ends")
	fs.DurationVar(&f.timeout, "gps-timeout", gpsTimeout, "fail when no fix arrives within this time")
	fs.DurationVar(&f.maxAge, "gps-max-age", gpsMaxAge, "maximum age of a cached fix")
	fs.BoolVar(&f.lowPower, "low-accuracy", false, "do not request high accuracy fixes")
}

func (f *locationFlags) options() sampler.Options {
	return sampler.Options{
		HighAccuracy: !f.lowPower,
		Timeout:      f.timeout,
		MaximumAge:   f.maxAge,
	}
}

func (f *locationFlags) provider(clock clockwork.Clock) (sampler.Provider, error) {
	switch {
	case f.track != "":
		track, err := sampler.LoadTrack(f.track)
		if err != nil {
			return nil, err
		}
		return &sampler.ReplayProvider{Track: track, Interval: f.step, Loop: f.loop, Clock: clock}, nil
	case f.at != "":
		c, err := parseLatLng(f.at)
		if err != nil {
			return nil, err
		}
		return &sampler.StaticProvider{Coordinate: c, Interval: f.step, Clock: clock}, nil
	}
	return nil, errNoProvider
}

// parseLatLng разбирает "lat,lng"
func parseLatLng(s string) (geo.AppCoordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.AppCoordinate{}, fmt.Errorf("expected \"lat,lng\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.AppCoordinate{}, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.AppCoordinate{}, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	c := geo.AppCoordinate{Lat: lat, Lng: lng}
	if !c.Valid() {
		return geo.AppCoordinate{}, fmt.Errorf("coordinate %s out of range", c)
	}
	return c, nil
}

// parseLatLngList разбирает "lat,lng;lat,lng;..."
func parseLatLngList(s string) ([]geo.AppCoordinate, error) {
	var out []geo.AppCoordinate
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := parseLatLng(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// parseBounds разбирает "south,west,north,east"
func parseBounds(s string) (geo.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geo.Bounds{}, fmt.Errorf("expected \"south,west,north,east\", got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geo.Bounds{}, fmt.Errorf("invalid bound %q: %w", p, err)
		}
		v[i] = f
	}
	b := geo.Bounds{South: v[0], West: v[1], North: v[2], East: v[3]}
	if b.South >= b.North || b.West >= b.East {
		return geo.Bounds{}, fmt.Errorf("empty bounds %q", s)
	}
	return b, nil
}
