package sampler

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shenikar/ojt_tracker/internal/geo"
)

var ErrEmptyTrack = errors.New("track has no points")

// ReplayProvider проигрывает записанный трек как поток отметок с заданным шагом
type ReplayProvider struct {
	Track    []geo.AppCoordinate
	Interval time.Duration
	Loop     bool
	Clock    clockwork.Clock
}

// LoadTrack читает трек из файла: CSV "lat,lng" или GeoJSON (LineString, Feature, FeatureCollection точек)
func LoadTrack(path string) ([]geo.AppCoordinate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read track file: %w", err)
	}
	return ParseTrack(data)
}

// ParseTrack разбирает содержимое трека, формат определяется по первому символу
func ParseTrack(data []byte) ([]geo.AppCoordinate, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyTrack
	}

	var (
		track []geo.AppCoordinate
		err   error
	)
	if trimmed[0] == '{' {
		track, err = parseGeoJSONTrack(trimmed)
	} else {
		track, err = parseCSVTrack(trimmed)
	}
	if err != nil {
		return nil, err
	}
	if len(track) == 0 {
		return nil, ErrEmptyTrack
	}
	return track, nil
}

func parseCSVTrack(data []byte) ([]geo.AppCoordinate, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comment = '#'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var track []geo.AppCoordinate
	for line := 1; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv track: %w", err)
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("line %d: expected lat,lng", line)
		}
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errLat != nil || errLng != nil {
			// заголовок
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: invalid coordinate %q", line, strings.Join(rec, ","))
		}
		c := geo.AppCoordinate{Lat: lat, Lng: lng}
		if !c.Valid() {
			return nil, fmt.Errorf("line %d: coordinate %s out of range", line, c)
		}
		track = append(track, c)
	}
	return track, nil
}

type geoJSONObject struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
	Geometry    *geoJSONObject  `json:"geometry"`
	Features    []geoJSONObject `json:"features"`
}

func parseGeoJSONTrack(data []byte) ([]geo.AppCoordinate, error) {
	var obj geoJSONObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode geojson track: %w", err)
	}
	return collectPositions(obj)
}

func collectPositions(obj geoJSONObject) ([]geo.AppCoordinate, error) {
	switch obj.Type {
	case "FeatureCollection":
		var out []geo.AppCoordinate
		for _, f := range obj.Features {
			pts, err := collectPositions(f)
			if err != nil {
				return nil, err
			}
			out = append(out, pts...)
		}
		return out, nil
	case "Feature":
		if obj.Geometry == nil {
			return nil, nil
		}
		return collectPositions(*obj.Geometry)
	case "Point":
		var p geo.Position
		if err := json.Unmarshal(obj.Coordinates, &p); err != nil {
			return nil, fmt.Errorf("invalid point: %w", err)
		}
		return []geo.AppCoordinate{p.ToApp()}, nil
	case "LineString", "MultiPoint":
		var ps []geo.Position
		if err := json.Unmarshal(obj.Coordinates, &ps); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", obj.Type, err)
		}
		return geo.ToAppCoordinates(ps), nil
	}
	return nil, fmt.Errorf("unsupported track geometry %q", obj.Type)
}

// Watch отдает по одной точке трека на каждый тик; первая точка отдается сразу
func (p *ReplayProvider) Watch(ctx context.Context, _ Options) (<-chan Update, error) {
	if len(p.Track) == 0 {
		return nil, ErrEmptyTrack
	}
	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	interval := p.Interval
	if interval <= 0 {
		interval = time.Second
	}

	out := make(chan Update)
	go func() {
		defer close(out)
		ticker := clock.NewTicker(interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			if i == len(p.Track) {
				if !p.Loop {
					<-ctx.Done()
					return
				}
				i = 0
			}
			c := p.Track[i]
			s := Sample{Lat: c.Lat, Lng: c.Lng, Timestamp: clock.Now()}
			select {
			case out <- Update{Sample: &s}:
			case <-ctx.Done():
				return
			}
			select {
			case <-ticker.Chan():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// StaticProvider отдает одну и ту же точку с заданным шагом
type StaticProvider struct {
	Coordinate geo.AppCoordinate
	Interval   time.Duration
	Clock      clockwork.Clock
}

func (p *StaticProvider) Watch(ctx context.Context, opts Options) (<-chan Update, error) {
	replay := &ReplayProvider{
		Track:    []geo.AppCoordinate{p.Coordinate},
		Interval: p.Interval,
		Loop:     true,
		Clock:    p.Clock,
	}
	return replay.Watch(ctx, opts)
}

// UnsupportedProvider - устройство без геолокации
type UnsupportedProvider struct{}

func (UnsupportedProvider) Watch(context.Context, Options) (<-chan Update, error) {
	return nil, ErrUnsupported
}
