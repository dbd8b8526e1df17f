package mapview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/geo"
)

//go:generate mockgen -source=search.go -destination=mocks/geocoder_mock.go -package=mocks

const DefaultGeocoderURL = "https://nominatim.openstreetmap.org"

var (
	ErrPlaceNotFound     = errors.New("location not found")
	ErrEmptyQuery        = errors.New("search query is empty")
	ErrSearchUnavailable = errors.New("search is only available while editing a zone")
)

// Place - найденное место
type Place struct {
	Name   string
	Center geo.AppCoordinate
	Bounds geo.Bounds
}

// Geocoder ищет место по названию; (nil, nil) - ничего не найдено
type Geocoder interface {
	Search(ctx context.Context, query string) (*Place, error)
}

// NamedZone - существующая зона для поиска по имени
type NamedZone struct {
	Name string
	Zone *geo.SafeZone
}

// SearchSource - откуда взят результат поиска
type SearchSource string

const (
	SourceZone     SearchSource = "zone"
	SourceGeocoder SearchSource = "geocoder"
)

type SearchResult struct {
	Source SearchSource
	Name   string
	Bounds geo.Bounds
	View   View
}

// SetKnownZones задает зоны, по которым сначала идет поиск
func (s *Surface) SetKnownZones(zones []NamedZone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.known = append([]NamedZone(nil), zones...)
}

// Search ищет сначала среди известных зон (точное совпадение, затем вхождение без учета регистра),
// потом через геокодер. Найденная область становится видом карты.
func (s *Surface) Search(ctx context.Context, query string) (*SearchResult, error) {
	if s.opts.Mode != Editable {
		return nil, ErrSearchUnavailable
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if zone, ok := s.matchZone(query); ok {
		b, _ := zone.Zone.Geometry.Bounds()
		return &SearchResult{Source: SourceZone, Name: zone.Name, Bounds: b, View: s.FitBounds(b)}, nil
	}

	if s.opts.Geocoder == nil {
		return nil, ErrPlaceNotFound
	}
	place, err := s.opts.Geocoder.Search(ctx, query)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"component": "mapview",
			"query":     query,
		}).WithError(err).Warn("Geocoder lookup failed")
		return nil, ErrPlaceNotFound
	}
	if place == nil {
		return nil, ErrPlaceNotFound
	}
	return &SearchResult{Source: SourceGeocoder, Name: place.Name, Bounds: place.Bounds, View: s.FitBounds(place.Bounds)}, nil
}

func (s *Surface) matchZone(query string) (NamedZone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	var partial *NamedZone
	for i := range s.known {
		z := s.known[i]
		if !z.Zone.Restricts() {
			continue
		}
		name := strings.ToLower(z.Name)
		if name == q {
			return z, true
		}
		if partial == nil && strings.Contains(name, q) {
			partial = &s.known[i]
		}
	}
	if partial != nil {
		return *partial, true
	}
	return NamedZone{}, false
}

// Nominatim - клиент геокодера OpenStreetMap Nominatim
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewNominatim(baseURL, userAgent string, timeout time.Duration) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultGeocoderURL
	}
	return &Nominatim{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type nominatimPlace struct {
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`
	BoundingBox []string `json:"boundingbox"`
}

// Search возвращает первый результат; boundingbox приходит как [south, north, west, east] строками
func (n *Nominatim) Search(ctx context.Context, query string) (*Place, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocoder: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder: unexpected status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("geocoder: failed to decode response: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}
	return places[0].toPlace()
}

func (p nominatimPlace) toPlace() (*Place, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder: invalid lat %q: %w", p.Lat, err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geocoder: invalid lon %q: %w", p.Lon, err)
	}
	center := geo.AppCoordinate{Lat: lat, Lng: lng}
	place := &Place{Name: p.DisplayName, Center: center, Bounds: geo.PointBounds(center)}

	if len(p.BoundingBox) == 4 {
		var bb [4]float64
		for i, v := range p.BoundingBox {
			if bb[i], err = strconv.ParseFloat(v, 64); err != nil {
				return place, nil
			}
		}
		place.Bounds = geo.Bounds{South: bb[0], North: bb[1], West: bb[2], East: bb[3]}
	}
	return place, nil
}
