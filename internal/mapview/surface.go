package mapview

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/ojt_tracker/internal/geo"
)

type Mode int

const (
	ReadOnly Mode = iota
	Editable
)

const (
	DefaultWidth     = 800
	DefaultHeight    = 600
	DefaultZoom      = 13
	MaxZoom          = 18
	PointZoom        = 17
	FitPadding       = 0.1
	DefaultTileURL   = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"
	TileAttribution  = "© OpenStreetMap contributors"
	defaultLatitude  = 14.5995
	defaultLongitude = 120.9842
)

// Style - оформление слоя зоны
type Style struct {
	Color       string
	FillColor   string
	FillOpacity float64
	Weight      float64
	Dashed      bool
}

var (
	EditableZoneStyle = Style{Color: "#2563eb", FillColor: "#3b82f6", FillOpacity: 0.2, Weight: 3}
	ReadOnlyZoneStyle = Style{Color: "#16a34a", FillColor: "#22c55e", FillOpacity: 0.15, Weight: 2, Dashed: true}
)

// ZoneLayer - то, что отрисовывается для безопасной зоны
type ZoneLayer struct {
	Ring           []geo.AppCoordinate
	Style          Style
	Label          string
	PermanentLabel bool
}

// Marker - точка на карте с всплывающей подписью
type Marker struct {
	ID       string
	Position geo.AppCoordinate
	Title    string
	Popup    string
}

// View - видимая область карты
type View struct {
	Center geo.AppCoordinate
	Zoom   int
	Bounds geo.Bounds
}

type Options struct {
	Mode      Mode
	Width     int
	Height    int
	TileURL   string
	ShowLabel bool
	Geocoder  Geocoder
	Toolkit   Toolkit
	Listener  ZoneListener
}

// Surface хранит состояние карты: зону, маркеры, позицию пользователя и вид.
// В режиме Editable события инструмента рисования превращаются в геометрию зоны.
type Surface struct {
	opts   Options
	logger *logrus.Logger

	mu           sync.Mutex
	zoneIdentity string
	zone         *geo.SafeZone
	shapeID      string
	user         *geo.AppCoordinate
	markers      []Marker
	known        []NamedZone
	view         View
	fitted       bool
}

func NewSurface(opts Options, logger *logrus.Logger) *Surface {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.TileURL == "" {
		opts.TileURL = DefaultTileURL
	}
	center := geo.AppCoordinate{Lat: defaultLatitude, Lng: defaultLongitude}
	s := &Surface{
		opts:   opts,
		logger: logger,
		view:   viewAt(center, DefaultZoom, opts.Width, opts.Height),
	}
	if opts.Mode == Editable && opts.Toolkit != nil {
		opts.Toolkit.Attach(s.HandleShapeEvent)
	}
	return s
}

// Close отключает инструмент рисования
func (s *Surface) Close() {
	if s.opts.Mode == Editable && s.opts.Toolkit != nil {
		s.opts.Toolkit.Detach()
	}
}

func (s *Surface) Mode() Mode {
	return s.opts.Mode
}

// SetZone задает зону; смена identity (другая компания) разрешает повторную подгонку вида
func (s *Surface) SetZone(identity string, zone *geo.SafeZone) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if identity != s.zoneIdentity {
		s.zoneIdentity = identity
		s.fitted = false
		s.shapeID = ""
	}
	s.zone = zone
	s.fitLocked()
}

func (s *Surface) Zone() *geo.SafeZone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zone
}

// SetUserLocation обновляет позицию пользователя; вид не перестраивается после первой подгонки
func (s *Surface) SetUserLocation(c *geo.AppCoordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = c
	s.fitLocked()
}

func (s *Surface) UserLocation() *geo.AppCoordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *Surface) SetMarkers(markers []Marker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = append([]Marker(nil), markers...)
}

func (s *Surface) Markers() []Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Marker(nil), s.markers...)
}

func (s *Surface) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// ZoneLayer возвращает слой зоны в координатах карты (lat, lng); nil без зоны
func (s *Surface) ZoneLayer() *ZoneLayer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.zone.Restricts() {
		return nil
	}
	layer := &ZoneLayer{
		Ring:  geo.ToAppCoordinates(s.zone.Geometry.OuterRing()),
		Style: EditableZoneStyle,
		Label: s.zone.Label,
	}
	if s.opts.Mode == ReadOnly {
		layer.Style = ReadOnlyZoneStyle
		layer.PermanentLabel = s.opts.ShowLabel && s.zone.Label != ""
	}
	return layer
}

// HandleShapeEvent принимает события инструмента рисования.
// Одновременно на карте только одна фигура: новая заменяет старую.
func (s *Surface) HandleShapeEvent(ev ShapeEvent) {
	if s.opts.Mode != Editable {
		return
	}
	log := s.logger.WithFields(logrus.Fields{
		"component": "mapview",
		"event":     ev.Kind.String(),
		"shape_id":  ev.ShapeID,
	})

	switch ev.Kind {
	case ShapeCreated, ShapeEdited:
		g, err := ShapeGeometry(ev.Shape, ev.LatLngs)
		if err != nil {
			log.WithError(err).Warn("Ignoring invalid shape")
			return
		}

		s.mu.Lock()
		previous := s.shapeID
		s.shapeID = ev.ShapeID
		label := ""
		if s.zone != nil {
			label = s.zone.Label
		}
		s.zone = &geo.SafeZone{Geometry: g, Label: label}
		s.mu.Unlock()

		if ev.Kind == ShapeCreated && previous != "" && previous != ev.ShapeID && s.opts.Toolkit != nil {
			s.opts.Toolkit.Remove(previous)
		}
		log.Debug("Zone drawn")
		if s.opts.Listener != nil {
			s.opts.Listener.OnZoneDrawn(*g)
		}

	case ShapeDeleted:
		s.mu.Lock()
		if s.shapeID != "" && ev.ShapeID != "" && ev.ShapeID != s.shapeID {
			s.mu.Unlock()
			return
		}
		s.shapeID = ""
		if s.zone != nil {
			s.zone = &geo.SafeZone{Label: s.zone.Label}
		}
		s.mu.Unlock()

		log.Debug("Zone cleared")
		if s.opts.Listener != nil {
			s.opts.Listener.OnZoneCleared()
		}
	}
}

// FitBounds перестраивает вид под прямоугольник с отступом
func (s *Surface) FitBounds(b geo.Bounds) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = fitView(b, s.opts.Width, s.opts.Height)
	return s.view
}

func (s *Surface) fitLocked() {
	if s.fitted {
		return
	}
	var (
		b  geo.Bounds
		ok bool
	)
	if s.zone.Restricts() {
		b, ok = s.zone.Geometry.Bounds()
	}
	if s.user != nil {
		if ok {
			b = b.Extend(*s.user)
		} else {
			b, ok = geo.PointBounds(*s.user), true
		}
	}
	if !ok {
		return
	}
	s.view = fitView(b, s.opts.Width, s.opts.Height)
	s.fitted = true
}

func fitView(b geo.Bounds, width, height int) View {
	if b.North == b.South && b.East == b.West {
		return viewAt(b.Center(), PointZoom, width, height)
	}
	padded := b.Pad(FitPadding)
	zoom := BoundsZoom(padded, width, height)
	return View{Center: padded.Center(), Zoom: zoom, Bounds: padded}
}

func viewAt(center geo.AppCoordinate, zoom, width, height int) View {
	scale := float64(tileSize) * math.Exp2(float64(zoom))
	dLng := float64(width) / scale * 360 / 2
	dLat := float64(height) / scale * 180 / 2
	return View{
		Center: center,
		Zoom:   zoom,
		Bounds: geo.Bounds{
			South: math.Max(center.Lat-dLat, -maxLatitude),
			West:  center.Lng - dLng,
			North: math.Min(center.Lat+dLat, maxLatitude),
			East:  center.Lng + dLng,
		},
	}
}
