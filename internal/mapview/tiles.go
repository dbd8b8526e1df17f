package mapview

import (
	"math"
	"strconv"
	"strings"

	"github.com/shenikar/ojt_tracker/internal/geo"
)

const (
	tileSize    = 256
	maxLatitude = 85.05112878
)

// Tile - тайл в схеме slippy map (z/x/y)
type Tile struct {
	X, Y, Z int
}

// URL подставляет координаты тайла в шаблон вида https://.../{z}/{x}/{y}.png
func (t Tile) URL(template string) string {
	return strings.NewReplacer(
		"{z}", strconv.Itoa(t.Z),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
		"{s}", "abc"[abs(t.X+t.Y)%3:abs(t.X+t.Y)%3+1],
	).Replace(template)
}

// TileAt возвращает тайл, содержащий координату на уровне zoom
func TileAt(c geo.AppCoordinate, zoom int) Tile {
	n := math.Exp2(float64(zoom))
	lat := clampLat(c.Lat) * math.Pi / 180
	x := int(math.Floor((c.Lng + 180) / 360 * n))
	y := int(math.Floor((1 - math.Log(math.Tan(lat)+1/math.Cos(lat))/math.Pi) / 2 * n))
	maxIndex := int(n) - 1
	return Tile{X: clampInt(x, 0, maxIndex), Y: clampInt(y, 0, maxIndex), Z: zoom}
}

// TileRange перечисляет тайлы, покрывающие вид, построчно с севера на юг
func TileRange(b geo.Bounds, zoom int) []Tile {
	nw := TileAt(geo.AppCoordinate{Lat: b.North, Lng: b.West}, zoom)
	se := TileAt(geo.AppCoordinate{Lat: b.South, Lng: b.East}, zoom)

	tiles := make([]Tile, 0, (se.X-nw.X+1)*(se.Y-nw.Y+1))
	for y := nw.Y; y <= se.Y; y++ {
		for x := nw.X; x <= se.X; x++ {
			tiles = append(tiles, Tile{X: x, Y: y, Z: zoom})
		}
	}
	return tiles
}

// BoundsZoom - наибольший zoom, при котором прямоугольник помещается в width x height пикселей
func BoundsZoom(b geo.Bounds, width, height int) int {
	lngSpan := b.East - b.West
	latSpan := mercatorY(b.North) - mercatorY(b.South)

	zoom := MaxZoom
	if lngSpan > 0 {
		zoom = min(zoom, int(math.Floor(math.Log2(float64(width)*360/(tileSize*lngSpan)))))
	}
	if latSpan > 0 {
		zoom = min(zoom, int(math.Floor(math.Log2(float64(height)*2*math.Pi/(tileSize*latSpan)))))
	}
	return clampInt(zoom, 0, MaxZoom)
}

func mercatorY(lat float64) float64 {
	rad := clampLat(lat) * math.Pi / 180
	return math.Log(math.Tan(math.Pi/4 + rad/2))
}

func clampLat(lat float64) float64 {
	return math.Max(-maxLatitude, math.Min(maxLatitude, lat))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// TileURLs возвращает адреса тайлов текущего вида
func (s *Surface) TileURLs() []string {
	view := s.View()
	tiles := TileRange(view.Bounds, view.Zoom)
	urls := make([]string, len(tiles))
	for i, t := range tiles {
		urls[i] = t.URL(s.opts.TileURL)
	}
	return urls
}
