package geo

// Ring - замкнутое кольцо вершин; первая и последняя точки могут совпадать, но не обязаны
type Ring []Position

// Polygon - набор колец, Polygon[0] внешняя граница, остальные дырки
type Polygon []Ring

// PointInPolygon проверяет попадание точки в полигон методом трассировки луча (even-odd).
// Учитывается только внешнее кольцо, дырки не вычитаются.
// Точка и вершины должны быть в одном порядке координат, X = Lng, Y = Lat.
func PointInPolygon(point Position, polygon Polygon) bool {
	if len(polygon) == 0 {
		return false
	}
	return pointInRing(point, polygon[0])
}

func pointInRing(point Position, ring Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	x, y := point.Lng, point.Lat
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := ring[i].Lng, ring[i].Lat
		xj, yj := ring[j].Lng, ring[j].Lat

		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Closed возвращает кольцо, у которого последняя вершина совпадает с первой
func (r Ring) Closed() Ring {
	if len(r) == 0 || r[0] == r[len(r)-1] {
		return r
	}
	closed := make(Ring, len(r), len(r)+1)
	copy(closed, r)
	return append(closed, r[0])
}

// Bounds возвращает ограничивающий прямоугольник кольца
func (r Ring) Bounds() (Bounds, bool) {
	var b Bounds
	if len(r) == 0 {
		return b, false
	}
	b = PointBounds(r[0].ToApp())
	for _, p := range r[1:] {
		b = b.Extend(p.ToApp())
	}
	return b, true
}
