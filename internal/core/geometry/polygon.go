package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// SignedArea returns the shoelace area of a closed point sequence.
// Negative for clockwise winding (y up), positive for counter-clockwise.
func SignedArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += Cross(points[i], points[(i+1)%n])
	}
	return sum / 2
}

// Centroid returns the area centroid of a closed polygon. Degenerate polygons
// fall back to the vertex average.
func Centroid(points []Point) Point {
	n := len(points)
	if n == 0 {
		return Point{}
	}
	area := SignedArea(points)
	if math.Abs(area) < Eps*Eps {
		avg := Point{}
		for _, p := range points {
			avg = avg.Plus(p)
		}
		return avg.Times(1 / float64(n))
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		a, b := points[i], points[(i+1)%n]
		c := Cross(a, b)
		cx += (a.X + b.X) * c
		cy += (a.Y + b.Y) * c
	}
	return Point{X: cx / (6 * area), Y: cy / (6 * area)}
}

// PointInPolygon tests if a point is inside a polygon using ray casting algorithm
func PointInPolygon(point Point, polygon []Point) bool {
	inside := false
	j := len(polygon) - 1

	for i := 0; i < len(polygon); i++ {
		xi, yi := polygon[i].X, polygon[i].Y
		xj, yj := polygon[j].X, polygon[j].Y

		if ((yi > point.Y) != (yj > point.Y)) &&
			(point.X < (xj-xi)*(point.Y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
		j = i
	}

	return inside
}

// IsConvex reports whether every turn of the closed sequence goes the same
// way. Collinear runs are allowed.
func IsConvex(points []Point) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	var positive, negative int
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		c := points[(i+2)%n]
		turn := Cross(b.Minus(a), c.Minus(b))
		if turn > Eps*Eps {
			positive++
		} else if turn < -Eps*Eps {
			negative++
		}
		if positive > 0 && negative > 0 {
			return false
		}
	}
	return positive+negative > 0
}

// Bounds returns the axis aligned box around the points
func Bounds(points []Point) geom.Rect {
	if len(points) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.ExpandToContainCoord(p)
	}
	return r
}

// ClipHalfPlane clips a closed convex polygon to the half-plane
// dot(p - origin, normal) <= 0 (Sutherland-Hodgman, one clip edge).
// Winding is preserved. The result may have fewer than 3 points.
func ClipHalfPlane(points []Point, origin Point, normal Vector) []Point {
	if len(points) == 0 {
		return nil
	}
	inside := func(p Point) bool {
		return Dot(p.Minus(origin), normal) <= 0
	}
	edge := Perp(normal)
	lineEnd := origin.Plus(edge)

	output := make([]Point, 0, len(points)+1)
	for j := 0; j < len(points); j++ {
		current := points[j]
		next := points[(j+1)%len(points)]
		curInside := inside(current)
		nextInside := inside(next)

		if curInside && nextInside {
			output = append(output, next)
		} else if curInside && !nextInside {
			if ix, ok := LineIntersection(current, next, origin, lineEnd); ok {
				output = append(output, ix)
			}
		} else if !curInside && nextInside {
			if ix, ok := LineIntersection(current, next, origin, lineEnd); ok {
				output = append(output, ix)
			}
			output = append(output, next)
		}
	}
	return output
}

// Dedupe drops consecutive points (including last/first) closer than Eps
func Dedupe(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && EqPoint(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && EqPoint(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}
