package shadows

import (
	"math"

	"chosenoffset.com/astrolight/internal/core/geometry"
)

// Occluder is the shape of something that blocks light. The set of shapes is
// closed: Circle, Convex and Wall.
type Occluder interface {
	occluder()
}

// Circle is a round occluder centered on its position
type Circle struct {
	Radius float64
}

// Convex is a convex hull in occluder-local space, rotated and translated by
// the occluder's transform
type Convex struct {
	Points []geometry.Point
}

// Wall is a single segment in occluder-local space
type Wall struct {
	A, B geometry.Point
}

func (Circle) occluder() {}
func (Convex) occluder() {}
func (Wall) occluder()   {}

// BoundingRadius returns the radius of a circle around the occluder's
// position that contains the whole shape
func BoundingRadius(o Occluder) float64 {
	switch g := o.(type) {
	case Circle:
		return g.Radius
	case Convex:
		r := 0.0
		for _, p := range g.Points {
			r = math.Max(r, p.Magnitude())
		}
		return r
	case Wall:
		return math.Max(g.A.Magnitude(), g.B.Magnitude())
	default:
		return 0
	}
}

// Silhouette returns the two outermost points of the occluder as seen from
// observer (tangent points for a circle). ok is false when the observer is
// inside or on the shape, or lined up with a wall.
func Silhouette(o Occluder, observer, position geometry.Point, rotation float64) (a, b geometry.Point, ok bool) {
	switch g := o.(type) {
	case Circle:
		return Tangents(position, g.Radius, observer)
	case Convex:
		iso := geometry.NewIsometry(position, rotation)
		return convexSilhouette(iso.TransformAll(g.Points), observer)
	case Wall:
		iso := geometry.NewIsometry(position, rotation)
		a, b = iso.Transform(g.A), iso.Transform(g.B)
		if math.Abs(geometry.Cross(a.Minus(observer), b.Minus(observer))) < geometry.Eps*geometry.Eps {
			return geometry.Point{}, geometry.Point{}, false
		}
		return a, b, true
	default:
		return geometry.Point{}, geometry.Point{}, false
	}
}

// convexSilhouette finds the vertices with the smallest and largest angle
// around the observer, measured from the direction of the hull's centroid
func convexSilhouette(hull []geometry.Point, observer geometry.Point) (geometry.Point, geometry.Point, bool) {
	if len(hull) < 2 {
		return geometry.Point{}, geometry.Point{}, false
	}
	if len(hull) >= 3 && geometry.PointInPolygon(observer, hull) {
		return geometry.Point{}, geometry.Point{}, false
	}
	axis := geometry.Centroid(hull).Minus(observer)
	if axis.Magnitude() < geometry.Eps {
		return geometry.Point{}, geometry.Point{}, false
	}

	minAngle, maxAngle := math.Inf(1), math.Inf(-1)
	var lo, hi geometry.Point
	for _, v := range hull {
		d := v.Minus(observer)
		if d.Magnitude() < geometry.Eps {
			// Observer sits on a vertex
			return geometry.Point{}, geometry.Point{}, false
		}
		angle := math.Atan2(geometry.Cross(axis, d), geometry.Dot(axis, d))
		if angle < minAngle {
			minAngle, lo = angle, v
		}
		if angle > maxAngle {
			maxAngle, hi = angle, v
		}
	}
	if maxAngle-minAngle >= math.Pi-geometry.Eps || maxAngle-minAngle < geometry.Eps*geometry.Eps {
		return geometry.Point{}, geometry.Point{}, false
	}
	return lo, hi, true
}

// orderClockwise returns the two silhouette points so that a clockwise sweep
// around center meets first before second
func orderClockwise(center, a, b geometry.Point) (first, second geometry.Point) {
	if geometry.Cross(a.Minus(center), b.Minus(center)) > 0 {
		// b is counter-clockwise of a, so the sweep reaches b first
		return b, a
	}
	return a, b
}
