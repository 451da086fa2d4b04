package shadows

import (
	"math"

	"chosenoffset.com/astrolight/internal/core/geometry"
)

// Tangents returns the two points on the circle where lines from external
// touch it. ok is false when external lies inside the circle, on it, or within
// geometry.Eps of it.
func Tangents(center geometry.Point, radius float64, external geometry.Point) (t1, t2 geometry.Point, ok bool) {
	if radius <= 0 {
		return geometry.Point{}, geometry.Point{}, false
	}
	if external.DistanceFrom(center)-radius <= geometry.Eps {
		return geometry.Point{}, geometry.Point{}, false
	}

	// Work on the unit circle: tangent point t satisfies t.n = 1 and |t| = 1
	n := external.Minus(center).Times(1 / radius)
	xy := n.X*n.X + n.Y*n.Y

	discr := n.Y * math.Sqrt(xy-1)
	tx0 := (n.X - discr) / xy
	tx1 := (n.X + discr) / xy

	var yt0, yt1 float64
	if n.Y != 0 {
		yt0 = center.Y + radius*(1-tx0*n.X)/n.Y
		yt1 = center.Y + radius*(1-tx1*n.X)/n.Y
	} else {
		// Both roots share x; split on y directly
		d := radius * math.Sqrt(math.Max(0, 1-tx0*tx0))
		yt0 = center.Y + d
		yt1 = center.Y - d
	}

	t1 = geometry.Point{X: center.X + radius*tx0, Y: yt0}
	t2 = geometry.Point{X: center.X + radius*tx1, Y: yt1}
	return t1, t2, true
}
