package geometry

import "math"

// parallelEpsilon is the denominator below which a ray and a segment are
// treated as parallel
const parallelEpsilon = 1e-10

// Hit describes where a ray crossed a segment
type Hit struct {
	T     float64 // ray parameter, the hit is at ray.PointAt(T)
	U     float64 // segment parameter in [0, 1] from A to B
	Point Point
}

// IntersectRay checks if the ray crosses the segment.
// Returns the hit and true when the crossing is in front of the ray origin and
// inside the segment (endpoints included).
func (s Segment) IntersectRay(r Ray) (Hit, bool) {
	// Ray: P = origin + t * dir for t >= 0
	// Segment: Q = A + u * (B - A) for 0 <= u <= 1
	seg := s.B.Minus(s.A)

	denominator := Cross(r.Dir, seg)
	if math.Abs(denominator) < parallelEpsilon {
		// Parallel or zero length
		return Hit{}, false
	}

	diff := s.A.Minus(r.Origin)
	u := Cross(diff, r.Dir) / denominator
	t := Cross(diff, seg) / denominator

	if u < 0 || u > 1 || t < 0 {
		return Hit{}, false
	}
	return Hit{T: t, U: u, Point: r.PointAt(t)}, true
}

// IntersectCircle returns where the ray first enters the circle. A ray that
// starts inside hits at its origin.
func (r Ray) IntersectCircle(center Point, radius float64) (Hit, bool) {
	a := Dot(r.Dir, r.Dir)
	if a == 0 || radius <= 0 {
		return Hit{}, false
	}
	oc := r.Origin.Minus(center)
	c := Dot(oc, oc) - radius*radius
	if c <= 0 {
		return Hit{T: 0, Point: r.Origin}, true
	}
	b := Dot(oc, r.Dir)
	discr := b*b - a*c
	if discr < 0 {
		return Hit{}, false
	}
	t := (-b - math.Sqrt(discr)) / a
	if t < 0 {
		return Hit{}, false
	}
	return Hit{T: t, Point: r.PointAt(t)}, true
}

// LineIntersection returns the point where segment a0-a1 crosses the infinite
// line through b0-b1
func LineIntersection(a0, a1, b0, b1 Point) (Point, bool) {
	da := a1.Minus(a0)
	db := b1.Minus(b0)
	denominator := Cross(da, db)
	if math.Abs(denominator) < parallelEpsilon {
		return Point{}, false
	}
	t := Cross(b0.Minus(a0), db) / denominator
	return a0.Plus(da.Times(t)), true
}

// NearestEdgeHit casts the ray against every edge of the closed polygon and
// returns the closest hit with the index of the edge's first vertex.
func NearestEdgeHit(points []Point, r Ray) (Hit, int, bool) {
	best := Hit{T: math.Inf(1)}
	bestEdge := -1
	n := len(points)
	for i := 0; i < n; i++ {
		seg := Segment{A: points[i], B: points[(i+1)%n]}
		hit, ok := seg.IntersectRay(r)
		if !ok {
			continue
		}
		if hit.T < best.T {
			best = hit
			bestEdge = i
		}
	}
	if bestEdge < 0 {
		return Hit{}, -1, false
	}
	return best, bestEdge, true
}
