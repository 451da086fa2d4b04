package shadows

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"

	"chosenoffset.com/astrolight/internal/core/geometry"
)

// LightningPolygon is the region a light at Center can see. It starts as a
// rectangle and every ClipOne cuts the shadow of one occluder out of it.
// Points are in world space, clockwise, and always enclose Center.
//
// A LightningPolygon is owned by a single light for a single frame.
type LightningPolygon struct {
	Points []geometry.Point
	Center geometry.Point

	// bounds is the original unclipped rectangle
	bounds geom.Rect
}

// NewRectangle creates an unclipped light polygon covering the rectangle
func NewRectangle(xMin, yMin, xMax, yMax float64, center geometry.Point) *LightningPolygon {
	return &LightningPolygon{
		Points: []geometry.Point{
			{X: xMin, Y: yMin},
			{X: xMin, Y: yMax},
			{X: xMax, Y: yMax},
			{X: xMax, Y: yMin},
		},
		Center: center,
		bounds: geom.Rect{Min: geometry.Pt(xMin, yMin), Max: geometry.Pt(xMax, yMax)},
	}
}

// Bounds returns the original rectangle
func (lp *LightningPolygon) Bounds() geom.Rect {
	return lp.bounds
}

// IsBorderPoint reports whether the point lies on one of the rectangle's
// edge lines, as opposed to a point introduced by clipping
func (lp *LightningPolygon) IsBorderPoint(p geometry.Point) bool {
	return geometry.Eq(p.X, lp.bounds.Min.X) || geometry.Eq(p.X, lp.bounds.Max.X) ||
		geometry.Eq(p.Y, lp.bounds.Min.Y) || geometry.Eq(p.Y, lp.bounds.Max.Y)
}

// Triangles returns a fan anchored at Center. Recomputed on every call.
func (lp *LightningPolygon) Triangles() geometry.Triangulation {
	return geometry.Fan(lp.Center, lp.Points)
}

// ClipOne cuts the shadow of an unrotated occluder at position out of the
// polygon. Returns false and leaves the polygon untouched when there is
// nothing to cut.
func (lp *LightningPolygon) ClipOne(o Occluder, position geometry.Point) bool {
	return lp.ClipOneRotated(o, position, 0)
}

// ClipOneRotated is ClipOne for occluders with a rotation
func (lp *LightningPolygon) ClipOneRotated(o Occluder, position geometry.Point, rotation float64) bool {
	a, b, ok := Silhouette(o, lp.Center, position, rotation)
	if !ok {
		return false
	}
	t1, t2 := orderClockwise(lp.Center, a, b)

	// First edge each tangent ray runs into
	hit1, e1, ok := geometry.NearestEdgeHit(lp.Points, geometry.NewRay(lp.Center, t1))
	if !ok {
		return false
	}
	hit2, e2, ok := geometry.NearestEdgeHit(lp.Points, geometry.NewRay(lp.Center, t2))
	if !ok {
		return false
	}
	if e1 == e2 && hit2.U < hit1.U {
		// Would have to walk all the way around
		return false
	}

	// The chord t1-t2 splits the plane; the light is on the front side
	normal := geometry.Perp(t2.Minus(t1))
	side := geometry.Dot(lp.Center.Minus(t1), normal)
	if math.Abs(side) < geometry.Eps*geometry.Eps {
		return false
	}
	if side > 0 {
		normal = normal.Times(-1)
	}
	behind := func(p geometry.Point) bool {
		return geometry.Dot(p.Minus(t1), normal) > 0
	}

	// Boundary from hit1 to hit2 walking clockwise: vertices e1+1 .. e2
	n := len(lp.Points)
	span := (e2 - e1 + n) % n
	chain := make([]geometry.Point, 0, span+2)
	chain = append(chain, hit1.Point)
	for k := 1; k <= span; k++ {
		chain = append(chain, lp.Points[(e1+k)%n])
	}
	chain = append(chain, hit2.Point)

	occluded := false
	for _, p := range chain {
		if behind(p) {
			occluded = true
			break
		}
	}
	if !occluded {
		return false
	}

	notch := notchPath(chain, t1, t2, behind)
	lp.Points = splice(lp.Points, e1, span, notch)
	return true
}

// notchPath clips the chain against the chord half-plane and walks the
// tangent rays in and out of it: I1, T1, ..., T2, I2.
func notchPath(chain []geometry.Point, t1, t2 geometry.Point, behind func(geometry.Point) bool) []geometry.Point {
	path := make([]geometry.Point, 0, len(chain)+4)
	first := chain[0]
	path = append(path, first)
	if behind(first) {
		path = append(path, t1)
	}
	for k := 1; k < len(chain); k++ {
		prev, cur := chain[k-1], chain[k]
		prevBehind, curBehind := behind(prev), behind(cur)
		if prevBehind != curBehind {
			if ix, ok := geometry.LineIntersection(prev, cur, t1, t2); ok {
				path = append(path, ix)
			}
		}
		if !curBehind {
			path = append(path, cur)
		}
	}
	last := chain[len(chain)-1]
	if behind(last) {
		path = append(path, t2, last)
	}
	return path
}

// splice builds the new boundary in one pass: vertices e1+1 .. e1+span are
// dropped and the notch goes right after vertex e1
func splice(points []geometry.Point, e1, span int, notch []geometry.Point) []geometry.Point {
	n := len(points)
	if e1 < 0 || e1 >= n || span < 0 || span >= n {
		panic(fmt.Sprintf("shadows: splice edge %d span %d out of range for %d points", e1, span, n))
	}
	out := make([]geometry.Point, 0, n-span+len(notch))
	for i := 0; i < n; i++ {
		d := (i - e1 + n) % n
		if d < 1 || d > span {
			out = append(out, points[i])
		}
		if i == e1 {
			out = append(out, notch...)
		}
	}
	if len(out) != n-span+len(notch) {
		panic(fmt.Sprintf("shadows: splice produced %d points, want %d", len(out), n-span+len(notch)))
	}
	return geometry.Dedupe(out)
}
