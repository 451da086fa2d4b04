// Package geometry holds the 2D primitives shared by the polygon and shadow
// code: points, rays, segments, isometries and triangle meshes.
package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Eps is the tolerance used for every "close enough" comparison in the core.
const Eps = 1e-3

// Point represents a 2D point in space
type Point = geom.Coord

// Vector is a direction or offset; same representation as Point
type Vector = geom.Coord

// Pt builds a Point from its coordinates
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Eq reports whether a and b are equal within Eps
func Eq(a, b float64) bool {
	return math.Abs(a-b) < Eps
}

// EqPoint reports whether both coordinates are equal within Eps
func EqPoint(a, b Point) bool {
	return Eq(a.X, b.X) && Eq(a.Y, b.Y)
}

// Dot returns the dot product of a and b
func Dot(a, b Vector) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z component of a x b.
// Positive when b is counter-clockwise from a.
func Cross(a, b Vector) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Perp returns a rotated 90 degrees counter-clockwise
func Perp(a Vector) Vector {
	return Vector{X: -a.Y, Y: a.X}
}

// Lerp interpolates between a (t=0) and b (t=1)
func Lerp(a, b Point, t float64) Point {
	return a.Plus(b.Minus(a).Times(t))
}

// Ray is an origin and a direction. The direction does not need to be unit length.
type Ray struct {
	Origin Point
	Dir    Vector
}

// NewRay creates a ray from origin towards through
func NewRay(origin, through Point) Ray {
	return Ray{Origin: origin, Dir: through.Minus(origin)}
}

// PointAt returns origin + t*dir
func (r Ray) PointAt(t float64) Point {
	return r.Origin.Plus(r.Dir.Times(t))
}

// Segment is one edge of a polygon
type Segment struct {
	A, B Point
}

// Length returns the distance between the endpoints
func (s Segment) Length() float64 {
	return s.A.DistanceFrom(s.B)
}

// Bounds returns the axis aligned box around the segment
func (s Segment) Bounds() geom.Rect {
	r := geom.Rect{Min: s.A, Max: s.A}
	r.ExpandToContainCoord(s.B)
	return r
}
