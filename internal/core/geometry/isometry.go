package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Isometry is a rigid transform: rotate around the origin, then translate.
type Isometry struct {
	Translation Point
	Rotation    float64 // radians, counter-clockwise
}

// NewIsometry creates an isometry at position with the given rotation
func NewIsometry(position Point, rotation float64) Isometry {
	return Isometry{Translation: position, Rotation: rotation}
}

// Transform maps a local point into world space
func (iso Isometry) Transform(p Point) Point {
	return Rotate(p, iso.Rotation).Plus(iso.Translation)
}

// TransformAll maps every local point into world space
func (iso Isometry) TransformAll(points []Point) []Point {
	rot := mgl64.Rotate2D(iso.Rotation)
	out := make([]Point, len(points))
	for i, p := range points {
		v := rot.Mul2x1(mgl64.Vec2{p.X, p.Y})
		out[i] = Point{X: v[0] + iso.Translation.X, Y: v[1] + iso.Translation.Y}
	}
	return out
}

// InverseTransform maps a world point into local space
func (iso Isometry) InverseTransform(p Point) Point {
	return Rotate(p.Minus(iso.Translation), -iso.Rotation)
}

// Rotate rotates v counter-clockwise by angle radians
func Rotate(v Vector, angle float64) Vector {
	if angle == 0 {
		return v
	}
	r := mgl64.Rotate2D(angle).Mul2x1(mgl64.Vec2{v.X, v.Y})
	return Vector{X: r[0], Y: r[1]}
}
