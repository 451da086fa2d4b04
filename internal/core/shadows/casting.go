package shadows

import (
	"chosenoffset.com/astrolight/internal/core/geometry"
)

// DefaultShadowLength is how far a shadow volume reaches past its occluder
const DefaultShadowLength = 100.0

// ShadowGeometry builds the shadow volume an occluder casts away from
// observer. Returns false when the occluder cannot cast a shadow from there.
func ShadowGeometry(observer geometry.Point, o Occluder, position geometry.Point, rotation float64) (geometry.Triangulation, bool) {
	return ShadowGeometryLength(observer, o, position, rotation, DefaultShadowLength)
}

// ShadowGeometryLength is ShadowGeometry with an explicit reach.
// The result is a clockwise quad [T1, F1, F2, T2] in world space where T are
// the silhouette points and F the same points pushed away from the observer.
func ShadowGeometryLength(observer geometry.Point, o Occluder, position geometry.Point, rotation, length float64) (geometry.Triangulation, bool) {
	if length <= 0 {
		return geometry.Triangulation{}, false
	}
	a, b, ok := Silhouette(o, observer, position, rotation)
	if !ok {
		return geometry.Triangulation{}, false
	}
	t1, t2 := orderClockwise(observer, a, b)

	f1 := t1.Plus(t1.Minus(observer).Unit().Times(length))
	f2 := t2.Plus(t2.Minus(observer).Unit().Times(length))

	return geometry.Triangulation{
		Points:  []geometry.Point{t1, f1, f2, t2},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}, true
}
