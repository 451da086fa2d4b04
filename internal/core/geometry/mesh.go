package geometry

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// Triangulation is an indexed triangle list ready for a vertex/index buffer
// upload. Indices come in triples.
type Triangulation struct {
	Points  []Point
	Indices []uint16
}

// Vertices flattens the points into x, y float32 pairs
func (t Triangulation) Vertices() []float32 {
	out := make([]float32, 0, len(t.Points)*2)
	for _, p := range t.Points {
		out = append(out, float32(p.X), float32(p.Y))
	}
	return out
}

// Triangles expands the index list into triangles
func (t Triangulation) Triangles() []geom.Triangle {
	tris := make([]geom.Triangle, 0, len(t.Indices)/3)
	for i := 0; i+2 < len(t.Indices); i += 3 {
		tris = append(tris, geom.Triangle{
			A: t.Points[t.Indices[i]],
			B: t.Points[t.Indices[i+1]],
			C: t.Points[t.Indices[i+2]],
		})
	}
	return tris
}

// Area sums the unsigned area of every triangle
func (t Triangulation) Area() float64 {
	total := 0.0
	for _, tri := range t.Triangles() {
		a := Cross(tri.B.Minus(tri.A), tri.C.Minus(tri.A)) / 2
		if a < 0 {
			a = -a
		}
		total += a
	}
	return total
}

// Fan triangulates a star-shaped point sequence around anchor: anchor goes
// first, then the boundary; each triple is (0, i, i+1) wrapping back to 1.
// Panics when the points do not fit 16-bit indices.
func Fan(anchor Point, boundary []Point) Triangulation {
	n := len(boundary)
	if n > math.MaxUint16 {
		panic(fmt.Sprintf("geometry: fan of %d points overflows uint16 indices", n+1))
	}
	points := make([]Point, 0, n+1)
	points = append(points, anchor)
	points = append(points, boundary...)

	indices := make([]uint16, 0, n*3)
	for i := 1; i <= n; i++ {
		next := i + 1
		if next == n+1 {
			next = 1
		}
		indices = append(indices, 0, uint16(i), uint16(next))
	}
	return Triangulation{Points: points, Indices: indices}
}
