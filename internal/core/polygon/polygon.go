// Package polygon generates and breaks apart the convex shapes used for
// asteroids. Polygons are values: operations return new polygons and never
// modify the receiver's points.
package polygon

import (
	"math"
	"math/rand"

	"github.com/jbeda/geom"

	"chosenoffset.com/astrolight/internal/core/geometry"
)

// Polygon is a convex polygon in local space, clockwise, implicitly closed
type Polygon struct {
	Points []geometry.Point
	Center geometry.Point
}

// New creates a polygon whose center is the centroid of points
func New(points []geometry.Point) Polygon {
	return Polygon{Points: points, Center: geometry.Centroid(points)}
}

// GenerateConvex creates a convex polygon with n vertices on a circle of a
// random radius in [minRadius, maxRadius] around the origin. Each vertex sits
// at a random angle inside its own sector, so the winding is clockwise and the
// shape is always strictly convex.
func GenerateConvex(rng *rand.Rand, n int, minRadius, maxRadius float64) Polygon {
	if n < 3 {
		n = 3
	}
	if maxRadius < minRadius {
		minRadius, maxRadius = maxRadius, minRadius
	}
	radius := minRadius + rng.Float64()*(maxRadius-minRadius)

	sector := 2 * math.Pi / float64(n)
	start := rng.Float64() * 2 * math.Pi
	points := make([]geometry.Point, n)
	for i := 0; i < n; i++ {
		// Stay clear of the sector edges so neighbours never collapse
		angle := start - (float64(i)+0.2+0.6*rng.Float64())*sector
		points[i] = geometry.Pt(radius*math.Cos(angle), radius*math.Sin(angle))
	}
	return Polygon{Points: points, Center: geometry.Point{}}
}

// Area returns the unsigned area
func (p Polygon) Area() float64 {
	return math.Abs(geometry.SignedArea(p.Points))
}

// SignedArea returns the shoelace area, negative for clockwise polygons
func (p Polygon) SignedArea() float64 {
	return geometry.SignedArea(p.Points)
}

// Centroid returns the area centroid
func (p Polygon) Centroid() geometry.Point {
	return geometry.Centroid(p.Points)
}

// IsConvex reports whether the polygon is convex
func (p Polygon) IsConvex() bool {
	return geometry.IsConvex(p.Points)
}

// Contains reports whether the local-space point is inside
func (p Polygon) Contains(pt geometry.Point) bool {
	return geometry.PointInPolygon(pt, p.Points)
}

// Bounds returns the local-space bounding box
func (p Polygon) Bounds() geom.Rect {
	return geometry.Bounds(p.Points)
}

// Radius returns the largest distance from the center to a vertex
func (p Polygon) Radius() float64 {
	r := 0.0
	for _, pt := range p.Points {
		r = math.Max(r, pt.DistanceFrom(p.Center))
	}
	return r
}

// Translate returns the polygon moved by offset
func (p Polygon) Translate(offset geometry.Vector) Polygon {
	points := make([]geometry.Point, len(p.Points))
	for i, pt := range p.Points {
		points[i] = pt.Plus(offset)
	}
	return Polygon{Points: points, Center: p.Center.Plus(offset)}
}

// Recenter moves the polygon so its centroid is the origin. The returned
// offset is where the centroid used to be; spawn the new body there.
func (p Polygon) Recenter() (Polygon, geometry.Point) {
	c := p.Centroid()
	moved := p.Translate(c.Times(-1))
	moved.Center = geometry.Point{}
	return moved, c
}

// Transform returns the polygon's points in world space
func (p Polygon) Transform(iso geometry.Isometry) []geometry.Point {
	return iso.TransformAll(p.Points)
}

// Triangulate fans the polygon from its center
func (p Polygon) Triangulate() geometry.Triangulation {
	return geometry.Fan(p.Center, p.Points)
}

// Rounded cuts every corner (Chaikin), once per iteration. Cutting corners of
// a convex polygon keeps it convex.
func (p Polygon) Rounded(iterations int) Polygon {
	points := p.Points
	for it := 0; it < iterations && len(points) >= 3; it++ {
		next := make([]geometry.Point, 0, len(points)*2)
		for i := range points {
			a := points[i]
			b := points[(i+1)%len(points)]
			next = append(next, geometry.Lerp(a, b, 0.25), geometry.Lerp(a, b, 0.75))
		}
		points = next
	}
	out := make([]geometry.Point, len(points))
	copy(out, points)
	return Polygon{Points: out, Center: p.Center}
}
