package game

import (
	"github.com/google/uuid"
	"github.com/jbeda/geom"

	"chosenoffset.com/astrolight/internal/core/geometry"
	"chosenoffset.com/astrolight/internal/core/polygon"
	"chosenoffset.com/astrolight/internal/core/shadows"
	"chosenoffset.com/astrolight/internal/render/lighting"
)

// Asteroid is a drifting convex rock. Shape is centered on the origin of the
// asteroid's local space; Position and Rotation place it in the world.
type Asteroid struct {
	ID       uuid.UUID
	Shape    polygon.Polygon
	Rounded  polygon.Polygon // Drawn shape, corners cut
	Position geometry.Point
	Velocity geometry.Vector
	Rotation float64
	Spin     float64
}

// Isometry returns the local to world transform
func (a *Asteroid) Isometry() geometry.Isometry {
	return geometry.NewIsometry(a.Position, a.Rotation)
}

// WorldPoints returns the outline in world space
func (a *Asteroid) WorldPoints() []geometry.Point {
	return a.Shape.Transform(a.Isometry())
}

// Contains reports whether a world point is inside the asteroid
func (a *Asteroid) Contains(p geometry.Point) bool {
	return a.Shape.Contains(a.Isometry().InverseTransform(p))
}

// Radius returns the bounding radius around Position
func (a *Asteroid) Radius() float64 {
	return a.Shape.Radius()
}

// Bounds returns the box around the bounding circle
func (a *Asteroid) Bounds() geom.Rect {
	r := a.Radius()
	return geom.Rect{
		Min: geometry.Pt(a.Position.X-r, a.Position.Y-r),
		Max: geometry.Pt(a.Position.X+r, a.Position.Y+r),
	}
}

// Occluder describes the asteroid to the lighting system
func (a *Asteroid) Occluder() lighting.Occluder {
	return lighting.Occluder{
		Shape:    shadows.Convex{Points: a.Shape.Points},
		Position: a.Position,
		Rotation: a.Rotation,
	}
}

// Step advances the asteroid by one tick
func (a *Asteroid) Step() {
	a.Position = a.Position.Plus(a.Velocity)
	a.Rotation += a.Spin
}
