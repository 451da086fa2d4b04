package game

import (
	"github.com/google/uuid"

	"chosenoffset.com/astrolight/internal/core/geometry"
	"chosenoffset.com/astrolight/internal/core/shadows"
	"chosenoffset.com/astrolight/internal/render/lighting"
	"chosenoffset.com/astrolight/internal/simulation"
)

// orbitFraction is the share of gun range an orbiting ship keeps to its target
const orbitFraction = 0.7

// Enemy is a hostile ship. Its hull is a circle of Kind.Radius.
type Enemy struct {
	ID       uuid.UUID
	Kind     simulation.EnemyKind
	Pos      geometry.Point
	Velocity geometry.Vector
	Health   int

	// Light is the glow the ship carries, zero when it has none
	Light uuid.UUID

	cooldown int
}

// Occluder describes the enemy hull to the lighting system
func (e *Enemy) Occluder() lighting.Occluder {
	return lighting.Occluder{
		Shape:    shadows.Circle{Radius: e.Kind.Radius},
		Position: e.Pos,
	}
}

// Steer moves the ship one tick towards target according to its AI
func (e *Enemy) Steer(target geometry.Point) {
	if e.cooldown > 0 {
		e.cooldown--
	}
	to := target.Minus(e.Pos)
	dist := to.Magnitude()
	if dist < geometry.Eps {
		return
	}
	dir := to.Times(1 / dist)

	if e.Kind.AI == simulation.AIOrbit {
		hold := e.Kind.Range * orbitFraction
		if dist < hold {
			// Circle clockwise while drifting back out to the holding distance
			dir = geometry.Perp(dir).Times(-1).Plus(dir.Times((dist - hold) / hold)).Unit()
		}
	}
	e.Velocity = dir.Times(e.Kind.Speed)
	e.Pos = e.Pos.Plus(e.Velocity)
}

// CanFire reports whether the gun is loaded and the target is within range
func (e *Enemy) CanFire(line geometry.Segment) bool {
	return e.Kind.Gun == simulation.GunBlaster && e.cooldown == 0 && line.Length() <= e.Kind.Range
}

// Reload starts the gun cooldown after a shot
func (e *Enemy) Reload() {
	e.cooldown = e.Kind.FireCooldown
}
