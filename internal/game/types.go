package game

import (
	"math"

	"chosenoffset.com/astrolight/internal/core/geometry"
)

const (
	playerMaxHealth    = 100
	playerAcceleration = 0.02
	playerDamping      = 0.98
	playerMaxSpeed     = 0.5
	playerRadius       = 0.6
	fireCooldown       = 10   // Ticks between shots
	shotRange          = 60   // World units
	collisionDamage    = 20   // Health lost when ramming an asteroid
	invulnerableTicks  = 60   // Grace period after a collision
	sideShotAngle      = 0.26 // Radians either side of the main shot
	repairInterval     = 120  // Ticks between repairs with the nanobot upgrade
)

// Player represents the player's ship.
type Player struct {
	Pos      geometry.Point
	Velocity geometry.Vector
	Aim      float64 // Radians, counter-clockwise from +X
	Health   int
	Coins    int
	Exp      int // Total earned this run
	Level    int
	LevelExp int // Earned towards the next level

	// Ship stats, improved by upgrade cards
	MaxHealth    int
	FireCooldown int     // Ticks between shots
	ShotRange    float64 // World units
	Acceleration float64
	MaxSpeed     float64
	Repair       int // Health restored every repairInterval ticks

	// Upgrades picked up from destroyed asteroids
	SideBullets bool
	DoubleCoins bool
	DoubleExp   bool

	cooldown     int
	invulnerable int
	repairTimer  int
}

// NewPlayer creates a level 1 player at the origin with full health.
func NewPlayer() Player {
	return Player{
		Health:       playerMaxHealth,
		Level:        1,
		MaxHealth:    playerMaxHealth,
		FireCooldown: fireCooldown,
		ShotRange:    shotRange,
		Acceleration: playerAcceleration,
		MaxSpeed:     playerMaxSpeed,
	}
}

// Alive reports whether the player still has health.
func (p *Player) Alive() bool {
	return p.Health > 0
}

// Thrust accelerates the ship in the given direction.
func (p *Player) Thrust(dir geometry.Vector) {
	if dir.Magnitude() == 0 {
		return
	}
	p.Velocity = p.Velocity.Plus(dir.Unit().Times(p.Acceleration))
	if speed := p.Velocity.Magnitude(); speed > p.MaxSpeed {
		p.Velocity = p.Velocity.Times(p.MaxSpeed / speed)
	}
}

// Heal restores health up to the maximum.
func (p *Player) Heal(amount int) {
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// Step advances the ship by one tick.
func (p *Player) Step() {
	p.Pos = p.Pos.Plus(p.Velocity)
	p.Velocity = p.Velocity.Times(playerDamping)
	if p.cooldown > 0 {
		p.cooldown--
	}
	if p.invulnerable > 0 {
		p.invulnerable--
	}
	if p.Repair > 0 && p.Alive() {
		p.repairTimer++
		if p.repairTimer >= repairInterval {
			p.repairTimer = 0
			p.Heal(p.Repair)
		}
	}
}

// AimDirection returns the unit vector the ship is aiming along.
func (p *Player) AimDirection() geometry.Vector {
	return geometry.Pt(math.Cos(p.Aim), math.Sin(p.Aim))
}

// Camera maps world space (y up) onto the screen (y down), centered on Center.
type Camera struct {
	Center geometry.Point
	Scale  float64 // Pixels per world unit
	Width  int
	Height int
}

// ToScreen converts a world point into screen pixels.
func (c Camera) ToScreen(p geometry.Point) (float32, float32) {
	x := (p.X-c.Center.X)*c.Scale + float64(c.Width)/2
	y := float64(c.Height)/2 - (p.Y-c.Center.Y)*c.Scale
	return float32(x), float32(y)
}

// ToWorld converts screen pixels into a world point.
func (c Camera) ToWorld(x, y int) geometry.Point {
	return geometry.Pt(
		(float64(x)-float64(c.Width)/2)/c.Scale+c.Center.X,
		(float64(c.Height)/2-float64(y))/c.Scale+c.Center.Y,
	)
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Tracer is a short-lived line left by a shot.
type Tracer struct {
	From, To geometry.Point
	TTL      int
	Hostile  bool // Fired by an enemy
}
