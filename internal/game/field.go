package game

import (
	"log"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jbeda/geom"

	"chosenoffset.com/astrolight/internal/core/geometry"
	"chosenoffset.com/astrolight/internal/core/polygon"
	"chosenoffset.com/astrolight/internal/core/shadows"
	"chosenoffset.com/astrolight/internal/render/lighting"
	"chosenoffset.com/astrolight/internal/simulation"
)

// Field owns every asteroid, enemy ship and pickup around the player.
type Field struct {
	config    *simulation.Config
	rng       *rand.Rand
	asteroids []*Asteroid
	byID      map[uuid.UUID]*Asteroid
	enemies   []*Enemy
	pickups   []*Pickup
}

// HitResult describes what happened to an asteroid that was hit.
type HitResult struct {
	// Fragments are the asteroids spawned from the pieces
	Fragments []*Asteroid
	// Destroyed is true when the asteroid was too small to break and is gone
	Destroyed bool
	Drops     []*Pickup
}

// ShotResult is the nearest asteroid or enemy ship along a shot.
type ShotResult struct {
	ID    uuid.UUID
	Point geometry.Point
	Hit   bool
	Enemy bool // ID names an enemy rather than an asteroid
}

// EnemyHit describes the damage dealt to an enemy ship.
type EnemyHit struct {
	Enemy     *Enemy
	Destroyed bool
	Drop      *Pickup // Exp left behind by a destroyed ship
}

// NewField creates an empty field. All randomness comes from rng.
func NewField(config *simulation.Config, rng *rand.Rand) *Field {
	return &Field{
		config: config,
		rng:    rng,
		byID:   make(map[uuid.UUID]*Asteroid),
	}
}

// Asteroids returns the live asteroids in spawn order
func (f *Field) Asteroids() []*Asteroid {
	out := make([]*Asteroid, len(f.asteroids))
	copy(out, f.asteroids)
	return out
}

// Asteroid looks up an asteroid by ID
func (f *Field) Asteroid(id uuid.UUID) (*Asteroid, bool) {
	a, ok := f.byID[id]
	return a, ok
}

// Pickups returns the uncollected pickups
func (f *Field) Pickups() []*Pickup {
	out := make([]*Pickup, len(f.pickups))
	copy(out, f.pickups)
	return out
}

// Enemies returns the live enemy ships in spawn order
func (f *Field) Enemies() []*Enemy {
	out := make([]*Enemy, len(f.enemies))
	copy(out, f.enemies)
	return out
}

// Enemy looks up an enemy ship by ID
func (f *Field) Enemy(id uuid.UUID) (*Enemy, bool) {
	for _, e := range f.enemies {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// AddEnemy places an enemy ship of the given kind at position
func (f *Field) AddEnemy(kind simulation.EnemyKind, position geometry.Point) *Enemy {
	e := &Enemy{
		ID:     uuid.New(),
		Kind:   kind,
		Pos:    position,
		Health: kind.Health,
	}
	f.enemies = append(f.enemies, e)
	return e
}

// SpawnEnemy places an enemy ship at the spawn distance from the player in a
// random direction
func (f *Field) SpawnEnemy(kind simulation.EnemyKind, player geometry.Point) *Enemy {
	angle := f.rng.Float64() * 2 * math.Pi
	offset := geometry.Pt(math.Cos(angle), math.Sin(angle)).Times(f.config.Enemies.SpawnDistance)
	return f.AddEnemy(kind, player.Plus(offset))
}

// RemoveEnemy deletes an enemy ship without a drop
func (f *Field) RemoveEnemy(id uuid.UUID) bool {
	for i, e := range f.enemies {
		if e.ID == id {
			f.enemies = append(f.enemies[:i], f.enemies[i+1:]...)
			return true
		}
	}
	return false
}

// HitEnemy deals damage to an enemy ship. A ship whose health runs out is
// removed and leaves its exp behind as a pickup.
func (f *Field) HitEnemy(id uuid.UUID, damage int) (EnemyHit, bool) {
	e, ok := f.Enemy(id)
	if !ok {
		return EnemyHit{}, false
	}
	e.Health -= damage
	result := EnemyHit{Enemy: e}
	if e.Health > 0 {
		return result, true
	}

	f.RemoveEnemy(id)
	result.Destroyed = true
	result.Drop = &Pickup{
		ID:    uuid.New(),
		Kind:  PickupExp,
		Value: e.Kind.Exp,
		Pos:   e.Pos,
		TTL:   f.config.Drops.PickupLifetime,
	}
	f.pickups = append(f.pickups, result.Drop)
	if f.config.Debug {
		log.Printf("enemy %s (%s) destroyed", id, e.Kind.Name)
	}
	return result, true
}

// Spawn adds an asteroid with a shape centered on its local origin
func (f *Field) Spawn(shape polygon.Polygon, position geometry.Point, velocity geometry.Vector, rotation, spin float64) *Asteroid {
	a := &Asteroid{
		ID:       uuid.New(),
		Shape:    shape,
		Rounded:  shape.Rounded(f.config.Asteroids.RoundPasses),
		Position: position,
		Velocity: velocity,
		Rotation: rotation,
		Spin:     spin,
	}
	f.asteroids = append(f.asteroids, a)
	f.byID[a.ID] = a
	return a
}

// SpawnRandom generates a new asteroid somewhere in the active area but away
// from the player
func (f *Field) SpawnRandom(player geometry.Point) *Asteroid {
	cfg := f.config.Asteroids
	shape := polygon.GenerateConvex(f.rng, f.config.VertexCount(f.rng.Float64()), cfg.MinRadius, cfg.MaxRadius)
	position := spawnPosition(f.rng, player, f.config.Field.PlayerArea, f.config.Field.ActiveArea)
	velocity := geometry.Pt(f.symmetric(cfg.MaxSpeed), f.symmetric(cfg.MaxSpeed))
	return f.Spawn(shape, position, velocity, f.rng.Float64()*2*math.Pi, f.symmetric(cfg.MaxSpin))
}

// Populate spawns asteroids until the minimum population is reached
func (f *Field) Populate(player geometry.Point) int {
	spawned := 0
	for len(f.asteroids) < f.config.Field.MinAsteroids {
		f.SpawnRandom(player)
		spawned++
	}
	return spawned
}

// Update moves everything by one tick, drops what left the active area and
// tops the population back up
func (f *Field) Update(player geometry.Point) {
	active := f.asteroids[:0]
	for _, a := range f.asteroids {
		a.Step()
		if isActive(player, a.Position, f.config.Field.ActiveArea) {
			active = append(active, a)
		} else {
			delete(f.byID, a.ID)
		}
	}
	f.asteroids = active

	for _, e := range f.enemies {
		e.Steer(player)
	}

	pickups := f.pickups[:0]
	for _, p := range f.pickups {
		p.TTL--
		if p.TTL > 0 && isActive(player, p.Pos, f.config.Field.ActiveArea) {
			pickups = append(pickups, p)
		}
	}
	f.pickups = pickups

	f.Populate(player)
}

// Remove deletes an asteroid without breaking it
func (f *Field) Remove(id uuid.UUID) bool {
	if _, ok := f.byID[id]; !ok {
		return false
	}
	delete(f.byID, id)
	for i, a := range f.asteroids {
		if a.ID == id {
			f.asteroids = append(f.asteroids[:i], f.asteroids[i+1:]...)
			break
		}
	}
	return true
}

// Hit breaks the asteroid apart at a world-space impact point. Pieces inherit
// the parent's motion plus a random kick; an asteroid too small to break is
// removed and rolls the drop table instead.
func (f *Field) Hit(id uuid.UUID, impact geometry.Point) (HitResult, bool) {
	a, ok := f.byID[id]
	if !ok {
		return HitResult{}, false
	}
	iso := a.Isometry()
	rules := f.config.Destruction
	pieces := a.Shape.DeconstructWith(rules.Rules, iso.InverseTransform(impact), rules.Sites, f.rng)
	f.Remove(id)

	var result HitResult
	if len(pieces) > 1 {
		for _, piece := range pieces {
			shape, offset := piece.Recenter()
			velocity := a.Velocity.Plus(geometry.Pt(f.symmetric(rules.VelocityKick), f.symmetric(rules.VelocityKick)))
			spin := a.Spin + f.symmetric(rules.SpinKick)
			result.Fragments = append(result.Fragments, f.Spawn(shape, iso.Transform(offset), velocity, a.Rotation, spin))
		}
		if f.config.Debug {
			log.Printf("asteroid %s broke into %d pieces", id, len(pieces))
		}
		return result, true
	}

	result.Destroyed = true
	result.Drops = f.rollDrops(a.Position)
	if f.config.Debug {
		log.Printf("asteroid %s destroyed, %d drops", id, len(result.Drops))
	}
	return result, true
}

// rollDrops rolls every entry of the drop table independently
func (f *Field) rollDrops(position geometry.Point) []*Pickup {
	table := f.config.Drops
	entries := []struct {
		kind   PickupKind
		chance float64
		value  int
	}{
		{PickupHealth, table.HealthChance, table.HealthValue},
		{PickupCoin, table.CoinChance, table.CoinValue},
		{PickupSideBullet, table.SideBulletChance, 0},
		{PickupDoubleCoins, table.DoubleCoinsChance, 0},
		{PickupDoubleExp, table.DoubleExpChance, 0},
	}

	var drops []*Pickup
	for _, e := range entries {
		if f.rng.Float64() >= e.chance {
			continue
		}
		p := &Pickup{
			ID:    uuid.New(),
			Kind:  e.kind,
			Value: e.value,
			Pos:   position,
			TTL:   table.PickupLifetime,
		}
		f.pickups = append(f.pickups, p)
		drops = append(drops, p)
	}
	return drops
}

// Shoot casts a ray from origin along dir and returns the first asteroid
// edge it meets within range
func (f *Field) Shoot(origin geometry.Point, dir geometry.Vector, maxRange float64) ShotResult {
	if dir.Magnitude() == 0 {
		return ShotResult{}
	}
	ray := geometry.Ray{Origin: origin, Dir: dir.Unit()}

	best := ShotResult{}
	bestT := maxRange
	for _, a := range f.asteroids {
		if a.Position.DistanceFrom(origin)-a.Radius() > bestT {
			continue
		}
		hit, _, ok := geometry.NearestEdgeHit(a.WorldPoints(), ray)
		if !ok || hit.T > bestT {
			continue
		}
		bestT = hit.T
		best = ShotResult{ID: a.ID, Point: hit.Point, Hit: true}
	}
	for _, e := range f.enemies {
		hit, ok := ray.IntersectCircle(e.Pos, e.Kind.Radius)
		if !ok || hit.T > bestT {
			continue
		}
		bestT = hit.T
		best = ShotResult{ID: e.ID, Point: hit.Point, Hit: true, Enemy: true}
	}
	return best
}

// Blocked returns where an asteroid first cuts the line of fire, if any
func (f *Field) Blocked(line geometry.Segment) (geometry.Point, bool) {
	length := line.Length()
	if length < geometry.Eps {
		return geometry.Point{}, false
	}
	ray := geometry.NewRay(line.A, line.B)
	ray.Dir = ray.Dir.Times(1 / length)
	reach := line.Bounds()

	var at geometry.Point
	bestT := length
	for _, a := range f.asteroids {
		if !geom.RectsIntersect(reach, a.Bounds()) {
			continue
		}
		hit, _, ok := geometry.NearestEdgeHit(a.WorldPoints(), ray)
		if !ok || hit.T >= bestT {
			continue
		}
		bestT = hit.T
		at = hit.Point
	}
	return at, bestT < length
}

// CollideEnemy returns the first enemy ship whose hull overlaps a circle
// around pos
func (f *Field) CollideEnemy(pos geometry.Point, radius float64) (*Enemy, bool) {
	for _, e := range f.enemies {
		if e.Pos.DistanceFrom(pos) < e.Kind.Radius+radius {
			return e, true
		}
	}
	return nil, false
}

// Collide returns the first asteroid that overlaps a circle around pos
func (f *Field) Collide(pos geometry.Point, radius float64) (*Asteroid, bool) {
	for _, a := range f.asteroids {
		if a.Position.DistanceFrom(pos) > a.Radius()+radius {
			continue
		}
		if a.Contains(pos) {
			return a, true
		}
		if edgeDistance(a.WorldPoints(), pos) < radius {
			return a, true
		}
	}
	return nil, false
}

// Collect removes and returns every pickup within radius of pos
func (f *Field) Collect(pos geometry.Point, radius float64) []*Pickup {
	var collected []*Pickup
	remaining := f.pickups[:0]
	for _, p := range f.pickups {
		if p.Pos.DistanceFrom(pos) <= radius {
			collected = append(collected, p)
		} else {
			remaining = append(remaining, p)
		}
	}
	f.pickups = remaining
	return collected
}

// Occluders returns every asteroid and enemy hull as a light occluder
func (f *Field) Occluders() []lighting.Occluder {
	out := make([]lighting.Occluder, 0, len(f.asteroids)+len(f.enemies))
	for _, a := range f.asteroids {
		out = append(out, a.Occluder())
	}
	for _, e := range f.enemies {
		out = append(out, e.Occluder())
	}
	return out
}

// ShadowMeshes builds the shadow volume each occluder casts away from observer
func (f *Field) ShadowMeshes(observer geometry.Point) []geometry.Triangulation {
	occluders := f.Occluders()
	meshes := make([]geometry.Triangulation, 0, len(occluders))
	for _, o := range occluders {
		mesh, ok := shadows.ShadowGeometryLength(observer, o.Shape, o.Position, o.Rotation, f.config.Lighting.ShadowLength)
		if ok {
			meshes = append(meshes, mesh)
		}
	}
	return meshes
}

// symmetric returns a random value in [-limit, limit)
func (f *Field) symmetric(limit float64) float64 {
	return (f.rng.Float64()*2 - 1) * limit
}

// spawnPosition picks a point in the active box around player that is
// outside the forbidden box
func spawnPosition(rng *rand.Rand, player geometry.Point, forbidden, active float64) geometry.Point {
	for {
		x := (rng.Float64()*2 - 1) * active
		y := (rng.Float64()*2 - 1) * active
		if math.Abs(x) >= forbidden || math.Abs(y) >= forbidden {
			return geometry.Pt(player.X+x, player.Y+y)
		}
	}
}

// isActive reports whether p is inside the active box around player
func isActive(player, p geometry.Point, area float64) bool {
	return math.Abs(p.X-player.X) < area && math.Abs(p.Y-player.Y) < area
}

// edgeDistance returns the distance from p to the closest edge
func edgeDistance(points []geometry.Point, p geometry.Point) float64 {
	best := math.Inf(1)
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		ab := b.Minus(a)
		t := 0.0
		if l := geometry.Dot(ab, ab); l > 0 {
			t = math.Min(math.Max(geometry.Dot(p.Minus(a), ab)/l, 0), 1)
		}
		best = math.Min(best, geometry.Lerp(a, b, t).DistanceFrom(p))
	}
	return best
}
