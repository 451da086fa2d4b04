// Package simulation provides configuration for the asteroid field simulation.
// Values are loaded from a JSON file so balance can be tuned without rebuilding.
package simulation

import (
	"encoding/json"
	"fmt"
	"os"

	"chosenoffset.com/astrolight/internal/core/polygon"
)

// Config holds all simulation rules for a game
type Config struct {
	// Asteroid generation
	Asteroids AsteroidConfig `json:"asteroids"`

	// Fragmenting on hit
	Destruction DestructionConfig `json:"destruction"`

	// Pickups rolled when an asteroid is gone for good
	Drops DropConfig `json:"drops"`

	// Lights and shadows
	Lighting LightingConfig `json:"lighting"`

	// Population and spawn areas
	Field FieldConfig `json:"field"`

	// Enemy ships and the waves they arrive in
	Enemies EnemyConfig `json:"enemies"`

	// Levels and upgrade cards
	Progress ProgressConfig `json:"progress"`

	Debug bool `json:"debug"`
}

// AsteroidConfig defines the shape of freshly spawned asteroids
type AsteroidConfig struct {
	MinRadius   float64 `json:"min_radius"`
	MaxRadius   float64 `json:"max_radius"`
	MinVertices int     `json:"min_vertices"`
	MaxVertices int     `json:"max_vertices"`
	MaxSpeed    float64 `json:"max_speed"`    // Initial drift, units per tick
	MaxSpin     float64 `json:"max_spin"`     // Initial spin, radians per tick
	RoundPasses int     `json:"round_passes"` // Corner cutting passes when drawn
}

// DestructionConfig defines how asteroids break apart
type DestructionConfig struct {
	Rules        polygon.DestructionRules `json:"rules"`
	Sites        int                      `json:"sites"`         // Upper bound of fragments per hit
	VelocityKick float64                  `json:"velocity_kick"` // Max random speed added to a fragment
	SpinKick     float64                  `json:"spin_kick"`     // Max random spin added to a fragment
}

// DropConfig is the drop table. Chances are independent rolls in [0, 1].
type DropConfig struct {
	HealthChance      float64 `json:"health_chance"`
	HealthValue       int     `json:"health_value"`
	CoinChance        float64 `json:"coin_chance"`
	CoinValue         int     `json:"coin_value"`
	SideBulletChance  float64 `json:"side_bullet_chance"`
	DoubleCoinsChance float64 `json:"double_coins_chance"`
	DoubleExpChance   float64 `json:"double_exp_chance"`
	PickupRadius      float64 `json:"pickup_radius"`   // Distance at which the player collects
	PickupLifetime    int     `json:"pickup_lifetime"` // Ticks before an uncollected pickup vanishes
}

// LightingConfig defines light and shadow behaviour
type LightingConfig struct {
	Ambient         float64 `json:"ambient"`       // 0.0 = pitch black, 1.0 = fully lit
	PlayerRadius    float64 `json:"player_radius"` // Half size of the player's light rectangle
	PlayerIntensity float64 `json:"player_intensity"`
	ShadowLength    float64 `json:"shadow_length"`
}

// FieldConfig defines where asteroids live
type FieldConfig struct {
	MinAsteroids int     `json:"min_asteroids"`
	PlayerArea   float64 `json:"player_area"` // Half size of the no-spawn box around the player
	ActiveArea   float64 `json:"active_area"` // Half size of the box asteroids live in
}

// Enemy behaviours
const (
	AIChase = "chase" // Fly straight at the player
	AIOrbit = "orbit" // Close in to gun range, then circle
)

// Enemy guns
const (
	GunNone    = "none"
	GunBlaster = "blaster"
)

// EnemyKind describes one type of enemy ship
type EnemyKind struct {
	Name         string  `json:"name"`
	Radius       float64 `json:"radius"`
	Speed        float64 `json:"speed"` // Units per tick
	Health       int     `json:"health"`
	AI           string  `json:"ai"`
	Gun          string  `json:"gun"`
	FireCooldown int     `json:"fire_cooldown"` // Ticks between shots
	Damage       int     `json:"damage"`        // Per shot, or on ramming the player
	Range        float64 `json:"range"`         // Gun range
	Exp          int     `json:"exp"`           // Left behind when destroyed
	LightRadius  float64 `json:"light_radius"`
}

// KindWeight is one entry of a wave's random draw
type KindWeight struct {
	Kind   string  `json:"kind"`
	Weight float64 `json:"weight"`
}

// KindCount is a fixed number of ships of one kind
type KindCount struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// WaveConfig is one wave. Every iteration spawns the fixed ships plus
// ShipsNumber ships drawn from Distribution.
type WaveConfig struct {
	Distribution      []KindWeight `json:"distribution"`
	ShipsNumber       int          `json:"ships_number"`
	ConstDistribution []KindCount  `json:"const_distribution"`
	Iterations        int          `json:"iterations"`
}

// EnemyConfig defines enemy ships and waves. The last wave repeats forever.
type EnemyConfig struct {
	Kinds         []EnemyKind  `json:"kinds"`
	Waves         []WaveConfig `json:"waves"`
	FirstDelay    int          `json:"first_delay"`    // Ticks before the first wave
	Delay         int          `json:"delay"`          // Ticks of calm after a wave is cleared
	SpawnDistance float64      `json:"spawn_distance"` // From the player
}

// ProgressConfig defines how exp turns into levels
type ProgressConfig struct {
	BaseExp int `json:"base_exp"` // Exp from level 1 to 2
	ExpStep int `json:"exp_step"` // Extra exp needed for every further level
	Choices int `json:"choices"`  // Upgrade cards offered per level
}

// DefaultConfig returns the stock game balance
func DefaultConfig() *Config {
	return &Config{
		Asteroids: AsteroidConfig{
			MinRadius:   0.5,
			MaxRadius:   4.2,
			MinVertices: 6,
			MaxVertices: 10,
			MaxSpeed:    0.05,
			MaxSpin:     0.01,
			RoundPasses: 2,
		},
		Destruction: DestructionConfig{
			Rules:        polygon.DefaultDestructionRules(),
			Sites:        5,
			VelocityKick: 0.1,
			SpinKick:     0.01,
		},
		Drops: DropConfig{
			HealthChance:      0.10,
			HealthValue:       100,
			CoinChance:        0.10,
			CoinValue:         1,
			SideBulletChance:  0.05,
			DoubleCoinsChance: 0.02,
			DoubleExpChance:   0.02,
			PickupRadius:      1.5,
			PickupLifetime:    600,
		},
		Lighting: LightingConfig{
			Ambient:         0.15,
			PlayerRadius:    30,
			PlayerIntensity: 1.0,
			ShadowLength:    100,
		},
		Field: FieldConfig{
			MinAsteroids: 100,
			PlayerArea:   20,
			ActiveArea:   40,
		},
		Enemies: EnemyConfig{
			Kinds: []EnemyKind{
				{
					Name: "scout", Radius: 0.8, Speed: 0.18, Health: 2,
					AI: AIChase, Gun: GunNone, Damage: 15, Exp: 20, LightRadius: 8,
				},
				{
					Name: "gunship", Radius: 1.2, Speed: 0.1, Health: 4,
					AI: AIOrbit, Gun: GunBlaster, FireCooldown: 90, Damage: 10, Range: 25, Exp: 50, LightRadius: 10,
				},
			},
			Waves: []WaveConfig{
				{
					Distribution: []KindWeight{{Kind: "scout", Weight: 1}},
					ShipsNumber:  3,
					Iterations:   2,
				},
				{
					Distribution:      []KindWeight{{Kind: "scout", Weight: 0.7}, {Kind: "gunship", Weight: 0.3}},
					ShipsNumber:       4,
					ConstDistribution: []KindCount{{Kind: "gunship", Count: 1}},
					Iterations:        2,
				},
				{
					Distribution:      []KindWeight{{Kind: "scout", Weight: 0.5}, {Kind: "gunship", Weight: 0.5}},
					ShipsNumber:       6,
					ConstDistribution: []KindCount{{Kind: "gunship", Count: 2}},
					Iterations:        3,
				},
			},
			FirstDelay:    600,
			Delay:         300,
			SpawnDistance: 30,
		},
		Progress: ProgressConfig{
			BaseExp: 50,
			ExpStep: 25,
			Choices: 2,
		},
	}
}

// LoadConfig loads simulation config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config %s: %w", path, err)
	}

	return config, nil
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	if c.Asteroids.MinRadius <= 0 || c.Asteroids.MaxRadius < c.Asteroids.MinRadius {
		return fmt.Errorf("asteroid radius range [%v, %v] is empty", c.Asteroids.MinRadius, c.Asteroids.MaxRadius)
	}
	if c.Asteroids.MinVertices < 3 || c.Asteroids.MaxVertices < c.Asteroids.MinVertices {
		return fmt.Errorf("asteroid vertex range [%d, %d] is invalid", c.Asteroids.MinVertices, c.Asteroids.MaxVertices)
	}
	if c.Field.ActiveArea <= c.Field.PlayerArea {
		return fmt.Errorf("active area %v must be larger than player area %v", c.Field.ActiveArea, c.Field.PlayerArea)
	}
	if c.Field.MinAsteroids < 0 {
		return fmt.Errorf("min_asteroids must not be negative")
	}
	if c.Lighting.ShadowLength <= 0 {
		return fmt.Errorf("shadow_length must be positive")
	}
	if c.Progress.BaseExp <= 0 || c.Progress.ExpStep < 0 || c.Progress.Choices < 1 {
		return fmt.Errorf("progress needs positive base_exp and at least one choice")
	}
	return c.validateEnemies()
}

func (c *Config) validateEnemies() error {
	for _, k := range c.Enemies.Kinds {
		if k.Radius <= 0 || k.Health <= 0 || k.Speed < 0 {
			return fmt.Errorf("enemy %q needs a positive radius and health", k.Name)
		}
		if k.AI != AIChase && k.AI != AIOrbit {
			return fmt.Errorf("enemy %q has unknown ai %q", k.Name, k.AI)
		}
		if k.Gun != GunNone && k.Gun != GunBlaster {
			return fmt.Errorf("enemy %q has unknown gun %q", k.Name, k.Gun)
		}
	}
	for i, w := range c.Enemies.Waves {
		if w.Iterations < 1 {
			return fmt.Errorf("wave %d needs at least one iteration", i+1)
		}
		total := 0.0
		for _, d := range w.Distribution {
			if _, ok := c.EnemyKind(d.Kind); !ok {
				return fmt.Errorf("wave %d: unknown enemy %q", i+1, d.Kind)
			}
			if d.Weight < 0 {
				return fmt.Errorf("wave %d: negative weight for %q", i+1, d.Kind)
			}
			total += d.Weight
		}
		if w.ShipsNumber > 0 && total <= 0 {
			return fmt.Errorf("wave %d draws %d ships from an empty distribution", i+1, w.ShipsNumber)
		}
		for _, d := range w.ConstDistribution {
			if _, ok := c.EnemyKind(d.Kind); !ok {
				return fmt.Errorf("wave %d: unknown enemy %q", i+1, d.Kind)
			}
		}
	}
	if len(c.Enemies.Waves) > 0 && c.Enemies.SpawnDistance <= 0 {
		return fmt.Errorf("spawn_distance must be positive")
	}
	return nil
}

// EnemyKind looks up an enemy kind by name
func (c *Config) EnemyKind(name string) (EnemyKind, bool) {
	for _, k := range c.Enemies.Kinds {
		if k.Name == name {
			return k, true
		}
	}
	return EnemyKind{}, false
}

// LevelExp returns the exp needed to get from level to level+1
func (c *Config) LevelExp(level int) int {
	if level < 1 {
		level = 1
	}
	return c.Progress.BaseExp + c.Progress.ExpStep*(level-1)
}

// VertexCount picks a vertex count for a new asteroid given a roll in [0, 1)
func (c *Config) VertexCount(roll float64) int {
	span := c.Asteroids.MaxVertices - c.Asteroids.MinVertices + 1
	n := c.Asteroids.MinVertices + int(roll*float64(span))
	if n > c.Asteroids.MaxVertices {
		n = c.Asteroids.MaxVertices
	}
	return n
}
