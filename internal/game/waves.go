package game

import (
	"math/rand"

	"chosenoffset.com/astrolight/internal/simulation"
)

// Waves decides when enemy ships arrive. A wave iteration starts once the
// previous ships are all gone and the calm delay has run out. After the last
// wave's iterations the last wave keeps repeating.
type Waves struct {
	config *simulation.Config
	rng    *rand.Rand

	wave      int // Index into the configured waves
	iteration int // Iterations spawned of the current wave
	timer     int // Ticks of calm left
}

// NewWaves creates the wave schedule, starting with the first delay
func NewWaves(config *simulation.Config, rng *rand.Rand) *Waves {
	return &Waves{
		config: config,
		rng:    rng,
		timer:  config.Enemies.FirstDelay,
	}
}

// Number returns the 1-based number of the wave that spawns next
func (w *Waves) Number() int {
	return w.wave + 1
}

// Update advances the schedule by one tick given how many enemies are still
// alive. It returns the ships to spawn and the wave they belong to; no ships
// means nothing happens this tick.
func (w *Waves) Update(alive int) ([]simulation.EnemyKind, int) {
	waves := w.config.Enemies.Waves
	if len(waves) == 0 || alive > 0 {
		return nil, 0
	}
	if w.timer > 0 {
		w.timer--
		return nil, 0
	}

	number := w.Number()
	ships := w.roll(waves[w.wave])
	w.iteration++
	if w.iteration >= waves[w.wave].Iterations && w.wave < len(waves)-1 {
		w.wave++
		w.iteration = 0
	}
	w.timer = w.config.Enemies.Delay
	return ships, number
}

// roll lists the fixed ships of the wave followed by the random draws
func (w *Waves) roll(wave simulation.WaveConfig) []simulation.EnemyKind {
	var ships []simulation.EnemyKind
	for _, c := range wave.ConstDistribution {
		kind, ok := w.config.EnemyKind(c.Kind)
		if !ok {
			continue
		}
		for i := 0; i < c.Count; i++ {
			ships = append(ships, kind)
		}
	}

	total := 0.0
	for _, d := range wave.Distribution {
		total += d.Weight
	}
	if total <= 0 {
		return ships
	}
	for i := 0; i < wave.ShipsNumber; i++ {
		pick := w.rng.Float64() * total
		for _, d := range wave.Distribution {
			pick -= d.Weight
			if pick < 0 {
				if kind, ok := w.config.EnemyKind(d.Kind); ok {
					ships = append(ships, kind)
				}
				break
			}
		}
	}
	return ships
}
