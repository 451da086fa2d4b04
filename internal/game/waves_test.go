package game

import (
	"math/rand"
	"testing"

	"chosenoffset.com/astrolight/internal/simulation"
)

func quickWaves(seed int64) (*Waves, *simulation.Config) {
	config := simulation.DefaultConfig()
	config.Enemies.FirstDelay = 2
	config.Enemies.Delay = 1
	return NewWaves(config, rand.New(rand.NewSource(seed))), config
}

// nextWave ticks an empty field until ships arrive
func nextWave(t *testing.T, w *Waves) ([]simulation.EnemyKind, int) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if ships, number := w.Update(0); len(ships) > 0 {
			return ships, number
		}
	}
	t.Fatal("Expected a wave to spawn")
	return nil, 0
}

func TestWaves_FirstDelay(t *testing.T) {
	w, _ := quickWaves(1)
	for i := 0; i < 2; i++ {
		if ships, _ := w.Update(0); len(ships) != 0 {
			t.Fatalf("Expected calm on tick %d, got %d ships", i, len(ships))
		}
	}
	ships, number := w.Update(0)
	if number != 1 || len(ships) != 3 {
		t.Fatalf("Expected wave 1 with 3 ships, got wave %d with %d", number, len(ships))
	}
	for _, s := range ships {
		if s.Name != "scout" {
			t.Errorf("Expected only scouts in wave 1, got %s", s.Name)
		}
	}
}

func TestWaves_WaitForClearField(t *testing.T) {
	w, _ := quickWaves(1)
	nextWave(t, w)
	for i := 0; i < 10; i++ {
		if ships, _ := w.Update(3); len(ships) != 0 {
			t.Fatal("Expected no new ships while enemies are alive")
		}
	}
	if _, number := nextWave(t, w); number != 1 {
		t.Errorf("Expected the second iteration of wave 1, got wave %d", number)
	}
}

func TestWaves_Progression(t *testing.T) {
	w, config := quickWaves(3)
	nextWave(t, w)
	nextWave(t, w)
	if w.Number() != 2 {
		t.Fatalf("Expected wave 2 after two iterations, got %d", w.Number())
	}

	ships, number := nextWave(t, w)
	wave := config.Enemies.Waves[1]
	if number != 2 || len(ships) != wave.ShipsNumber+1 {
		t.Fatalf("Expected wave 2 with %d ships, got wave %d with %d", wave.ShipsNumber+1, number, len(ships))
	}
	if ships[0].Name != "gunship" {
		t.Errorf("Expected the fixed gunship first, got %s", ships[0].Name)
	}
	for _, s := range ships {
		if s.Name != "scout" && s.Name != "gunship" {
			t.Errorf("Unexpected ship %s", s.Name)
		}
	}
}

func TestWaves_LastWaveRepeats(t *testing.T) {
	w, config := quickWaves(1)
	config.Enemies.Waves = config.Enemies.Waves[:1]
	config.Enemies.Waves[0].Iterations = 1

	for i := 0; i < 4; i++ {
		if _, number := nextWave(t, w); number != 1 {
			t.Fatalf("Expected the last wave to repeat, got wave %d", number)
		}
	}
}

func TestWaves_None(t *testing.T) {
	w, config := quickWaves(1)
	config.Enemies.Waves = nil
	for i := 0; i < 10; i++ {
		if ships, _ := w.Update(0); ships != nil {
			t.Fatal("Expected no ships without waves")
		}
	}
}
