package simulation

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
	if config.Field.MinAsteroids != 100 {
		t.Errorf("Expected 100 asteroids, got %d", config.Field.MinAsteroids)
	}
	if config.Destruction.Sites != 5 {
		t.Errorf("Expected 5 destruction sites, got %d", config.Destruction.Sites)
	}
	if config.Drops.HealthValue != 100 {
		t.Errorf("Expected health drop worth 100, got %d", config.Drops.HealthValue)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Missing file should fall back to defaults: %v", err)
	}
	if config.Asteroids.MaxRadius != 4.2 {
		t.Errorf("Expected default max radius 4.2, got %f", config.Asteroids.MaxRadius)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	jsonData := `{
		"field": {"min_asteroids": 12},
		"destruction": {"sites": 3, "rules": {"min_area": 2}},
		"debug": true
	}`
	if err := os.WriteFile(path, []byte(jsonData), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Field.MinAsteroids != 12 {
		t.Errorf("Expected 12 asteroids, got %d", config.Field.MinAsteroids)
	}
	if config.Destruction.Sites != 3 {
		t.Errorf("Expected 3 sites, got %d", config.Destruction.Sites)
	}
	if config.Destruction.Rules.MinArea != 2 {
		t.Errorf("Expected min area 2, got %f", config.Destruction.Rules.MinArea)
	}
	// Untouched values keep their defaults
	if config.Destruction.Rules.AreaPerSite != 6 {
		t.Errorf("Expected default area per site 6, got %f", config.Destruction.Rules.AreaPerSite)
	}
	if config.Field.ActiveArea != 40 {
		t.Errorf("Expected default active area 40, got %f", config.Field.ActiveArea)
	}
	if !config.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	if err := os.WriteFile(path, []byte(`{"field": {"player_area": 50}}`), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected validation error when the player area exceeds the active area")
	}
}

func TestVertexCount(t *testing.T) {
	config := DefaultConfig()
	if n := config.VertexCount(0); n != 6 {
		t.Errorf("Expected 6 vertices at roll 0, got %d", n)
	}
	if n := config.VertexCount(0.999); n != 10 {
		t.Errorf("Expected 10 vertices at roll 0.999, got %d", n)
	}
	if n := config.VertexCount(1); n != 10 {
		t.Errorf("Expected vertex count clamped to 10, got %d", n)
	}
}

func TestLoadConfig_ShippedFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join("..", "..", "data", "simulation.json"))
	if err != nil {
		t.Fatalf("Failed to load shipped config: %v", err)
	}
	if !reflect.DeepEqual(config, DefaultConfig()) {
		t.Error("Shipped config should match the defaults")
	}
}

func TestLoadConfig_UnknownEnemyInWave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	jsonData := `{"enemies": {"waves": [{"distribution": [{"kind": "dreadnought", "weight": 1}], "ships_number": 1, "iterations": 1}]}}`
	if err := os.WriteFile(path, []byte(jsonData), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected validation error for an unknown enemy kind")
	}
}

func TestValidate_EnemyKinds(t *testing.T) {
	config := DefaultConfig()
	config.Enemies.Kinds[0].AI = "wander"
	if err := config.Validate(); err == nil {
		t.Error("Expected error for an unknown ai")
	}

	config = DefaultConfig()
	config.Enemies.Kinds[1].Gun = "railgun"
	if err := config.Validate(); err == nil {
		t.Error("Expected error for an unknown gun")
	}

	config = DefaultConfig()
	config.Enemies.Waves[0].Iterations = 0
	if err := config.Validate(); err == nil {
		t.Error("Expected error for a wave without iterations")
	}
}

func TestEnemyKind(t *testing.T) {
	config := DefaultConfig()
	kind, ok := config.EnemyKind("gunship")
	if !ok {
		t.Fatal("Expected the gunship kind")
	}
	if kind.Gun != GunBlaster || kind.AI != AIOrbit {
		t.Errorf("Expected an orbiting blaster gunship, got %s/%s", kind.AI, kind.Gun)
	}
	if _, ok := config.EnemyKind("dreadnought"); ok {
		t.Error("Expected no dreadnought")
	}
}

func TestLevelExp(t *testing.T) {
	config := DefaultConfig()
	if n := config.LevelExp(1); n != 50 {
		t.Errorf("Expected 50 exp for level 1, got %d", n)
	}
	if n := config.LevelExp(3); n != 100 {
		t.Errorf("Expected 100 exp for level 3, got %d", n)
	}
	if n := config.LevelExp(0); n != 50 {
		t.Errorf("Expected levels below 1 to cost the base, got %d", n)
	}
}
