package game

import (
	"math/rand"
	"testing"

	"chosenoffset.com/astrolight/internal/core/geometry"
	"chosenoffset.com/astrolight/internal/render"
	"chosenoffset.com/astrolight/internal/simulation"
)

func TestUpgradeCard_Apply(t *testing.T) {
	tests := []struct {
		kind  UpgradeKind
		check func(p Player) bool
	}{
		{UpgradeAttackSpeed, func(p Player) bool { return p.FireCooldown == 9 }},
		{UpgradeShotRange, func(p Player) bool { return geometry.Eq(p.ShotRange, 66) }},
		{UpgradeShipSpeed, func(p Player) bool {
			return geometry.Eq(p.MaxSpeed, 0.55) && p.Acceleration > playerAcceleration
		}},
		{UpgradeHullSize, func(p Player) bool { return p.MaxHealth == 120 && p.Health == 120 }},
		{UpgradeRepair, func(p Player) bool { return p.Repair == 1 }},
	}
	for _, tt := range tests {
		p := NewPlayer()
		UpgradeCard{Kind: tt.kind}.Apply(&p)
		if !tt.check(p) {
			t.Errorf("Upgrade %d not applied: %+v", tt.kind, p)
		}
	}
}

func TestUpgradeCard_FireCooldownFloor(t *testing.T) {
	p := NewPlayer()
	for i := 0; i < 50; i++ {
		UpgradeCard{Kind: UpgradeAttackSpeed}.Apply(&p)
	}
	if p.FireCooldown != minFireCooldown {
		t.Errorf("Expected cooldown floor %d, got %d", minFireCooldown, p.FireCooldown)
	}
}

func TestPlayer_Repair(t *testing.T) {
	p := NewPlayer()
	p.Health = 50
	p.Repair = 2
	for i := 0; i < repairInterval; i++ {
		p.Step()
	}
	if p.Health != 52 {
		t.Errorf("Expected 2 health repaired, got %d", p.Health)
	}

	p.Health = p.MaxHealth
	for i := 0; i < repairInterval; i++ {
		p.Step()
	}
	if p.Health != p.MaxHealth {
		t.Errorf("Expected repair to stop at %d, got %d", p.MaxHealth, p.Health)
	}
}

func TestGame_LevelUp(t *testing.T) {
	g := newTestGame(nil)

	g.gainExp(49)
	if g.Player.Level != 1 || g.CurrentOffer() != nil {
		t.Fatalf("Expected level 1 without offers, got level %d", g.Player.Level)
	}
	g.gainExp(1)
	if g.Player.Level != 2 || g.Player.LevelExp != 0 {
		t.Fatalf("Expected level 2 with no leftover exp, got level %d with %d", g.Player.Level, g.Player.LevelExp)
	}

	offer := g.CurrentOffer()
	if len(offer) != g.Config.Progress.Choices {
		t.Fatalf("Expected %d cards, got %d", g.Config.Progress.Choices, len(offer))
	}
	if offer[0].Kind == offer[1].Kind {
		t.Error("Expected distinct cards in one offer")
	}

	// 75 for level 3 then 100 for level 4
	g.gainExp(180)
	if g.Player.Level != 4 || g.Player.LevelExp != 5 {
		t.Errorf("Expected level 4 with 5 exp, got level %d with %d", g.Player.Level, g.Player.LevelExp)
	}
	if len(g.Offers) != 3 {
		t.Errorf("Expected 3 pending offers, got %d", len(g.Offers))
	}
	if g.Player.Exp != 230 {
		t.Errorf("Expected 230 total exp, got %d", g.Player.Exp)
	}
}

func TestGame_DoubleExp(t *testing.T) {
	g := newTestGame(nil)
	g.Player.DoubleExp = true
	g.gainExp(25)
	if g.Player.Level != 2 || g.Player.Exp != 50 {
		t.Errorf("Expected doubled exp to level up, got level %d with %d exp", g.Player.Level, g.Player.Exp)
	}
}

func TestGame_ChooseUpgrade(t *testing.T) {
	g := newTestGame(nil)
	if g.ChooseUpgrade(0) {
		t.Fatal("Expected no upgrade without an offer")
	}

	g.Offers = append(g.Offers, []UpgradeCard{upgradeCards[3], upgradeCards[0]})
	if g.ChooseUpgrade(2) {
		t.Error("Expected an out of range card to be refused")
	}
	if !g.ChooseUpgrade(0) {
		t.Fatal("Expected the first card to be installed")
	}
	if g.Player.MaxHealth != playerMaxHealth+hullUpgrade {
		t.Errorf("Expected max health %d, got %d", playerMaxHealth+hullUpgrade, g.Player.MaxHealth)
	}
	if g.CurrentOffer() != nil {
		t.Error("Expected the offer to be used up")
	}
}

func TestGame_ExpPickupLevelsUp(t *testing.T) {
	g := newTestGame(nil)
	gunship, _ := g.Config.EnemyKind("gunship")
	e := g.Field.AddEnemy(gunship, geometry.Pt(0.5, 0))
	if _, ok := g.Field.HitEnemy(e.ID, gunship.Health); !ok {
		t.Fatal("Expected the gunship to be destroyed")
	}

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Player.Level != 2 {
		t.Errorf("Expected the gunship's exp to level up, got level %d", g.Player.Level)
	}
}

func TestManager_Upgrade(t *testing.T) {
	input := newFakeInput()
	config := simulation.DefaultConfig()
	config.Field.MinAsteroids = 0
	m := NewManager(config, 7, &fakeRenderer{}, input, 800, 600)

	input.justPressed[render.KeyU] = true
	m.Update()
	if m.State != StatePlaying {
		t.Fatal("Expected no upgrade screen without an offer")
	}

	m.Game.gainExp(config.Progress.BaseExp)
	m.Update()
	if m.State != StateUpgrade {
		t.Fatalf("Expected the upgrade screen, got %v", m.State)
	}
	input.justPressed[render.KeyU] = false

	renderer := m.Renderer.(*fakeRenderer)
	before := renderer.texts
	m.Draw(&fakeImage{w: 800, h: 600})
	if renderer.texts-before < config.Progress.Choices {
		t.Error("Expected every card to be drawn")
	}

	input.justPressed[render.KeyEscape] = true
	m.Update()
	if m.State != StatePlaying || m.Game.CurrentOffer() == nil {
		t.Fatal("Expected escape to keep the offer for later")
	}
	input.justPressed[render.KeyEscape] = false

	input.justPressed[render.KeyU] = true
	m.Update()
	input.justPressed[render.KeyU] = false
	input.justPressed[render.Key2] = true
	m.Update()
	if m.State != StatePlaying {
		t.Fatalf("Expected to resume after choosing, got %v", m.State)
	}
	if m.Game.CurrentOffer() != nil {
		t.Error("Expected the offer to be used up")
	}
}

func TestGame_WaveSpawnsLitEnemies(t *testing.T) {
	config := simulation.DefaultConfig()
	config.Field.MinAsteroids = 0
	config.Enemies.FirstDelay = 0
	g := NewGame(config, rand.New(rand.NewSource(1)), &fakeRenderer{}, nil, 800, 600)

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	enemies := g.Field.Enemies()
	if len(enemies) != 3 {
		t.Fatalf("Expected the first wave of 3, got %d", len(enemies))
	}
	if n := len(g.LightingManager.GetAllLights()); n != 4 {
		t.Errorf("Expected the player light plus 3 enemy lights, got %d", n)
	}
	for _, l := range g.LightingManager.GetAllLights()[1:] {
		found := false
		for _, e := range enemies {
			if e.Light == l.ID && geometry.EqPoint(l.Position, e.Pos) {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected light %s to follow its ship", l.ID)
		}
	}
	if len(g.Messages) == 0 || g.Messages[len(g.Messages)-1].Text != "Wave 1" {
		t.Errorf("Expected a wave message, got %+v", g.Messages)
	}
}

func TestGame_EnemyFire(t *testing.T) {
	g := newTestGame(nil)
	gunship, _ := g.Config.EnemyKind("gunship")
	g.Field.AddEnemy(gunship, geometry.Pt(10, 0))

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Player.Health != playerMaxHealth-gunship.Damage {
		t.Errorf("Expected health %d, got %d", playerMaxHealth-gunship.Damage, g.Player.Health)
	}
	if len(g.Tracers) != 1 || !g.Tracers[0].Hostile {
		t.Errorf("Expected one hostile tracer, got %+v", g.Tracers)
	}
}

func TestGame_EnemyCannotSeeDarkPlayer(t *testing.T) {
	g := newTestGame(nil)
	g.LightingManager.EnablePlayerLight(false)
	gunship, _ := g.Config.EnemyKind("gunship")
	g.Field.AddEnemy(gunship, geometry.Pt(10, 0))

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Player.Health != playerMaxHealth {
		t.Errorf("Expected no shot at a player in the dark, got health %d", g.Player.Health)
	}
}

func TestGame_AsteroidBlocksEnemyFire(t *testing.T) {
	g := newTestGame(nil)
	g.Field.Spawn(squareShape(1), geometry.Pt(5, 0), geometry.Point{}, 0, 0)
	gunship, _ := g.Config.EnemyKind("gunship")
	g.Field.AddEnemy(gunship, geometry.Pt(10, 0))

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Player.Health != playerMaxHealth {
		t.Errorf("Expected the asteroid to take the shot, got health %d", g.Player.Health)
	}
	if len(g.Tracers) != 1 || !geometry.Eq(g.Tracers[0].To.X, 6) {
		t.Errorf("Expected the tracer to stop on the asteroid, got %+v", g.Tracers)
	}
}

func TestGame_ShootEnemy(t *testing.T) {
	g := newTestGame(nil)
	scout, _ := g.Config.EnemyKind("scout")
	e := g.Field.AddEnemy(scout, geometry.Pt(10, 0))
	e.Light = g.LightingManager.AddLight(e.Pos, scout.LightRadius, enemyLightGlow, enemyLightColor)

	for i := 0; i < scout.Health; i++ {
		g.Player.cooldown = 0
		if !g.Fire() {
			t.Fatal("Expected Fire to succeed")
		}
	}
	if len(g.Field.Enemies()) != 0 {
		t.Fatal("Expected the scout to be destroyed")
	}
	if n := len(g.LightingManager.GetAllLights()); n != 1 {
		t.Errorf("Expected the scout's light to go out, got %d lights", n)
	}
	pickups := g.Field.Pickups()
	if len(pickups) != 1 || pickups[0].Kind != PickupExp || pickups[0].Value != scout.Exp {
		t.Errorf("Expected an exp drop worth %d, got %+v", scout.Exp, pickups)
	}
}

func TestGame_RamEnemy(t *testing.T) {
	g := newTestGame(nil)
	scout, _ := g.Config.EnemyKind("scout")
	g.Field.AddEnemy(scout, geometry.Pt(0.5, 0))

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Player.Health != playerMaxHealth-scout.Damage {
		t.Errorf("Expected health %d, got %d", playerMaxHealth-scout.Damage, g.Player.Health)
	}
	if len(g.Field.Enemies()) != 0 {
		t.Error("Expected ramming to wreck the scout")
	}
}

func TestGame_DeathPutsOutLights(t *testing.T) {
	g := newTestGame(nil)
	g.LightingManager.AddLight(geometry.Pt(5, 5), 5, 0.5, enemyLightColor)
	g.Player.Health = 5

	if !g.damage(10) {
		t.Fatal("Expected the hit to land")
	}
	if g.Player.Alive() {
		t.Fatal("Expected the player to die")
	}
	if n := len(g.LightingManager.GetAllLights()); n != 0 {
		t.Errorf("Expected every light out, got %d", n)
	}
	if g.damage(10) {
		t.Error("Expected no damage to a wreck")
	}
}
