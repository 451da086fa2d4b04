package game

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"chosenoffset.com/astrolight/internal/core/geometry"
	"chosenoffset.com/astrolight/internal/render"
	"chosenoffset.com/astrolight/internal/simulation"
)

type fakeInput struct {
	pressed     map[render.Key]bool
	justPressed map[render.Key]bool
	mouse       bool
	cx, cy      int
}

func newFakeInput() *fakeInput {
	return &fakeInput{pressed: map[render.Key]bool{}, justPressed: map[render.Key]bool{}}
}

func (f *fakeInput) IsKeyPressed(key render.Key) bool     { return f.pressed[key] }
func (f *fakeInput) IsKeyJustPressed(key render.Key) bool { return f.justPressed[key] }
func (f *fakeInput) GetCursorPosition() (int, int)        { return f.cx, f.cy }
func (f *fakeInput) IsMouseButtonPressed(render.MouseButton) bool {
	return f.mouse
}
func (f *fakeInput) IsMouseButtonJustPressed(render.MouseButton) bool {
	return f.mouse
}

type fakeImage struct {
	w, h      int
	triangles int
	badIndex  bool
}

func (i *fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, i.w, i.h) }
func (i *fakeImage) Size() (int, int)        { return i.w, i.h }
func (i *fakeImage) Fill(color.Color)        {}
func (i *fakeImage) Clear()                  {}
func (i *fakeImage) DrawImage(render.Image)  {}
func (i *fakeImage) Dispose()                {}
func (i *fakeImage) DrawTriangles(vertices []render.Vertex, indices []uint16, _ render.Image, _ *render.DrawTrianglesOptions) {
	i.triangles += len(indices) / 3
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			i.badIndex = true
		}
	}
}

type fakeRenderer struct {
	texts int
}

func (r *fakeRenderer) NewImage(w, h int) render.Image { return &fakeImage{w: w, h: h} }
func (r *fakeRenderer) FillCircle(render.Image, float32, float32, float32, color.Color) {
}
func (r *fakeRenderer) StrokeCircle(render.Image, float32, float32, float32, float32, color.Color) {
}
func (r *fakeRenderer) StrokeLine(render.Image, float32, float32, float32, float32, float32, color.Color) {
}
func (r *fakeRenderer) DrawText(render.Image, string, int, int, color.Color, float64) {
	r.texts++
}
func (r *fakeRenderer) MeasureText(text string, scale float64) (int, int) {
	return len(text) * 6, 16
}

func newTestGame(input render.InputManager) *Game {
	config := simulation.DefaultConfig()
	config.Field.MinAsteroids = 0
	return NewGame(config, rand.New(rand.NewSource(1)), &fakeRenderer{}, input, 800, 600)
}

func TestCamera(t *testing.T) {
	c := Camera{Center: geometry.Pt(5, 5), Scale: 10, Width: 800, Height: 600}
	x, y := c.ToScreen(geometry.Pt(6, 7))
	if x != 410 || y != 280 {
		t.Errorf("Expected (410, 280), got (%f, %f)", x, y)
	}
	if p := c.ToWorld(410, 280); !geometry.EqPoint(p, geometry.Pt(6, 7)) {
		t.Errorf("Expected (6, 7), got %v", p)
	}
}

func TestGame_ShootBreaksAsteroid(t *testing.T) {
	input := newFakeInput()
	g := newTestGame(input)
	target := g.Field.Spawn(squareShape(2), geometry.Pt(10, 0), geometry.Point{}, 0, 0)

	// Cursor right of the player, world (10, 0)
	input.cx, input.cy = 500, 300
	input.pressed[render.KeySpace] = true

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !geometry.Eq(g.Player.Aim, 0) {
		t.Errorf("Expected aim 0, got %f", g.Player.Aim)
	}
	if _, ok := g.Field.Asteroid(target.ID); ok {
		t.Error("Target should have been broken")
	}
	if n := len(g.Field.Asteroids()); n < 2 {
		t.Errorf("Expected fragments in the field, got %d asteroids", n)
	}
	if len(g.Tracers) != 1 {
		t.Errorf("Expected 1 tracer, got %d", len(g.Tracers))
	}

	// Gun is cooling down
	if g.Fire() {
		t.Error("Expected Fire to be blocked by the cooldown")
	}
}

func TestGame_SideBullets(t *testing.T) {
	g := newTestGame(nil)
	g.Player.SideBullets = true
	if !g.Fire() {
		t.Fatal("Expected Fire to succeed")
	}
	if len(g.Tracers) != 3 {
		t.Errorf("Expected 3 tracers with side bullets, got %d", len(g.Tracers))
	}
}

func TestGame_CollectPickups(t *testing.T) {
	g := newTestGame(nil)
	g.Config.Drops.HealthChance = 1
	g.Config.Drops.CoinChance = 1
	g.Config.Drops.SideBulletChance = 1
	g.Config.Drops.DoubleCoinsChance = 1
	g.Config.Drops.DoubleExpChance = 1
	g.Player.Health = 50
	g.Field.rollDrops(geometry.Pt(0.5, 0))

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Player.Health != playerMaxHealth {
		t.Errorf("Expected health capped at %d, got %d", playerMaxHealth, g.Player.Health)
	}
	if g.Player.Coins != 1 {
		t.Errorf("Expected 1 coin, got %d", g.Player.Coins)
	}
	if !g.Player.SideBullets || !g.Player.DoubleCoins || !g.Player.DoubleExp {
		t.Error("Expected every upgrade to be picked up")
	}
	if len(g.Messages) != 5 {
		t.Errorf("Expected 5 messages, got %d", len(g.Messages))
	}
}

func TestGame_Collision(t *testing.T) {
	g := newTestGame(nil)
	g.Field.Spawn(squareShape(2), geometry.Pt(0, 0), geometry.Point{}, 0, 0)

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Player.Health != playerMaxHealth-collisionDamage {
		t.Errorf("Expected health %d, got %d", playerMaxHealth-collisionDamage, g.Player.Health)
	}

	// Fragments still overlap the player but the grace period protects it
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if g.Player.Health != playerMaxHealth-collisionDamage {
		t.Errorf("Expected no damage while invulnerable, got health %d", g.Player.Health)
	}
}

func TestGame_Lighting(t *testing.T) {
	input := newFakeInput()
	g := newTestGame(input)
	g.Field.Spawn(squareShape(1), geometry.Pt(5, 0), geometry.Point{}, 0, 0)

	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(g.Visible) != 1 {
		t.Fatalf("Expected the player light to be visible, got %d", len(g.Visible))
	}
	if n := len(g.Visible[0].Polygon.Points); n <= 4 {
		t.Errorf("Expected the asteroid to notch the light, got %d points", n)
	}

	input.justPressed[render.KeyL] = true
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if len(g.Visible) != 0 {
		t.Errorf("Expected no lit regions with the light off, got %d", len(g.Visible))
	}
}

func TestGame_Draw(t *testing.T) {
	g := newTestGame(nil)
	g.Field.Spawn(squareShape(1), geometry.Pt(5, 0), geometry.Point{}, 0, 0)
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	screen := &fakeImage{w: 800, h: 600}
	g.Draw(screen)

	if screen.triangles == 0 {
		t.Error("Expected the asteroid to be drawn")
	}
	layer := g.LightLayer.(*fakeImage)
	if layer.triangles == 0 {
		t.Error("Expected light and shadow triangles on the light layer")
	}
	if screen.badIndex || layer.badIndex {
		t.Error("Triangle index out of range")
	}
}

func TestManager_States(t *testing.T) {
	input := newFakeInput()
	config := simulation.DefaultConfig()
	config.Field.MinAsteroids = 0
	m := NewManager(config, 7, &fakeRenderer{}, input, 800, 600)

	if m.State != StatePlaying {
		t.Fatalf("Expected playing, got %v", m.State)
	}

	input.justPressed[render.KeyEscape] = true
	m.Update()
	if m.State != StatePaused {
		t.Fatalf("Expected paused, got %v", m.State)
	}
	input.justPressed[render.KeyEscape] = false
	input.justPressed[render.KeySpace] = true
	m.Update()
	if m.State != StatePlaying {
		t.Fatalf("Expected playing after resume, got %v", m.State)
	}

	input.justPressed[render.KeySpace] = false
	m.Game.Player.Health = 0
	m.Update()
	if m.State != StateGameOver {
		t.Fatalf("Expected game over, got %v", m.State)
	}

	input.justPressed[render.KeySpace] = true
	first := m.Game
	m.Update()
	if m.State != StatePlaying || m.Game == first {
		t.Fatal("Expected a fresh run after game over")
	}
	if m.Game.Player.Health != playerMaxHealth {
		t.Errorf("Expected full health, got %d", m.Game.Player.Health)
	}

	input.justPressed[render.KeySpace] = false
	input.justPressed[render.KeyEscape] = true
	m.Update() // pause
	if err := m.Update(); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected quit, got %v", err)
	}
}

func TestManager_CopySeed(t *testing.T) {
	input := newFakeInput()
	config := simulation.DefaultConfig()
	config.Field.MinAsteroids = 0
	m := NewManager(config, 42, &fakeRenderer{}, input, 800, 600)

	var copied string
	m.CopyText = func(text string) error {
		copied = text
		return nil
	}

	// Copy is only available while paused
	input.justPressed[render.KeyC] = true
	m.Update()
	if copied != "" {
		t.Fatalf("Expected no copy while playing, got %q", copied)
	}

	m.State = StatePaused
	m.Update()
	if copied != "42" {
		t.Errorf("Expected seed 42 on the clipboard, got %q", copied)
	}
	if len(m.Game.Messages) != 1 {
		t.Errorf("Expected a confirmation message, got %d", len(m.Game.Messages))
	}

	m.CopyText = func(string) error { return errors.New("no clipboard") }
	m.Update()
	if len(m.Game.Messages) != 2 || m.Game.Messages[1].Text != "Clipboard unavailable" {
		t.Errorf("Expected a failure message, got %+v", m.Game.Messages)
	}

	// The second run gets the next seed
	m.State = StateGameOver
	input.justPressed[render.KeyC] = false
	input.justPressed[render.KeySpace] = true
	m.Update()
	if m.RunSeed() != 43 {
		t.Errorf("Expected run seed 43, got %d", m.RunSeed())
	}
}
