package game

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"chosenoffset.com/astrolight/internal/core/geometry"
	"chosenoffset.com/astrolight/internal/render"
	"chosenoffset.com/astrolight/internal/render/lighting"
	"chosenoffset.com/astrolight/internal/simulation"
)

const (
	pixelsPerUnit  = 10.0 // Default camera zoom
	asteroidExp    = 1    // Exp for destroying an asteroid outright
	enemyLightGlow = 0.6  // Intensity of the light enemy ships carry
)

var enemyLightColor = color.NRGBA{255, 90, 70, 255}

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Config       *simulation.Config
	Field        *Field
	Waves        *Waves
	Player       Player
	Camera       Camera
	Renderer     render.Renderer
	InputMgr     render.InputManager

	LightingManager *lighting.Manager
	WhiteImg        render.Image
	LightLayer      render.Image

	// Lit regions for the current tick
	Visible []lighting.Visibility

	// Upgrade choices earned by levelling up, oldest first
	Offers [][]UpgradeCard

	// UI state
	Messages  []Message
	Tracers   []Tracer
	ShowDebug bool

	// Debug
	FrameCount int

	rng *rand.Rand
}

// NewGame creates a game with a populated field around the player.
func NewGame(config *simulation.Config, rng *rand.Rand, r render.Renderer, input render.InputManager, width, height int) *Game {
	g := &Game{
		ScreenWidth:     width,
		ScreenHeight:    height,
		Config:          config,
		Field:           NewField(config, rng),
		Waves:           NewWaves(config, rng),
		Player:          NewPlayer(),
		Camera:          Camera{Scale: pixelsPerUnit, Width: width, Height: height},
		Renderer:        r,
		InputMgr:        input,
		LightingManager: lighting.NewManager(),
		ShowDebug:       config.Debug,
		rng:             rng,
	}

	g.LightingManager.SetDebug(config.Debug)
	g.LightingManager.SetAmbientLight(config.Lighting.Ambient)
	g.LightingManager.SetPlayerLight(g.Player.Pos, config.Lighting.PlayerRadius, config.Lighting.PlayerIntensity,
		color.NRGBA{255, 240, 210, 255})

	spawned := g.Field.Populate(g.Player.Pos)
	log.Printf("Spawned %d asteroids", spawned)
	g.updateLighting()
	return g
}

// Update handles game logic updates.
func (g *Game) Update() error {
	// Delta time for timers (assuming 60 FPS)
	dt := 1.0 / 60.0
	g.FrameCount++

	g.updateMessages(dt)
	g.updateTracers()

	if g.InputMgr != nil {
		g.handleInput()
	}

	g.Player.Step()
	g.Field.Update(g.Player.Pos)
	if g.Player.Alive() {
		g.spawnWave()
	}
	g.checkCollisions()
	g.collectPickups()

	g.Camera.Center = g.Player.Pos
	g.updateLighting()
	if g.Player.Alive() {
		g.enemyFire()
	}
	return nil
}

func (g *Game) handleInput() {
	var thrust geometry.Vector
	if g.InputMgr.IsKeyPressed(render.KeyW) || g.InputMgr.IsKeyPressed(render.KeyUp) {
		thrust.Y++
	}
	if g.InputMgr.IsKeyPressed(render.KeyS) || g.InputMgr.IsKeyPressed(render.KeyDown) {
		thrust.Y--
	}
	if g.InputMgr.IsKeyPressed(render.KeyA) || g.InputMgr.IsKeyPressed(render.KeyLeft) {
		thrust.X--
	}
	if g.InputMgr.IsKeyPressed(render.KeyD) || g.InputMgr.IsKeyPressed(render.KeyRight) {
		thrust.X++
	}
	g.Player.Thrust(thrust)

	// Aim at the cursor
	cx, cy := g.InputMgr.GetCursorPosition()
	target := g.Camera.ToWorld(cx, cy).Minus(g.Player.Pos)
	if target.Magnitude() > 0 {
		g.Player.Aim = math.Atan2(target.Y, target.X)
	}

	if g.InputMgr.IsMouseButtonPressed(render.MouseButtonLeft) || g.InputMgr.IsKeyPressed(render.KeySpace) {
		g.Fire()
	}

	if g.InputMgr.IsKeyJustPressed(render.KeyL) {
		on := !g.LightingManager.IsPlayerLightOn()
		g.LightingManager.EnablePlayerLight(on)
		if on {
			g.ShowMessage("Light on")
		} else {
			g.ShowMessage("Light off")
		}
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyF) {
		g.ShowDebug = !g.ShowDebug
	}
}

// Fire shoots along the aim direction, plus two angled shots with the side
// bullet upgrade. Does nothing while the gun is cooling down.
func (g *Game) Fire() bool {
	if g.Player.cooldown > 0 || !g.Player.Alive() {
		return false
	}
	g.Player.cooldown = g.Player.FireCooldown

	angles := []float64{g.Player.Aim}
	if g.Player.SideBullets {
		angles = append(angles, g.Player.Aim-sideShotAngle, g.Player.Aim+sideShotAngle)
	}
	for _, angle := range angles {
		dir := geometry.Pt(math.Cos(angle), math.Sin(angle))
		shot := g.Field.Shoot(g.Player.Pos, dir, g.Player.ShotRange)
		end := g.Player.Pos.Plus(dir.Times(g.Player.ShotRange))
		switch {
		case shot.Hit && shot.Enemy:
			end = shot.Point
			if result, ok := g.Field.HitEnemy(shot.ID, 1); ok {
				g.applyEnemyHit(result)
			}
		case shot.Hit:
			end = shot.Point
			if result, ok := g.Field.Hit(shot.ID, shot.Point); ok {
				g.applyHit(result)
			}
		}
		g.Tracers = append(g.Tracers, Tracer{From: g.Player.Pos, To: end, TTL: 6})
	}
	return true
}

func (g *Game) applyHit(result HitResult) {
	if result.Destroyed {
		g.gainExp(asteroidExp)
	}
}

func (g *Game) applyEnemyHit(result EnemyHit) {
	if !result.Destroyed {
		return
	}
	if result.Enemy.Light != uuid.Nil {
		g.LightingManager.RemoveLight(result.Enemy.Light)
	}
	g.ShowMessage(result.Enemy.Kind.Name + " destroyed")
}

// spawnWave brings in the next wave once the schedule allows it. Ships with a
// light carry it with them, so a dark player can see them coming.
func (g *Game) spawnWave() {
	ships, number := g.Waves.Update(len(g.Field.Enemies()))
	if len(ships) == 0 {
		return
	}
	for _, kind := range ships {
		e := g.Field.SpawnEnemy(kind, g.Player.Pos)
		if kind.LightRadius > 0 {
			e.Light = g.LightingManager.AddLight(e.Pos, kind.LightRadius, enemyLightGlow, enemyLightColor)
		}
	}
	log.Printf("Wave %d: %d ships", number, len(ships))
	g.ShowMessage(fmt.Sprintf("Wave %d", number))
}

// enemyFire lets every loaded gun shoot at the player. Enemies only see the
// player while it stands in some light; asteroids on the line of fire take the
// shot instead.
func (g *Game) enemyFire() {
	if !lighting.IsLit(g.Player.Pos, g.Visible) {
		return
	}
	for _, e := range g.Field.Enemies() {
		line := geometry.Segment{A: e.Pos, B: g.Player.Pos}
		if !e.CanFire(line) {
			continue
		}
		e.Reload()
		if at, blocked := g.Field.Blocked(line); blocked {
			g.Tracers = append(g.Tracers, Tracer{From: e.Pos, To: at, TTL: 6, Hostile: true})
			continue
		}
		g.Tracers = append(g.Tracers, Tracer{From: e.Pos, To: g.Player.Pos, TTL: 6, Hostile: true})
		g.damage(e.Kind.Damage)
	}
}

// damage takes health from the player unless the hull is still recovering
// from the last hit. Returns false when the damage was ignored.
func (g *Game) damage(amount int) bool {
	if g.Player.invulnerable > 0 || !g.Player.Alive() {
		return false
	}
	g.Player.Health -= amount
	if g.Player.Health < 0 {
		g.Player.Health = 0
	}
	g.Player.invulnerable = invulnerableTicks
	g.ShowMessage(fmt.Sprintf("Hull hit! Health %d", g.Player.Health))

	if !g.Player.Alive() {
		// Every light goes out with the ship
		g.LightingManager.ClearLights()
		g.LightingManager.EnablePlayerLight(false)
	}
	return true
}

func (g *Game) checkCollisions() {
	if e, ok := g.Field.CollideEnemy(g.Player.Pos, playerRadius); ok {
		g.damage(e.Kind.Damage)
		// Ramming wrecks the enemy ship
		if result, ok := g.Field.HitEnemy(e.ID, e.Health); ok {
			g.applyEnemyHit(result)
		}
	}

	if g.Player.invulnerable > 0 {
		return
	}
	a, ok := g.Field.Collide(g.Player.Pos, playerRadius)
	if !ok {
		return
	}
	g.damage(collisionDamage)
	if result, ok := g.Field.Hit(a.ID, g.Player.Pos); ok {
		g.applyHit(result)
	}
}

// gainExp adds exp and levels up as many times as it covers. Every level
// queues a new set of upgrade cards.
func (g *Game) gainExp(amount int) {
	if g.Player.DoubleExp {
		amount *= 2
	}
	g.Player.Exp += amount
	g.Player.LevelExp += amount
	for need := g.Config.LevelExp(g.Player.Level); g.Player.LevelExp >= need; need = g.Config.LevelExp(g.Player.Level) {
		g.Player.LevelExp -= need
		g.Player.Level++
		g.Offers = append(g.Offers, g.dealCards())
		g.ShowMessage(fmt.Sprintf("Level %d! Press U to upgrade", g.Player.Level))
	}
}

// dealCards draws distinct upgrade cards for one offer
func (g *Game) dealCards() []UpgradeCard {
	n := g.Config.Progress.Choices
	if n > len(upgradeCards) {
		n = len(upgradeCards)
	}
	cards := make([]UpgradeCard, 0, n)
	for _, i := range g.rng.Perm(len(upgradeCards))[:n] {
		cards = append(cards, upgradeCards[i])
	}
	return cards
}

// CurrentOffer returns the oldest pending upgrade choice, nil when none is
// pending
func (g *Game) CurrentOffer() []UpgradeCard {
	if len(g.Offers) == 0 {
		return nil
	}
	return g.Offers[0]
}

// ChooseUpgrade installs card i of the current offer and discards the rest
func (g *Game) ChooseUpgrade(i int) bool {
	offer := g.CurrentOffer()
	if i < 0 || i >= len(offer) {
		return false
	}
	card := offer[i]
	card.Apply(&g.Player)
	g.Offers = g.Offers[1:]
	g.ShowMessage("Installed " + card.Name)
	return true
}

func (g *Game) collectPickups() {
	for _, p := range g.Field.Collect(g.Player.Pos, g.Config.Drops.PickupRadius) {
		switch p.Kind {
		case PickupHealth:
			g.Player.Heal(p.Value)
		case PickupCoin:
			coins := p.Value
			if g.Player.DoubleCoins {
				coins *= 2
			}
			g.Player.Coins += coins
		case PickupSideBullet:
			g.Player.SideBullets = true
		case PickupDoubleCoins:
			g.Player.DoubleCoins = true
		case PickupDoubleExp:
			g.Player.DoubleExp = true
		case PickupExp:
			g.gainExp(p.Value)
		}
		g.ShowMessage("Picked up " + p.Kind.String())
	}
}

func (g *Game) updateLighting() {
	g.LightingManager.UpdatePlayerLightPosition(g.Player.Pos)
	for _, e := range g.Field.Enemies() {
		if e.Light != uuid.Nil {
			g.LightingManager.MoveLight(e.Light, e.Pos)
		}
	}
	g.Visible = g.LightingManager.VisibilityPolygons(g.Field.Occluders())
}

func (g *Game) updateTracers() {
	active := g.Tracers[:0]
	for _, t := range g.Tracers {
		t.TTL--
		if t.TTL > 0 {
			active = append(active, t)
		}
	}
	g.Tracers = active
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
	if g.Config.Debug {
		log.Printf("Message: %s", text)
	}
}

// Layout handles window resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ScreenWidth, g.ScreenHeight = outsideWidth, outsideHeight
	g.Camera.Width, g.Camera.Height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
