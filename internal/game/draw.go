package game

import (
	"fmt"
	"image/color"
	"log"

	"golang.org/x/image/colornames"

	"chosenoffset.com/astrolight/internal/core/geometry"
	"chosenoffset.com/astrolight/internal/render"
	"chosenoffset.com/astrolight/internal/render/lighting"
)

var (
	backgroundColor = color.RGBA{12, 14, 24, 255}
	asteroidColor   = colornames.Dimgray
	playerColor     = colornames.Khaki
	tracerColor     = colornames.Coral
	hostileColor    = colornames.Red
	enemyColor      = colornames.Orangered
)

// borderFade dims the light towards the edge of its rectangle
const borderFade = 0.25

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	w, h := screen.Size()

	// Ensure render textures exist and are the right size
	if g.WhiteImg == nil {
		g.WhiteImg = g.Renderer.NewImage(3, 3)
		g.WhiteImg.Fill(color.White)
	}
	if g.LightLayer == nil || needsResize(g.LightLayer, w, h) {
		if g.LightLayer != nil {
			g.LightLayer.Dispose()
		}
		g.LightLayer = g.Renderer.NewImage(w, h)
	}

	// Step 1: the scene
	screen.Fill(backgroundColor)
	g.drawAsteroids(screen)
	g.drawPickups(screen)
	g.drawEnemies(screen)
	g.drawTracers(screen)
	g.drawPlayer(screen)

	// Step 2: darkness with the lit regions cut out, then the player's
	// line of sight shadows on top
	g.drawLighting(screen)

	// Step 3: UI elements on top (unaffected by lighting)
	g.drawUI(screen)
	if g.ShowDebug {
		g.drawDebug(screen)
	}
}

func needsResize(img render.Image, w, h int) bool {
	bounds := img.Bounds()
	return bounds.Dx() != w || bounds.Dy() != h
}

// vertices maps a world-space triangulation onto the screen with one color
func (g *Game) vertices(t geometry.Triangulation, clr color.Color) []render.Vertex {
	r, gr, b, a := clr.RGBA()
	out := make([]render.Vertex, len(t.Points))
	for i, p := range t.Points {
		x, y := g.Camera.ToScreen(p)
		out[i] = render.Vertex{
			DstX:   x,
			DstY:   y,
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(r) / 0xffff,
			ColorG: float32(gr) / 0xffff,
			ColorB: float32(b) / 0xffff,
			ColorA: float32(a) / 0xffff,
		}
	}
	return out
}

func (g *Game) drawAsteroids(screen render.Image) {
	for _, a := range g.Field.Asteroids() {
		fan := a.Rounded.Triangulate()
		fan.Points = a.Isometry().TransformAll(fan.Points)
		screen.DrawTriangles(g.vertices(fan, asteroidColor), fan.Indices, g.WhiteImg, &render.DrawTrianglesOptions{AntiAlias: true})
	}
}

// drawPickups draws pickups as bright as the light they sit in
func (g *Game) drawPickups(screen render.Image) {
	for _, p := range g.Field.Pickups() {
		x, y := g.Camera.ToScreen(p.Pos)
		level := g.LightingManager.LightLevel(p.Pos, g.Visible)
		g.Renderer.FillCircle(screen, x, y, 5, dim(p.Kind.Color(), level))
	}
}

// dim scales a premultiplied color towards transparent
func dim(c color.RGBA, level float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * level),
		G: uint8(float64(c.G) * level),
		B: uint8(float64(c.B) * level),
		A: uint8(float64(c.A) * level),
	}
}

func (g *Game) drawEnemies(screen render.Image) {
	for _, e := range g.Field.Enemies() {
		x, y := g.Camera.ToScreen(e.Pos)
		radius := float32(e.Kind.Radius * g.Camera.Scale)
		g.Renderer.FillCircle(screen, x, y, radius, enemyColor)
		g.Renderer.StrokeCircle(screen, x, y, radius, 1, hostileColor)
	}
}

func (g *Game) drawTracers(screen render.Image) {
	for _, t := range g.Tracers {
		x0, y0 := g.Camera.ToScreen(t.From)
		x1, y1 := g.Camera.ToScreen(t.To)
		clr := tracerColor
		if t.Hostile {
			clr = hostileColor
		}
		g.Renderer.StrokeLine(screen, x0, y0, x1, y1, 2, clr)
	}
}

func (g *Game) drawPlayer(screen render.Image) {
	x, y := g.Camera.ToScreen(g.Player.Pos)
	radius := float32(playerRadius * g.Camera.Scale)
	clr := playerColor
	if g.Player.invulnerable > 0 && g.FrameCount%10 < 5 {
		clr = colornames.White
	}
	g.Renderer.FillCircle(screen, x, y, radius, clr)
	g.Renderer.StrokeCircle(screen, x, y, radius, 2, color.RGBA{200, 200, 50, 255})

	tip := g.Player.Pos.Plus(g.Player.AimDirection().Times(playerRadius * 2))
	tx, ty := g.Camera.ToScreen(tip)
	g.Renderer.StrokeLine(screen, x, y, tx, ty, 2, color.RGBA{200, 200, 50, 255})
}

func (g *Game) drawLighting(screen render.Image) {
	if g.LightingManager == nil {
		return
	}
	if g.FrameCount <= 5 && g.Config.Debug {
		log.Printf("DEBUG Frame %d: Rendering with %d lights", g.FrameCount, len(g.Visible))
	}

	darkness := uint8(255 * (1 - g.LightingManager.GetAmbientLight()))
	g.LightLayer.Fill(color.RGBA{0, 0, 0, darkness})

	erase := &render.DrawTrianglesOptions{AntiAlias: true, Erase: true}
	for _, v := range g.Visible {
		vertices, indices := g.lightVertices(v)
		g.LightLayer.DrawTriangles(vertices, indices, g.WhiteImg, erase)
	}

	shadow := color.RGBA{0, 0, 0, darkness}
	for _, mesh := range g.Field.ShadowMeshes(g.Player.Pos) {
		g.LightLayer.DrawTriangles(g.vertices(mesh, shadow), mesh.Indices, g.WhiteImg, &render.DrawTrianglesOptions{AntiAlias: true})
	}

	screen.DrawImage(g.LightLayer)
}

// lightVertices fans out the lit region of one light. Vertices on the light's
// rectangle are faded so the light has no hard square edge.
func (g *Game) lightVertices(v lighting.Visibility) ([]render.Vertex, []uint16) {
	fan := v.Polygon.Triangles()
	clr := color.NRGBA{255, 255, 255, uint8(255 * v.Light.Intensity)}
	vertices := g.vertices(fan, clr)
	for i, p := range fan.Points {
		// Index 0 is the light itself
		if i > 0 && v.Polygon.IsBorderPoint(p) {
			vertices[i].ColorA *= borderFade
		}
	}
	return vertices, fan.Indices
}

func (g *Game) drawUI(screen render.Image) {
	white := colornames.White
	status := fmt.Sprintf("Health %d/%d  Coins %d  Level %d (%d/%d exp)  Wave %d",
		g.Player.Health, g.Player.MaxHealth, g.Player.Coins,
		g.Player.Level, g.Player.LevelExp, g.Config.LevelExp(g.Player.Level), g.Waves.Number())
	g.Renderer.DrawText(screen, status, 20, 20, white, 1.0)
	if n := len(g.Offers); n > 0 {
		w, _ := screen.Size()
		text := fmt.Sprintf("%d upgrade(s) ready - press U", n)
		tw, _ := g.Renderer.MeasureText(text, 1.0)
		g.Renderer.DrawText(screen, text, w-tw-20, 20, colornames.Gold, 1.0)
	}

	// Draw on-screen messages
	y := 50.0
	for _, msg := range g.Messages {
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		g.Renderer.DrawText(screen, msg.Text, 20, int(y), color.RGBA{255, 255, 255, alpha}, 1.0)
		y += 20
	}
}

// DrawUpgradeOffer lists the cards of the current offer, numbered from 1
func (g *Game) DrawUpgradeOffer(screen render.Image) {
	offer := g.CurrentOffer()
	w, h := screen.Size()
	y := h/2 - 20*len(offer)
	for i, card := range offer {
		text := fmt.Sprintf("%d. %s - %s", i+1, card.Name, card.Description)
		tw, _ := g.Renderer.MeasureText(text, 1.0)
		g.Renderer.DrawText(screen, text, (w-tw)/2, y, colornames.Gold, 1.0)
		y += 30
	}
}

func (g *Game) drawDebug(screen render.Image) {
	lines := []string{
		fmt.Sprintf("asteroids %d  enemies %d  pickups %d", len(g.Field.Asteroids()), len(g.Field.Enemies()), len(g.Field.Pickups())),
		fmt.Sprintf("player (%.1f, %.1f)", g.Player.Pos.X, g.Player.Pos.Y),
	}
	for _, v := range g.Visible {
		lines = append(lines, fmt.Sprintf("light %s: %d points", v.Light.ID.String()[:8], len(v.Polygon.Points)))
	}

	_, h := screen.Size()
	y := h - 20*len(lines) - 10
	for _, line := range lines {
		g.Renderer.DrawText(screen, line, 20, y, colornames.Palegreen, 1.0)
		y += 20
	}
}
