package game

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"strconv"

	"github.com/atotto/clipboard"

	"chosenoffset.com/astrolight/internal/render"
	"chosenoffset.com/astrolight/internal/simulation"
)

// State is the top level state of the application.
type State int

const (
	StatePlaying State = iota
	StatePaused
	StateGameOver
	StateUpgrade
)

var upgradeKeys = []render.Key{render.Key1, render.Key2, render.Key3}

// Manager handles the overall game state: playing, paused, picking an
// upgrade and game over.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        State
	Game         *Game
	Config       *simulation.Config
	Renderer     render.Renderer
	InputMgr     render.InputManager

	// CopyText puts text on the system clipboard
	CopyText func(string) error

	seed    int64
	runSeed int64
	runs    int
	score   int
}

// NewManager creates a game manager and starts the first run.
func NewManager(config *simulation.Config, seed int64, r render.Renderer, input render.InputManager, width, height int) *Manager {
	m := &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		Config:       config,
		Renderer:     r,
		InputMgr:     input,
		CopyText:     clipboard.WriteAll,
		seed:         seed,
	}
	m.NewRun()
	return m
}

// NewRun replaces the current game with a fresh one. Every run gets its own
// deterministic seed derived from the starting seed.
func (m *Manager) NewRun() {
	m.runSeed = m.seed + int64(m.runs)
	m.runs++
	log.Printf("Starting run %d (seed %d)", m.runs, m.runSeed)
	m.Game = NewGame(m.Config, rand.New(rand.NewSource(m.runSeed)), m.Renderer, m.InputMgr, m.ScreenWidth, m.ScreenHeight)
	m.State = StatePlaying
}

// Update updates the game state.
func (m *Manager) Update() error {
	switch m.State {
	case StatePlaying:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			m.State = StatePaused
			return nil
		}
		if m.InputMgr.IsKeyJustPressed(render.KeyU) && m.Game.CurrentOffer() != nil {
			m.State = StateUpgrade
			return nil
		}
		if err := m.Game.Update(); err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}
		if !m.Game.Player.Alive() {
			m.score = m.Game.Player.Coins + m.Game.Player.Exp
			log.Printf("Run %d over: %d coins, %d exp", m.runs, m.Game.Player.Coins, m.Game.Player.Exp)
			m.State = StateGameOver
		}
	case StatePaused:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			return render.ErrQuit
		}
		if m.InputMgr.IsKeyJustPressed(render.KeySpace) {
			m.State = StatePlaying
		}
		if m.InputMgr.IsKeyJustPressed(render.KeyC) {
			m.copySeed()
		}
	case StateUpgrade:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			m.State = StatePlaying
			return nil
		}
		for i, key := range upgradeKeys {
			if m.InputMgr.IsKeyJustPressed(key) && m.Game.ChooseUpgrade(i) {
				m.State = StatePlaying
				break
			}
		}
	case StateGameOver:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			return render.ErrQuit
		}
		if m.InputMgr.IsKeyJustPressed(render.KeySpace) {
			m.NewRun()
		}
	}
	return nil
}

// RunSeed returns the seed of the current run.
func (m *Manager) RunSeed() int64 {
	return m.runSeed
}

// copySeed puts the current run seed on the clipboard so a run can be
// replayed with -seed. Clipboard failures are not fatal.
func (m *Manager) copySeed() {
	seed := strconv.FormatInt(m.runSeed, 10)
	if err := m.CopyText(seed); err != nil {
		log.Printf("Failed to copy seed: %v", err)
		m.Game.ShowMessage("Clipboard unavailable")
		return
	}
	m.Game.ShowMessage("Copied seed " + seed)
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	white := color.RGBA{255, 255, 255, 255}
	switch m.State {
	case StatePlaying:
		m.Game.Draw(screen)
	case StatePaused:
		m.Game.Draw(screen)
		m.drawCentered(screen, "Paused - SPACE to resume, C to copy seed, ESC to quit", white)
	case StateUpgrade:
		m.Game.Draw(screen)
		m.Game.DrawUpgradeOffer(screen)
	case StateGameOver:
		screen.Fill(color.RGBA{20, 20, 40, 255})
		m.drawCentered(screen, fmt.Sprintf("Game over - score %d. SPACE to retry, ESC to quit", m.score), white)
	}
}

func (m *Manager) drawCentered(screen render.Image, text string, clr color.Color) {
	w, h := screen.Size()
	tw, th := m.Renderer.MeasureText(text, 1.0)
	m.Renderer.DrawText(screen, text, (w-tw)/2, (h-th)/2, clr, 1.0)
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	m.ScreenWidth, m.ScreenHeight = outsideWidth, outsideHeight
	if m.Game != nil {
		m.Game.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
