package main

import (
	"flag"
	"log"
	"time"

	"chosenoffset.com/astrolight/internal/game"
	ebitenrender "chosenoffset.com/astrolight/internal/render/ebiten"
	"chosenoffset.com/astrolight/internal/simulation"
)

func main() {
	configPath := flag.String("config", "data/simulation.json", "Simulation config file")
	seed := flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	screenWidth := flag.Int("width", 1280, "Window width")
	screenHeight := flag.Int("height", 800, "Window height")
	flag.Parse()

	config, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	gameManager := game.NewManager(config, *seed, renderer, inputMgr, *screenWidth, *screenHeight)

	// Set up the window
	engine.SetWindowSize(*screenWidth, *screenHeight)
	engine.SetWindowTitle("Astrolight")
	engine.SetWindowResizable(true)

	log.Println("Starting game...")
	if err := engine.RunGame(gameManager); err != nil {
		log.Fatal(err)
	}
}
