package sprout

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// TPS is the number of updates per second. Zero keeps ebiten's default of 60.
	TPS int
	// StepsPerFrame is the number of growth ticks per update. Zero means 1.
	StepsPerFrame int
	// ShowStats draws the FPS / node count overlay.
	ShowStats bool
	// Script, when set, drives the viewer unattended.
	Script *ScriptRunner
}

// Run opens a window and grows sim until the window is closed.
//
//	sim, _ := sprout.NewSimulation(sprout.DefaultSimConfig())
//	if err := sprout.Run(sim, sprout.RunConfig{Title: "sprout", Width: 800, Height: 800}); err != nil {
//		log.Fatal(err)
//	}
func Run(sim *Simulation, cfg RunConfig) error {
	v := NewViewer(sim)
	v.ShowStats = cfg.ShowStats
	if cfg.StepsPerFrame > 0 {
		v.StepsPerFrame = cfg.StepsPerFrame
	}
	if cfg.Script != nil {
		v.SetScript(cfg.Script)
	}

	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(v)
}
