package sprout

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawStats prints frame rate and plant size in the top-left corner.
func (v *Viewer) drawStats(screen *ebiten.Image, segments int) {
	a := v.sim.Arena()
	state := "growing"
	if v.paused {
		state = "paused"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f\nTPS: %.1f\nTick: %d (%s)\nNodes: %d/%d\nSegments: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), v.sim.Tick(), state, a.Len(), a.Cap(), segments))
}
