package sprout

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

// Per-frame camera speeds for held keys.
const (
	orbitSpeed = 0.03 // radians
	dollySpeed = 1.02 // distance factor
	panSpeed   = 0.02 // world units
)

// processInput applies keyboard controls:
//
//	Arrows    orbit the camera
//	W / S     dolly in / out
//	A / D     pan left / right
//	Q / E     pan down / up
//	Space     pause / resume growth
//	N         grow one tick (while paused)
//	F         frame the whole plant
//	P         take a screenshot
func (v *Viewer) processInput() {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.Camera.Orbit(-orbitSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.Camera.Orbit(orbitSpeed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.Camera.Orbit(0, orbitSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.Camera.Orbit(0, -orbitSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		v.Camera.Dolly(1 / dollySpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		v.Camera.Dolly(dollySpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		v.Camera.Pan(Vec3{X: -panSpeed})
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		v.Camera.Pan(Vec3{X: panSpeed})
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		v.Camera.Pan(Vec3{Y: -panSpeed})
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		v.Camera.Pan(Vec3{Y: panSpeed})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && v.paused {
		v.stepReq = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		v.Camera.FrameTo(v.sim.Segments(), 0.6, ease.OutCubic)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		v.Screenshot("manual")
	}
}
