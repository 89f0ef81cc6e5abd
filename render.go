package sprout

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultVertexCap = 4096

// Viewer is an ebiten.Game that grows a Simulation and draws its segments
// as colored line quads through a Camera.
//
// Each Update advances the simulation StepsPerFrame ticks (unless paused);
// each Draw extracts the geometry once and submits it in a single
// DrawTriangles32 call.
type Viewer struct {
	sim *Simulation

	// Camera is the view used to project segments.
	Camera *Camera
	// ClearColor fills the screen before drawing.
	ClearColor Color
	// LineWidth is the on-screen width of a segment in pixels.
	LineWidth float64
	// StepsPerFrame is the number of growth ticks per Update.
	StepsPerFrame int
	// ShowStats draws the FPS / node count overlay.
	ShowStats bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	paused  bool
	stepReq bool

	runner          *ScriptRunner
	screenshotQueue []string

	// Reused per-frame buffers (high-water mark, never shrink).
	verts []ebiten.Vertex
	inds  []uint32
}

// NewViewer creates a viewer for sim with a default camera.
func NewViewer(sim *Simulation) *Viewer {
	return &Viewer{
		sim:           sim,
		Camera:        NewCamera(),
		ClearColor:    Color{0, 0, 1, 1},
		LineWidth:     2,
		StepsPerFrame: 1,
		ScreenshotDir: "screenshots",
		verts:         make([]ebiten.Vertex, 0, defaultVertexCap),
		inds:          make([]uint32, 0, defaultVertexCap/4*6),
	}
}

// Simulation returns the simulation being viewed.
func (v *Viewer) Simulation() *Simulation {
	return v.sim
}

// SetPaused stops or resumes growth. The camera keeps animating while paused.
func (v *Viewer) SetPaused(paused bool) {
	v.paused = paused
}

// Paused reports whether growth is paused.
func (v *Viewer) Paused() bool {
	return v.paused
}

// Update handles input, runs the attached script and advances growth.
func (v *Viewer) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	v.processInput()
	if v.runner != nil {
		v.runner.step(v)
	}
	v.advance()
	v.Camera.update(dt)
	return nil
}

// advance runs this frame's growth ticks.
func (v *Viewer) advance() {
	switch {
	case v.stepReq:
		v.stepReq = false
		v.sim.Step()
	case !v.paused:
		for i := 0; i < v.StepsPerFrame; i++ {
			v.sim.Step()
		}
	}
}

// Draw renders the current plant geometry to screen.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.ClearColor.toRGBA())

	b := screen.Bounds()
	segs := v.sim.Segments()
	v.verts, v.inds = appendLineQuads(v.verts[:0], v.inds[:0], segs, v.Camera,
		float64(b.Dx()), float64(b.Dy()), v.LineWidth)

	if len(v.inds) > 0 {
		var op ebiten.DrawTrianglesOptions
		screen.DrawTriangles32(v.verts, v.inds, ensureWhitePixel(), &op)
	}

	if v.ShowStats {
		v.drawStats(screen, len(segs))
	}
	v.flushScreenshots(screen, len(segs))
}

// Layout reports the screen size unchanged.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// appendLineQuads projects every segment through cam and appends a quad of
// the given pixel width (4 vertices, 6 indices) per segment. Segments with
// an endpoint outside the camera's depth range are dropped. Vertex colors
// carry the segment's start and end colors.
func appendLineQuads(verts []ebiten.Vertex, inds []uint32, segs []Segment, cam *Camera, w, h, width float64) ([]ebiten.Vertex, []uint32) {
	view := cam.view()
	halfW := width / 2
	for i := range segs {
		s := &segs[i]
		x0, y0, ok0 := cam.project(view, s.Start, w, h)
		x1, y1, ok1 := cam.project(view, s.End, w, h)
		if !ok0 || !ok1 {
			continue
		}
		nx, ny := perpendicular(x0, y0, x1, y1)
		nx *= halfW
		ny *= halfW

		base := uint32(len(verts))
		verts = append(verts,
			lineVertex(x0+nx, y0+ny, s.StartColor),
			lineVertex(x0-nx, y0-ny, s.StartColor),
			lineVertex(x1+nx, y1+ny, s.EndColor),
			lineVertex(x1-nx, y1-ny, s.EndColor),
		)
		inds = append(inds,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
	return verts, inds
}

// lineVertex builds a premultiplied vertex sampling the white pixel.
func lineVertex(x, y float64, c Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R * c.A),
		ColorG: float32(c.G * c.A),
		ColorB: float32(c.B * c.A),
		ColorA: float32(c.A),
	}
}

// perpendicular returns the unit left-perpendicular of the segment from
// (x0, y0) to (x1, y1). Degenerate segments get a vertical normal.
func perpendicular(x0, y0, x1, y1 float64) (float64, float64) {
	dx := x1 - x0
	dy := y1 - y0
	ln := Vec3{dx, dy, 0}.Len()
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

// --- White pixel singleton (no sync.Once, the viewer is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
