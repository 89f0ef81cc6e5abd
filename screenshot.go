package sprout

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the current frame. At the end of
// Draw the frame is written to ScreenshotDir as a PNG, next to a JSON file
// recording the plant and camera state it shows.
func (v *Viewer) Screenshot(label string) {
	v.screenshotQueue = append(v.screenshotQueue, label)
}

// shotInfo is the sidecar written with every screenshot. Together with the
// settings file it is enough to regrow and reframe the same plant.
type shotInfo struct {
	Label    string   `json:"label"`
	Seed     uint64   `json:"seed"`
	Tick     uint64   `json:"tick"`
	Nodes    int      `json:"nodes"`
	Capacity int      `json:"capacity"`
	Segments int      `json:"segments"`
	Settings Settings `json:"settings"`
	Camera   shotPose `json:"camera"`
}

type shotPose struct {
	Target   Vec3    `json:"target"`
	Yaw      float64 `json:"yaw"`
	Pitch    float64 `json:"pitch"`
	Distance float64 `json:"distance"`
}

// shotInfo snapshots the simulation and camera for a capture.
func (v *Viewer) shotInfo(label string, segments int) shotInfo {
	a := v.sim.Arena()
	return shotInfo{
		Label:    label,
		Seed:     v.sim.Seed(),
		Tick:     v.sim.Tick(),
		Nodes:    a.Len(),
		Capacity: a.Cap(),
		Segments: segments,
		Settings: v.sim.Settings(),
		Camera: shotPose{
			Target:   v.Camera.Target,
			Yaw:      v.Camera.Yaw,
			Pitch:    v.Camera.Pitch,
			Distance: v.Camera.Distance,
		},
	}
}

// name is the file stem shared by the PNG and its sidecar:
// seed, tick and label, so captures of one run sort by growth.
func (s shotInfo) name() string {
	return fmt.Sprintf("s%d_t%08d_%s", s.Seed, s.Tick, sanitizeLabel(s.Label))
}

// flushScreenshots reads the frame back once and saves it for every queued
// label. Called at the end of Viewer.Draw.
func (v *Viewer) flushScreenshots(screen *ebiten.Image, segments int) {
	if len(v.screenshotQueue) == 0 {
		return
	}
	defer func() { v.screenshotQueue = v.screenshotQueue[:0] }()

	if err := os.MkdirAll(v.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[sprout] screenshot: mkdir %s: %v\n", v.ScreenshotDir, err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	for _, label := range v.screenshotQueue {
		if err := saveShot(v.ScreenshotDir, img, v.shotInfo(label, segments)); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[sprout] screenshot: %v\n", err)
		}
	}
}

// saveShot writes <dir>/<name>.png and <dir>/<name>.json.
func saveShot(dir string, img image.Image, info shotInfo) error {
	stem := filepath.Join(dir, info.name())
	if err := createWith(stem+".png", func(w io.Writer) error {
		return png.Encode(w, img)
	}); err != nil {
		return err
	}
	return createWith(stem+".json", func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	})
}

// createWith creates path and fills it with encode.
func createWith(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// unpremultiply converts ebiten's premultiplied RGBA read-back to straight alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix))
	copy(img.Pix, pixels[:n])
	for i := 0; i+3 < n; i += 4 {
		a := int(img.Pix[i+3])
		if a == 0 || a == 255 {
			continue
		}
		for c := i; c < i+3; c++ {
			img.Pix[c] = uint8(min(int(img.Pix[c])*255/a, 255))
		}
	}
	return img
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', maps every other
// rune to '_', and names blank labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
			return r
		}
		return '_'
	}, label)
}
