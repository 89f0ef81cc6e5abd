package sprout

import (
	"encoding/json"
	"fmt"

	"github.com/tanema/gween/ease"
)

// scriptStep represents a single action in a growth script.
type scriptStep struct {
	Action   string    `json:"action"`
	Label    string    `json:"label,omitempty"`
	Ticks    int       `json:"ticks,omitempty"`
	Frames   int       `json:"frames,omitempty"`
	Yaw      float64   `json:"yaw,omitempty"`
	Pitch    float64   `json:"pitch,omitempty"`
	Duration float32   `json:"duration,omitempty"`
	Settings *Settings `json:"settings,omitempty"`
}

// script is the top-level JSON structure for a growth script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences growth, camera moves and screenshots across frames
// for unattended runs. Attach to a Viewer via SetScript.
//
// Supported actions:
//
//	advance     grow "ticks" ticks at once (default 1)
//	wait        let "frames" frames pass (growth continues unless paused)
//	pause       stop per-frame growth
//	resume      restart per-frame growth
//	orbit       animate the camera to "yaw"/"pitch" over "duration" seconds
//	frame       animate the camera to fit the plant over "duration" seconds
//	settings    replace the environment snapshot with "settings"
//	screenshot  capture the frame as "label"
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON growth script and returns a ScriptRunner ready
// to be attached to a Viewer via SetScript.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "advance", "wait", "pause", "resume", "orbit", "frame", "screenshot":
		case "settings":
			if st.Settings == nil {
				return nil, fmt.Errorf("parse script: step %d: settings action without settings", i)
			}
			if err := st.Settings.Validate(); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches a ScriptRunner to the viewer. The runner's step method
// is called from Viewer.Update after input handling each frame.
func (v *Viewer) SetScript(runner *ScriptRunner) {
	v.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Viewer.Update.
func (r *ScriptRunner) step(v *Viewer) {
	if r.done {
		return
	}
	// Hold while a camera animation is still running.
	if v.Camera.IsAnimating() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "advance":
		ticks := st.Ticks
		if ticks < 1 {
			ticks = 1
		}
		for i := 0; i < ticks; i++ {
			v.sim.Step()
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "pause":
		v.paused = true
	case "resume":
		v.paused = false
	case "orbit":
		v.Camera.OrbitTo(st.Yaw, st.Pitch, st.Duration, ease.InOutQuad)
	case "frame":
		v.Camera.FrameTo(v.sim.Segments(), st.Duration, ease.OutCubic)
	case "settings":
		v.sim.SetSettings(*st.Settings)
	case "screenshot":
		v.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !v.Camera.IsAnimating() {
		r.done = true
	}
}
