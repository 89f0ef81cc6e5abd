package sprout

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn and returns whatever it wrote to os.Stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	defer func() { os.Stderr = old }()

	fn()
	w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read: %v", err)
	}
	return buf.String()
}

// ---- Invariant checks -------------------------------------------------------

func TestCheckInvariantsDetectsBrokenBackReference(t *testing.T) {
	a := mustArena(t, 4)
	root, _ := a.Plant(Vec3{}, 1)
	child := mustAllocate(t, a)
	a.Set(child, aliveNode(1))
	// Write the link directly, bypassing AttachLeft.
	rn := a.Get(root)
	rn.Left = child
	a.Set(root, rn)

	err := a.CheckInvariants()
	if err == nil || !strings.Contains(err.Error(), "has parent") {
		t.Errorf("CheckInvariants = %v, want back-reference error", err)
	}
}

func TestCheckInvariantsDetectsDanglingLink(t *testing.T) {
	a := mustArena(t, 4)
	root, _ := a.Plant(Vec3{}, 1)
	rn := a.Get(root)
	rn.Right = 3
	a.Set(root, rn)

	err := a.CheckInvariants()
	if err == nil || !strings.Contains(err.Error(), "not allocated") {
		t.Errorf("CheckInvariants = %v, want dangling link error", err)
	}
}

func TestCheckInvariantsDetectsLiveFreeSlot(t *testing.T) {
	a := mustArena(t, 4)
	// Write into a free slot without allocating it.
	a.Set(2, aliveNode(1))

	err := a.CheckInvariants()
	if err == nil || !strings.Contains(err.Error(), "free index 2") {
		t.Errorf("CheckInvariants = %v, want free-slot status error", err)
	}
}

func TestCheckInvariantsDetectsDuplicateFree(t *testing.T) {
	a := mustArena(t, 4)
	a.free[0] = a.free[1]

	err := a.CheckInvariants()
	if err == nil || !strings.Contains(err.Error(), "twice") {
		t.Errorf("CheckInvariants = %v, want duplicate error", err)
	}
}

// ---- Debug mode ------------------------------------------------------------

func TestDebugModeLogsStep(t *testing.T) {
	cfg := DefaultSimConfig()
	cfg.Growth.BranchChance = 0
	sim, err := NewSimulation(cfg)
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	sim.SetDebugMode(true)

	out := captureStderr(t, func() { sim.Step() })
	if !strings.Contains(out, "[sprout] tick 1") {
		t.Errorf("debug output missing tick line: %q", out)
	}
	if !strings.Contains(out, "nodes: 1/10000") {
		t.Errorf("debug output missing node count: %q", out)
	}
}

func TestDebugModeSilentWhenOff(t *testing.T) {
	sim, err := NewSimulation(DefaultSimConfig())
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	out := captureStderr(t, func() { sim.Step() })
	if out != "" {
		t.Errorf("unexpected output with debug off: %q", out)
	}
}

func TestDebugModePanicsOnCorruption(t *testing.T) {
	sim, err := NewSimulation(DefaultSimConfig())
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	sim.SetDebugMode(true)
	sim.Arena().Set(5, aliveNode(1))

	expectPanic(t, "sprout debug: after advance", func() {
		captureStderr(t, func() { sim.Step() })
	})
}

func TestDebugCheckTreeDepthWarns(t *testing.T) {
	const depth = debugMaxTreeDepth + 2
	a := mustArena(t, depth)
	prev, _ := a.Plant(Vec3{}, 0.01)
	for i := 1; i < depth; i++ {
		n := mustAllocate(t, a)
		a.Set(n, aliveNode(0.01))
		a.AttachLeft(prev, n)
		prev = n
	}
	out := captureStderr(t, func() { debugCheckTreeDepth(a) })
	if !strings.Contains(out, "warning: tree depth") {
		t.Errorf("expected depth warning, got %q", out)
	}
}
