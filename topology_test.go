package sprout

import (
	"errors"
	"math"
	"testing"
)

// recordingSink collects emitted growth events.
type recordingSink struct {
	events []GrowthEvent
}

func (r *recordingSink) EmitEvent(e GrowthEvent) {
	r.events = append(r.events, e)
}

// --- Attach ---

func TestAttachSetsBackReference(t *testing.T) {
	a := mustArena(t, 4)
	p := mustAllocate(t, a)
	l := mustAllocate(t, a)
	r := mustAllocate(t, a)
	for _, i := range []Index{p, l, r} {
		a.Set(i, aliveNode(1))
	}

	a.AttachLeft(p, l)
	a.AttachRight(p, r)

	pn := a.Get(p)
	if pn.Left != l || pn.Right != r {
		t.Errorf("parent links = %d/%d, want %d/%d", pn.Left, pn.Right, l, r)
	}
	if a.Get(l).Parent != p || a.Get(r).Parent != p {
		t.Error("children do not point back at parent")
	}
	if err := a.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants: %v", err)
	}
}

func TestAttachNoIndexClearsLink(t *testing.T) {
	a := mustArena(t, 2)
	p := mustAllocate(t, a)
	c := mustAllocate(t, a)
	a.Set(p, aliveNode(1))
	a.Set(c, aliveNode(1))
	a.AttachLeft(p, c)

	a.AttachLeft(p, NoIndex)
	if got := a.Get(p).Left; got != NoIndex {
		t.Errorf("Left = %d, want NoIndex", got)
	}
	// The old child is left untouched.
	if got := a.Get(c).Parent; got != p {
		t.Errorf("old child Parent = %d, want %d", got, p)
	}
}

func TestAttachOutOfRangePanics(t *testing.T) {
	a := mustArena(t, 2)
	p := mustAllocate(t, a)
	expectPanic(t, "out of range", func() { a.AttachRight(p, 7) })
}

// --- SplitSegment ---

func TestSplitSegmentLeaf(t *testing.T) {
	a := mustArena(t, 4)
	i, _ := a.Plant(Vec3{}, 2)
	before := a.Get(i)

	m, err := a.SplitSegment(0.25, i)
	if err != nil {
		t.Fatalf("SplitSegment: %v", err)
	}

	lower, upper := a.Get(i), a.Get(m)
	assertNear(t, "lower length", lower.Length, 0.5)
	assertNear(t, "upper length", upper.Length, 1.5)
	if lower.Left != m || lower.Right != NoIndex {
		t.Errorf("lower links = %d/%d, want %d/NoIndex", lower.Left, lower.Right, m)
	}
	if upper.Parent != i {
		t.Errorf("upper Parent = %d, want %d", upper.Parent, i)
	}
	if !upper.IsLeaf() {
		t.Error("upper should be a leaf")
	}
	if upper.Transform != Identity {
		t.Error("upper transform should be identity")
	}
	if upper.Status != before.Status || upper.Visible != before.Visible || upper.Archetype != before.Archetype {
		t.Error("upper should copy status, visibility and archetype from the split node")
	}
	if err := a.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants: %v", err)
	}
}

func TestSplitSegmentTransplantsChildren(t *testing.T) {
	a := mustArena(t, 8)
	i, _ := a.Plant(Vec3{}, 1)
	l := mustAllocate(t, a)
	r := mustAllocate(t, a)
	a.Set(l, aliveNode(1))
	a.Set(r, aliveNode(1))
	a.AttachLeft(i, l)
	a.AttachRight(i, r)

	rot := RotationZ(0.7)
	n := a.Get(i)
	n.Transform = rot
	a.Set(i, n)

	m, err := a.SplitSegment(0.5, i)
	if err != nil {
		t.Fatalf("SplitSegment: %v", err)
	}
	upper := a.Get(m)
	if upper.Left != l || upper.Right != r {
		t.Errorf("upper links = %d/%d, want %d/%d", upper.Left, upper.Right, l, r)
	}
	if a.Get(l).Parent != m || a.Get(r).Parent != m {
		t.Error("transplanted children should point at the new node")
	}
	if a.Get(i).Transform != rot {
		t.Error("lower node should keep its transform")
	}
	if err := a.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants: %v", err)
	}
}

func TestSplitSegmentConservesLength(t *testing.T) {
	for _, f := range []float64{0.001, 0.1, 0.5, 0.73, 0.999} {
		a := mustArena(t, 2)
		i, _ := a.Plant(Vec3{}, 3.3)
		m, err := a.SplitSegment(f, i)
		if err != nil {
			t.Fatalf("f=%v: SplitSegment: %v", f, err)
		}
		sum := a.Get(i).Length + a.Get(m).Length
		if math.Abs(sum-3.3) > 1e-12 {
			t.Errorf("f=%v: lengths sum to %v, want 3.3", f, sum)
		}
	}
}

func TestSplitSegmentFull(t *testing.T) {
	a := mustArena(t, 1)
	i, _ := a.Plant(Vec3{}, 1)
	before := a.Get(i)

	m, err := a.SplitSegment(0.5, i)
	if !errors.Is(err, ErrArenaFull) {
		t.Fatalf("err = %v, want ErrArenaFull", err)
	}
	if m != NoIndex {
		t.Errorf("index = %d, want NoIndex", m)
	}
	if a.Get(i) != before {
		t.Error("node changed by a failed split")
	}
}

func TestSplitSegmentFractionPanics(t *testing.T) {
	for _, f := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		a := mustArena(t, 2)
		i, _ := a.Plant(Vec3{}, 1)
		expectPanic(t, "split fraction", func() { a.SplitSegment(f, i) })
		if a.Len() != 1 {
			t.Errorf("f=%v: Len = %d after panic, want 1", f, a.Len())
		}
	}
}

// --- Branch ---

func TestBranchScenario(t *testing.T) {
	a := mustArena(t, 4)
	root, _ := a.Plant(Vec3{}, 1)
	leaf := mustAllocate(t, a)
	ln := aliveNode(0.1)
	ln.Transform = RotationZ(0.3)
	a.Set(leaf, ln)

	m, err := a.Branch(root, 0.5, leaf)
	if err != nil {
		t.Fatalf("Branch: %v", err)
	}
	rn := a.Get(root)
	if rn.Left != m || rn.Right != leaf {
		t.Errorf("root links = %d/%d, want %d/%d", rn.Left, rn.Right, m, leaf)
	}
	if a.Get(leaf).Parent != root {
		t.Errorf("leaf Parent = %d, want %d", a.Get(leaf).Parent, root)
	}
	assertNear(t, "root length", rn.Length, 0.5)
	assertNear(t, "continuation length", a.Get(m).Length, 0.5)
	if a.Len() != 3 {
		t.Errorf("Len = %d, want 3", a.Len())
	}
	if err := a.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants: %v", err)
	}
}

func TestBranchEmitsEvents(t *testing.T) {
	a := mustArena(t, 4)
	sink := &recordingSink{}
	a.SetEventSink(sink)
	root, _ := a.Plant(Vec3{}, 1)
	leaf := mustAllocate(t, a)
	a.Set(leaf, aliveNode(0.1))

	m, err := a.Branch(root, 0.5, leaf)
	if err != nil {
		t.Fatalf("Branch: %v", err)
	}
	want := []GrowthEvent{
		{Type: EventSplit, Node: root, Child: m},
		{Type: EventBranch, Node: root, Child: leaf},
	}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %v, want %v", sink.events, want)
	}
	for i := range want {
		if sink.events[i] != want[i] {
			t.Errorf("event[%d] = %+v, want %+v", i, sink.events[i], want[i])
		}
	}
}

func TestBranchFullLeavesParentUntouched(t *testing.T) {
	a := mustArena(t, 2)
	root, _ := a.Plant(Vec3{}, 1)
	leaf := mustAllocate(t, a)
	a.Set(leaf, aliveNode(0.1))
	before := a.Get(root)

	if _, err := a.Branch(root, 0.5, leaf); !errors.Is(err, ErrArenaFull) {
		t.Fatalf("err = %v, want ErrArenaFull", err)
	}
	if a.Get(root) != before {
		t.Error("root changed by a failed branch")
	}
	if a.Get(leaf).Parent != NoIndex {
		t.Error("leaf should stay detached")
	}
}

// --- Queries ---

func TestDepthAndRoots(t *testing.T) {
	a := mustArena(t, 8)
	r0, _ := a.Plant(Vec3{}, 1)
	r1, _ := a.Plant(Vec3{X: 1}, 1)
	m, _ := a.SplitSegment(0.5, r0)
	m2, _ := a.SplitSegment(0.5, m)

	if d := a.Depth(r0); d != 0 {
		t.Errorf("Depth(root) = %d, want 0", d)
	}
	if d := a.Depth(m2); d != 2 {
		t.Errorf("Depth(m2) = %d, want 2", d)
	}

	roots := a.Roots(nil)
	if len(roots) != 2 || roots[0] != r0 || roots[1] != r1 {
		t.Errorf("Roots = %v, want [%d %d]", roots, r0, r1)
	}
}

func TestDepthCyclePanics(t *testing.T) {
	a := mustArena(t, 2)
	x := mustAllocate(t, a)
	y := mustAllocate(t, a)
	a.Set(x, aliveNode(1))
	a.Set(y, aliveNode(1))
	a.AttachLeft(x, y)
	a.AttachLeft(y, x)
	expectPanic(t, "cycle", func() { a.Depth(x) })
}
