package sprout

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-tick timing and size metrics.
// Only populated when Simulation.debug is true.
type debugStats struct {
	advanceTime  time.Duration
	extractTime  time.Duration
	nodeCount    int
	segmentCount int
	growth       GrowthStats
}

// debugLog prints timing and size stats to stderr.
func (s *Simulation) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[sprout] tick %d | advance: %v | extract: %v | total: %v\n",
		s.arena.Tick(), stats.advanceTime, stats.extractTime, stats.advanceTime+stats.extractTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[sprout] nodes: %d/%d | segments: %d | branched: %d | skipped: %d\n",
		stats.nodeCount, s.arena.Cap(), stats.segmentCount, stats.growth.Branched, stats.growth.Skipped)
}

// debugCheckArena panics with a descriptive message when the arena violates
// one of its structural invariants.
func debugCheckArena(a *Arena, op string) {
	if err := a.CheckInvariants(); err != nil {
		panic(fmt.Sprintf("sprout debug: after %s: %v", op, err))
	}
}

// debugCheckTreeDepth warns on stderr if any node sits deeper than the threshold.
const debugMaxTreeDepth = 4096

func debugCheckTreeDepth(a *Arena) {
	for i := range a.nodes {
		if !a.live(Index(i)) || !a.nodes[i].IsLeaf() {
			continue
		}
		if d := a.Depth(Index(i)); d > debugMaxTreeDepth {
			_, _ = fmt.Fprintf(os.Stderr, "[sprout] warning: tree depth %d exceeds %d (node %d)\n",
				d, debugMaxTreeDepth, i)
			return
		}
	}
}

// CheckInvariants verifies the arena's structure and returns an error
// describing the first violation found:
//
//   - free and allocated indices partition [0, Cap()) with no overlap;
//   - free slots hold Garbage nodes;
//   - links of live nodes point at allocated nodes;
//   - every child link is mirrored by the child's Parent.
func (a *Arena) CheckInvariants() error {
	if a.freeTop < 0 || a.freeTop > len(a.free) {
		return fmt.Errorf("free cursor %d outside [0, %d]", a.freeTop, len(a.free))
	}
	seen := make([]bool, len(a.nodes))
	for _, i := range a.free[:a.freeTop] {
		if int64(i) >= int64(len(a.nodes)) {
			return fmt.Errorf("free stack holds out-of-range index %d", i)
		}
		if seen[i] {
			return fmt.Errorf("index %d is on the free stack twice", i)
		}
		seen[i] = true
		if a.inUse[i] {
			return fmt.Errorf("index %d is both free and allocated", i)
		}
		if a.nodes[i].Status != StatusGarbage {
			return fmt.Errorf("free index %d has status %v", i, a.nodes[i].Status)
		}
	}
	allocated := 0
	for i := range a.nodes {
		if a.inUse[i] {
			allocated++
		} else if !seen[i] {
			return fmt.Errorf("index %d is neither free nor allocated", i)
		}
	}
	if allocated != a.Len() {
		return fmt.Errorf("allocated count %d, want %d", allocated, a.Len())
	}

	for i := range a.nodes {
		n := &a.nodes[i]
		if !a.inUse[i] || n.Status == StatusGarbage {
			continue
		}
		for _, link := range [...]struct {
			name  string
			child Index
		}{{"left", n.Left}, {"right", n.Right}} {
			if link.child == NoIndex {
				continue
			}
			if !a.IsAllocated(link.child) {
				return fmt.Errorf("node %d %s link %d is not allocated", i, link.name, link.child)
			}
			if got := a.nodes[link.child].Parent; got != Index(i) {
				return fmt.Errorf("node %d %s child %d has parent %d", i, link.name, link.child, got)
			}
		}
		if n.Parent != NoIndex && !a.IsAllocated(n.Parent) {
			return fmt.Errorf("node %d parent link %d is not allocated", i, n.Parent)
		}
	}
	return nil
}
