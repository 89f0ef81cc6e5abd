package sprout

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidGrowthConfig is returned by GrowthConfig.Validate.
var ErrInvalidGrowthConfig = errors.New("sprout: invalid growth config")

// GrowthConfig controls the per-tick growth policy.
type GrowthConfig struct {
	// GrowthRate multiplies every growing node's length each tick.
	GrowthRate float64
	// BranchChance is the per-node, per-tick probability of sprouting a branch.
	BranchChance float64
	// BranchLength is the initial length of a new branch.
	BranchLength float64
	// BranchAngle is the range of rotations (radians, about Z) given to a new branch.
	BranchAngle Range
	// BranchAt is the fraction along the parent segment where branches attach.
	BranchAt float64
}

// DefaultGrowthConfig returns the standard slow-growth policy.
func DefaultGrowthConfig() GrowthConfig {
	return GrowthConfig{
		GrowthRate:   1.0001,
		BranchChance: 0.0005,
		BranchLength: 0.1,
		BranchAngle:  Range{-0.5, 0.5},
		BranchAt:     0.5,
	}
}

// Validate reports the first field that would make a growth tick misbehave.
func (c GrowthConfig) Validate() error {
	switch {
	case !(c.GrowthRate > 0) || math.IsInf(c.GrowthRate, 0):
		return fmt.Errorf("%w: growth rate %v", ErrInvalidGrowthConfig, c.GrowthRate)
	case !(c.BranchChance >= 0 && c.BranchChance <= 1):
		return fmt.Errorf("%w: branch chance %v not in [0, 1]", ErrInvalidGrowthConfig, c.BranchChance)
	case !(c.BranchLength >= 0):
		return fmt.Errorf("%w: branch length %v", ErrInvalidGrowthConfig, c.BranchLength)
	case !(c.BranchAngle.Min <= c.BranchAngle.Max):
		return fmt.Errorf("%w: branch angle range [%v, %v]", ErrInvalidGrowthConfig, c.BranchAngle.Min, c.BranchAngle.Max)
	case !(c.BranchAt > 0 && c.BranchAt < 1):
		return fmt.Errorf("%w: branch point %v not in (0, 1)", ErrInvalidGrowthConfig, c.BranchAt)
	}
	return nil
}

// GrowthStats summarizes one Advance pass.
type GrowthStats struct {
	Visited  int // nodes grown this tick
	Branched int // branches inserted
	Skipped  int // branch attempts dropped because the arena was full
}

// EventType identifies a kind of growth event.
type EventType uint8

const (
	EventSplit         EventType = iota // a segment was divided; Child is the continuation node
	EventBranch                         // Child was attached as a lateral branch of Node
	EventBranchSkipped                  // Node would have branched but the arena was full
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventSplit:
		return "split"
	case EventBranch:
		return "branch"
	case EventBranchSkipped:
		return "branch-skipped"
	default:
		return "unknown"
	}
}

// GrowthEvent describes a structural change made to the arena.
type GrowthEvent struct {
	Type  EventType
	Tick  uint64
	Node  Index
	Child Index
}

// EventSink is the interface for optional growth event forwarding
// (for example into an ECS world).
type EventSink interface {
	EmitEvent(event GrowthEvent)
}

// Advance runs one growth tick over every node that is allocated and growing
// when the call starts. Lengths grow by cfg.GrowthRate and, with probability
// cfg.BranchChance, a node sprouts a new branch at cfg.BranchAt along its
// segment. Nodes created during the pass are first visited on the next tick.
// A full arena only skips the affected branch; it never aborts the pass.
//
// env is the environment snapshot for this tick. The growth policy does not
// read it yet.
//
// Panics, before touching any node, if cfg does not pass Validate.
func (a *Arena) Advance(rng *rand.Rand, cfg GrowthConfig, env Settings) GrowthStats {
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	var stats GrowthStats

	a.visit = a.visit[:0]
	for i := range a.nodes {
		if a.inUse[i] && a.nodes[i].grows() {
			a.visit = append(a.visit, Index(i))
		}
	}

	for _, i := range a.visit {
		n := &a.nodes[i]
		n.Length *= cfg.GrowthRate
		if n.Status == StatusAlive {
			n.Age++
		}
		stats.Visited++

		if rng.Float64() >= cfg.BranchChance {
			continue
		}
		switch err := a.sprout(rng, cfg, i); {
		case err == nil:
			stats.Branched++
		case errors.Is(err, ErrArenaFull):
			stats.Skipped++
			a.emit(GrowthEvent{Type: EventBranchSkipped, Tick: a.tick, Node: i, Child: NoIndex})
		default:
			panic(err)
		}
	}

	a.tick++
	return stats
}

// sprout allocates a fresh leaf and inserts it as a branch of i.
// On failure the arena is left as it was.
func (a *Arena) sprout(rng *rand.Rand, cfg GrowthConfig, i Index) error {
	leaf, err := a.Allocate()
	if err != nil {
		return err
	}
	n := NewNode()
	n.Status = StatusAlive
	n.Visible = true
	n.Length = cfg.BranchLength
	n.Transform = RotationZ(cfg.BranchAngle.Random(rng))
	a.nodes[leaf] = n

	if _, err := a.Branch(i, cfg.BranchAt, leaf); err != nil {
		a.Free(leaf)
		return err
	}
	return nil
}
