package sprout

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// SimConfig configures a Simulation.
type SimConfig struct {
	// Capacity is the fixed number of node slots.
	Capacity int
	// Seed initializes the growth random source. Equal seeds grow equal plants.
	Seed uint64
	// Growth is the per-tick growth policy.
	Growth GrowthConfig
	// Settings is the initial environment snapshot.
	Settings Settings
	// SeedLength is the length of the initial root. Zero plants nothing.
	SeedLength float64
}

// DefaultSimConfig returns a 10000-node simulation seeded with a single
// 0.4-long shoot at the origin.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Capacity:   10000,
		Growth:     DefaultGrowthConfig(),
		Settings:   DefaultSettings(),
		SeedLength: 0.4,
	}
}

// Simulation owns a node arena together with everything a growth tick
// needs: random source, growth policy, environment and archetypes.
type Simulation struct {
	arena      *Arena
	rng        *rand.Rand
	seed       uint64
	growth     GrowthConfig
	settings   Settings
	archetypes ArchetypeTable

	segments  []Segment
	lastStats GrowthStats
	debug     bool
}

// NewSimulation creates a simulation from cfg and plants its initial shoot.
func NewSimulation(cfg SimConfig) (*Simulation, error) {
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Growth.Validate(); err != nil {
		return nil, err
	}
	arena, err := NewArena(cfg.Capacity)
	if err != nil {
		return nil, err
	}
	s := &Simulation{
		arena:    arena,
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		seed:     cfg.Seed,
		growth:   cfg.Growth,
		settings: cfg.Settings,
	}
	if cfg.SeedLength > 0 {
		if _, err := arena.Plant(Vec3{}, cfg.SeedLength); err != nil {
			return nil, fmt.Errorf("plant seed: %w", err)
		}
	}
	return s, nil
}

// Arena returns the simulation's node arena.
func (s *Simulation) Arena() *Arena {
	return s.arena
}

// Seed returns the seed the random source was created with.
func (s *Simulation) Seed() uint64 {
	return s.seed
}

// Archetypes returns the simulation's archetype table.
func (s *Simulation) Archetypes() *ArchetypeTable {
	return &s.archetypes
}

// Growth returns a pointer to the growth policy for live tuning. The next
// Step panics if the tuned policy no longer passes Validate.
func (s *Simulation) Growth() *GrowthConfig {
	return &s.growth
}

// Settings returns the current environment snapshot.
func (s *Simulation) Settings() Settings {
	return s.settings
}

// SetSettings replaces the environment snapshot used from the next tick on.
func (s *Simulation) SetSettings(settings Settings) {
	s.settings = settings
}

// SetEventSink forwards growth events to sink.
func (s *Simulation) SetEventSink(sink EventSink) {
	s.arena.SetEventSink(sink)
}

// Tick returns the number of completed growth ticks.
func (s *Simulation) Tick() uint64 {
	return s.arena.Tick()
}

// LastStats returns the stats of the most recent Step.
func (s *Simulation) LastStats() GrowthStats {
	return s.lastStats
}

// Step advances growth by one tick.
func (s *Simulation) Step() GrowthStats {
	if !s.debug {
		s.lastStats = s.arena.Advance(s.rng, s.growth, s.settings)
		return s.lastStats
	}

	var stats debugStats
	t0 := time.Now()
	s.lastStats = s.arena.Advance(s.rng, s.growth, s.settings)
	stats.advanceTime = time.Since(t0)
	debugCheckArena(s.arena, "advance")
	debugCheckTreeDepth(s.arena)

	t0 = time.Now()
	stats.segmentCount = len(s.Segments())
	stats.extractTime = time.Since(t0)
	stats.nodeCount = s.arena.Len()
	stats.growth = s.lastStats
	s.debugLog(stats)
	return s.lastStats
}

// Segments extracts the current geometry. The returned slice is reused by
// the next call and MUST NOT be retained.
func (s *Simulation) Segments() []Segment {
	s.segments = s.arena.AppendGeometry(s.segments[:0])
	return s.segments
}

// SetDebugMode enables or disables debug mode. When enabled, the arena's
// invariants are checked after every tick (panicking on violation), deep
// trees are reported, and per-tick timing stats are logged to stderr.
func (s *Simulation) SetDebugMode(enabled bool) {
	s.debug = enabled
}
