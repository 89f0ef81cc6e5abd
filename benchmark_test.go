package sprout

import "testing"

// setupBenchArena grows a plant until roughly n nodes are allocated.
func setupBenchArena(b *testing.B, n int) *Arena {
	b.Helper()
	a := mustArena(b, n)
	a.Plant(Vec3{}, 0.4)
	cfg := DefaultGrowthConfig()
	cfg.BranchChance = 0.05
	rng := testRNG(1)
	for a.Len() < n*9/10 {
		a.Advance(rng, cfg, DefaultSettings())
	}
	return a
}

// --- Growth ---

func BenchmarkAdvance_10000Nodes(b *testing.B) {
	a := setupBenchArena(b, 10000)
	cfg := DefaultGrowthConfig()
	rng := testRNG(2)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.Advance(rng, cfg, DefaultSettings())
	}
}

// --- Geometry ---

func BenchmarkAppendGeometry_10000Nodes(b *testing.B) {
	a := setupBenchArena(b, 10000)
	segs := a.AppendGeometry(nil)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		segs = a.AppendGeometry(segs[:0])
	}
}

func BenchmarkAppendLineQuads_10000Nodes(b *testing.B) {
	a := setupBenchArena(b, 10000)
	segs := a.Geometry()
	cam := NewCamera()
	verts, inds := appendLineQuads(nil, nil, segs, cam, 1280, 720, 2)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		verts, inds = appendLineQuads(verts[:0], inds[:0], segs, cam, 1280, 720, 2)
	}
}
