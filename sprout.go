package sprout

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Index addresses a node slot in an Arena. NoIndex means "no such node".
type Index uint32

// NoIndex is the reserved sentinel index. It is never a valid allocated index,
// which bounds an arena's capacity to NoIndex-1 slots.
const NoIndex Index = math.MaxUint32

// Vec3 is a 3D vector used for positions and directions. +Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// UnitY is the growth axis. A node of length L extends L along its local +Y.
var UnitY = Vec3{0, 1, 0}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Segment endpoint colors. Segments fade from green at the base to black at the tip.
var (
	SegmentStartColor = Color{0, 1, 0, 1}
	SegmentEndColor   = Color{0, 0, 0, 1}
)

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Segment is one renderable line, from a node's start point to its end point.
type Segment struct {
	Start, End           Vec3
	StartColor, EndColor Color
}
