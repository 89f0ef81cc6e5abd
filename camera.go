package sprout

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const maxPitch = math.Pi/2 - 0.01

// cameraAnim animates up to 4 camera fields at once. Values are written back
// every update; the animation is dropped once every tween has finished.
type cameraAnim struct {
	tweens [4]*gween.Tween
	fields [4]*float64
	count  int
}

func (g *cameraAnim) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// update advances all tweens by dt seconds and reports whether all are done.
func (g *cameraAnim) update(dt float32) bool {
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	return allDone
}

// Camera is a perspective orbit camera looking at Target from Distance away.
// Yaw turns around the world +Y axis, Pitch tilts up and down.
type Camera struct {
	Target   Vec3
	Yaw      float64 // radians
	Pitch    float64 // radians, clamped to just under ±π/2
	Distance float64
	// FovY is the vertical field of view in radians.
	FovY float64
	// Near and Far bound the visible depth range.
	Near, Far float64

	anim *cameraAnim
}

// NewCamera returns a camera two units in front of the origin with a 90° field of view.
func NewCamera() *Camera {
	return &Camera{
		Target:   Vec3{0, 0.5, 0},
		Distance: 2,
		FovY:     math.Pi / 2,
		Near:     0.1,
		Far:      100,
	}
}

// Orbit turns the camera around its target.
func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dpitch))
}

// Dolly multiplies the distance to the target by factor, staying inside [Near, Far).
func (c *Camera) Dolly(factor float64) {
	c.Distance = math.Max(c.Near*2, math.Min(c.Far/2, c.Distance*factor))
}

// Pan moves the target by delta expressed in camera space (X right, Y up, Z toward the viewer).
func (c *Camera) Pan(delta Vec3) {
	c.Target = c.Target.Add(c.orientation().TransformVector(delta))
}

// OrbitTo animates yaw and pitch to the given angles over duration seconds.
func (c *Camera) OrbitTo(yaw, pitch float64, duration float32, fn ease.TweenFunc) {
	pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch))
	g := &cameraAnim{}
	g.add(&c.Yaw, yaw, duration, fn)
	g.add(&c.Pitch, pitch, duration, fn)
	c.anim = g
}

// FrameTo animates the camera so that all segments fit in view.
// No-op for an empty slice.
func (c *Camera) FrameTo(segs []Segment, duration float32, fn ease.TweenFunc) {
	lo, hi, ok := segmentBounds(segs)
	if !ok {
		return
	}
	center := lo.Add(hi).Scale(0.5)
	radius := hi.Sub(lo).Len() / 2
	dist := radius/math.Tan(c.FovY/2) + radius
	dist = math.Max(c.Near*2, math.Min(c.Far/2, dist))

	g := &cameraAnim{}
	g.add(&c.Target.X, center.X, duration, fn)
	g.add(&c.Target.Y, center.Y, duration, fn)
	g.add(&c.Target.Z, center.Z, duration, fn)
	g.add(&c.Distance, dist, duration, fn)
	c.anim = g
}

// IsAnimating reports whether an OrbitTo or FrameTo animation is running.
func (c *Camera) IsAnimating() bool {
	return c.anim != nil
}

// update advances any running animation. Called once per viewer update.
func (c *Camera) update(dt float32) {
	if c.anim != nil && c.anim.update(dt) {
		c.anim = nil
	}
}

// orientation is the camera-to-world rotation.
func (c *Camera) orientation() Mat4 {
	return RotationY(c.Yaw).Mul(RotationX(-c.Pitch))
}

// view is the world-to-camera rotation.
func (c *Camera) view() Mat4 {
	return RotationX(c.Pitch).Mul(RotationY(-c.Yaw))
}

// Project maps a world point to screen coordinates for a w×h viewport with
// Y pointing down. ok is false when the point lies outside [Near, Far].
func (c *Camera) Project(p Vec3, w, h float64) (x, y float64, ok bool) {
	return c.project(c.view(), p, w, h)
}

func (c *Camera) project(view Mat4, p Vec3, w, h float64) (x, y float64, ok bool) {
	v := view.TransformVector(p.Sub(c.Target))
	depth := c.Distance - v.Z
	if depth < c.Near || depth > c.Far {
		return 0, 0, false
	}
	f := (h / 2) / math.Tan(c.FovY/2)
	return w/2 + f*v.X/depth, h/2 - f*v.Y/depth, true
}

// segmentBounds returns the axis-aligned bounds of all segment endpoints.
func segmentBounds(segs []Segment) (lo, hi Vec3, ok bool) {
	if len(segs) == 0 {
		return Vec3{}, Vec3{}, false
	}
	lo, hi = segs[0].Start, segs[0].Start
	for i := range segs {
		for _, p := range [2]Vec3{segs[i].Start, segs[i].End} {
			lo = Vec3{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z)}
			hi = Vec3{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z)}
		}
	}
	return lo, hi, true
}
