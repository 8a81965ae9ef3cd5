// Package viewport holds the interactive view state of a rendered map: the
// pan/zoom transform applied to the content layer, the reset animation and
// the declarative axis visibility flag.
//
// Nothing here triggers layout. Gestures only change the transform, and the
// axis flag is read by the serializer on every render.
package viewport

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/qualmap/pkg/render/geom"
)

// Interaction constants.
const (
	MinScale      = 0.2
	MaxScale      = 8.0
	WheelRate     = 0.002
	ResetDuration = 500 * time.Millisecond
)

// Transform is a uniform scale followed by a translation:
// screen = content·K + (X, Y).
type Transform struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	K float64 `json:"k" msgpack:"k"`
}

// Identity is the transform that leaves content in place.
var Identity = Transform{K: 1}

// IsIdentity reports whether t leaves content in place.
func (t Transform) IsIdentity() bool { return t == Identity }

// Apply maps a content point to the screen.
func (t Transform) Apply(p geom.Point) geom.Point {
	return geom.Pt(p.X*t.K+t.X, p.Y*t.K+t.Y)
}

// Invert maps a screen point back to content coordinates.
func (t Transform) Invert(p geom.Point) geom.Point {
	return geom.Pt((p.X-t.X)/t.K, (p.Y-t.Y)/t.K)
}

// SVG returns the value of an SVG transform attribute.
func (t Transform) SVG() string {
	return fmt.Sprintf("translate(%.2f,%.2f) scale(%.4f)", t.X, t.Y, t.K)
}

func clampScale(k float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, k))
}

type animation struct {
	from, to Transform
	start    time.Time
}

// Controller owns the transform of one canvas. It is not safe for
// concurrent use; callers serialize access.
type Controller struct {
	t    Transform
	anim *animation
	axes bool
}

// New returns a controller at the identity transform with axes shown.
func New() *Controller {
	return &Controller{t: Identity, axes: true}
}

// Transform returns the current transform.
func (c *Controller) Transform() Transform { return c.t }

// Set replaces the transform, clamping its scale. Any running animation is
// cancelled.
func (c *Controller) Set(t Transform) {
	c.anim = nil
	if t.K == 0 {
		t.K = 1
	}
	t.K = clampScale(t.K)
	c.t = t
}

// Snapshot is an opaque copy of the transform and any running reset
// animation.
type Snapshot struct {
	t     Transform
	anim  *animation
	taken bool
}

// Snapshot captures the transform together with the running reset animation.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{t: c.t, anim: c.anim, taken: true}
}

// Restore puts back a snapshot taken by [Controller.Snapshot]. A restored
// animation keeps its original start time. Animations are never mutated in
// place.
func (c *Controller) Restore(s Snapshot) {
	c.t = s.t
	c.anim = s.anim
}

// Taken reports whether s came from [Controller.Snapshot].
func (s Snapshot) Taken() bool { return s.taken }

// Drag pans by a screen-space delta.
func (c *Controller) Drag(dx, dy float64) {
	c.anim = nil
	c.t.X += dx
	c.t.Y += dy
}

// Wheel zooms by 2^(-deltaY·WheelRate) keeping the screen point (cx, cy)
// fixed, like a mouse wheel over the canvas.
func (c *Controller) Wheel(deltaY, cx, cy float64) {
	c.ZoomBy(math.Pow(2, -deltaY*WheelRate), cx, cy)
}

// ZoomBy multiplies the scale by k around the screen point (cx, cy). The
// resulting scale is clamped to [MinScale, MaxScale].
func (c *Controller) ZoomBy(k, cx, cy float64) {
	c.anim = nil
	if k <= 0 || math.IsNaN(k) || math.IsInf(k, 0) {
		return
	}
	nk := clampScale(c.t.K * k)
	p := c.t.Invert(geom.Pt(cx, cy))
	c.t = Transform{X: cx - p.X*nk, Y: cy - p.Y*nk, K: nk}
}

// Reset starts an animated return to the identity transform.
func (c *Controller) Reset(now time.Time) {
	if c.t.IsIdentity() {
		c.anim = nil
		return
	}
	c.anim = &animation{from: c.t, to: Identity, start: now}
}

// Animating reports whether a reset animation is in progress.
func (c *Controller) Animating() bool { return c.anim != nil }

// Advance steps the reset animation to now and reports whether it is still
// running.
func (c *Controller) Advance(now time.Time) bool {
	if c.anim == nil {
		return false
	}
	p := float64(now.Sub(c.anim.start)) / float64(ResetDuration)
	if p >= 1 {
		c.t = c.anim.to
		c.anim = nil
		return false
	}
	e := EaseCubicInOut(math.Max(p, 0))
	f, to := c.anim.from, c.anim.to
	c.t = Transform{
		X: f.X + (to.X-f.X)*e,
		Y: f.Y + (to.Y-f.Y)*e,
		K: f.K + (to.K-f.K)*e,
	}
	return true
}

// AxesVisible reports whether the crosshair axes are drawn.
func (c *Controller) AxesVisible() bool { return c.axes }

// SetAxesVisible sets the axis flag.
func (c *Controller) SetAxesVisible(v bool) { c.axes = v }

// ToggleAxes flips the axis flag and returns the new value.
func (c *Controller) ToggleAxes() bool {
	c.axes = !c.axes
	return c.axes
}

// EaseCubicInOut is the symmetric cubic easing curve on [0, 1].
func EaseCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
