// Package canvas holds the live, mutable state of one displayed map: the
// current scene, its viewport controller, the legend placement, the
// document frame and the pixel size.
//
// A Canvas is not safe for concurrent use. The HTTP server guards it with a
// mutex and the terminal viewer owns it from its update loop.
package canvas

import (
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/legend"
	"github.com/matzehuels/qualmap/pkg/render/scene"
	"github.com/matzehuels/qualmap/pkg/render/viewport"
)

// Canvas is the interactive surface a scene is drawn on.
type Canvas struct {
	scene         *scene.Scene
	view          *viewport.Controller
	legendPos     geom.Point
	legendVisible bool
	viewBox       geom.Rect
	width, height float64
}

// New creates a canvas showing sc at its natural frame.
func New(sc *scene.Scene) *Canvas {
	c := &Canvas{view: viewport.New()}
	c.Replace(sc)
	return c
}

// Replace swaps in a freshly built scene. The transform returns to identity
// and the frame, pixel size and legend placement follow the new scene. Axis
// visibility is kept.
func (c *Canvas) Replace(sc *scene.Scene) {
	c.scene = sc
	c.view.Set(viewport.Identity)
	c.legendPos = legend.Origin(sc.Frame)
	c.legendVisible = true
	c.viewBox = geom.RectXYWH(0, 0, sc.Frame.Width, sc.Frame.Height)
	c.width, c.height = sc.Frame.Width, sc.Frame.Height
}

func (c *Canvas) Scene() *scene.Scene            { return c.scene }
func (c *Canvas) Viewport() *viewport.Controller { return c.view }
func (c *Canvas) Transform() viewport.Transform  { return c.view.Transform() }
func (c *Canvas) AxesVisible() bool              { return c.view.AxesVisible() }
func (c *Canvas) LegendPos() geom.Point          { return c.legendPos }
func (c *Canvas) LegendVisible() bool            { return c.legendVisible }
func (c *Canvas) ViewBox() geom.Rect             { return c.viewBox }

// PixelSize returns the rendered width and height attributes.
func (c *Canvas) PixelSize() (float64, float64) { return c.width, c.height }

func (c *Canvas) SetTransform(t viewport.Transform) { c.view.Set(t) }
func (c *Canvas) SetLegendPos(p geom.Point)         { c.legendPos = p }
func (c *Canvas) SetLegendVisible(v bool)           { c.legendVisible = v }
func (c *Canvas) SetViewBox(r geom.Rect)            { c.viewBox = r }
func (c *Canvas) SetPixelSize(w, h float64)         { c.width, c.height = w, h }

// ContentBounds measures the content layer under the current transform,
// ignoring the legend.
func (c *Canvas) ContentBounds() geom.Rect {
	b := c.scene.ContentBounds(c.AxesVisible())
	if b.Empty() {
		return b
	}
	t := c.Transform()
	return geom.RectFromPoints(t.Apply(geom.Pt(b.MinX, b.MinY)), t.Apply(geom.Pt(b.MaxX, b.MaxY)))
}

// LegendBounds measures the legend at its current position. It is empty
// when the legend is hidden or has no entries.
func (c *Canvas) LegendBounds() geom.Rect {
	if !c.legendVisible {
		return geom.Rect{}
	}
	return c.scene.Legend.Bounds(c.legendPos)
}

// State is a snapshot of every attribute an export may touch.
type State struct {
	Transform     viewport.Transform `json:"transform"`
	LegendPos     geom.Point         `json:"legend_pos"`
	LegendVisible bool               `json:"legend_visible"`
	ViewBox       geom.Rect          `json:"view_box"`
	Width         float64            `json:"width"`
	Height        float64            `json:"height"`
	Axes          bool               `json:"axes"`
	Animating     bool               `json:"animating"`

	view viewport.Snapshot
}

// State captures the current state.
func (c *Canvas) State() State {
	return State{
		Transform:     c.Transform(),
		LegendPos:     c.legendPos,
		LegendVisible: c.legendVisible,
		ViewBox:       c.viewBox,
		Width:         c.width,
		Height:        c.height,
		Axes:          c.AxesVisible(),
		Animating:     c.view.Animating(),
		view:          c.view.Snapshot(),
	}
}

// Restore puts back a state captured by [Canvas.State], including a reset
// animation in progress at capture time. A State built by hand restores its
// Transform only.
func (c *Canvas) Restore(s State) {
	if s.view.Taken() {
		c.view.Restore(s.view)
	} else {
		c.view.Set(s.Transform)
	}
	c.view.SetAxesVisible(s.Axes)
	c.legendPos = s.LegendPos
	c.legendVisible = s.LegendVisible
	c.viewBox = s.ViewBox
	c.width, c.height = s.Width, s.Height
}
