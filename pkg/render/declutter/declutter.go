// Package declutter places entity and relation labels so that they do not
// overlap, using a one-shot force simulation.
//
// Every label is a particle pulled toward its anchor (strongly for entity
// names, weakly for relation captions) and pushed away from every other
// particle whose circular footprint it overlaps. The simulation runs a fixed
// number of steps and then freezes; there is no animation and no
// intermediate output.
//
// The integration follows d3-force: alpha decays geometrically from 1 toward
// 0.001 over the step budget, velocities are damped by 0.4 per step, and the
// collision force resolves overlaps with mass proportional to footprint area.
package declutter

import (
	"math"

	"github.com/matzehuels/qualmap/pkg/fonts"
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/marker"
	"github.com/matzehuels/qualmap/pkg/render/route"
)

// Simulation and styling constants.
const (
	DefaultIterations = 300
	EntityPull        = 0.8
	RelationPull      = 0.1
	LabelGap          = 8.0
	FootprintPad      = 2.0
	BoxPad            = 2.0
	BoxOpacity        = 0.75
	TextColor         = "#333"

	alphaMin      = 0.001
	velocityDecay = 0.4
	collideForce  = 1.0
	latinWeight   = 0.6
	wideWeight    = 1.0
	latinLimit    = 0x024F
)

// Kind distinguishes entity names from relation captions.
type Kind string

const (
	KindEntity   Kind = "entity"
	KindRelation Kind = "relation"
)

// Label is one text particle.
type Label struct {
	Kind      Kind       `json:"kind" msgpack:"kind"`
	Text      string     `json:"text" msgpack:"text"`
	Anchor    geom.Point `json:"anchor" msgpack:"anchor"`
	Pos       geom.Point `json:"pos" msgpack:"pos"` // text baseline center
	Pull      float64    `json:"-" msgpack:"pull"`
	Footprint float64    `json:"-" msgpack:"footprint"`
	Box       geom.Rect  `json:"-" msgpack:"box"` // measured background
}

// Footprint estimates the collision radius of text from its characters.
// Runes beyond Latin Extended-B are counted wider, approximating ideographs.
func Footprint(text string, size float64) float64 {
	var w float64
	for _, r := range text {
		if r <= latinLimit {
			w += latinWeight * size
		} else {
			w += wideWeight * size
		}
	}
	return w/2 + FootprintPad
}

// Labels creates one particle per marker and per captioned link, positioned
// at its anchor.
func Labels(markers []marker.Marker, links []route.Link) []Label {
	out := make([]Label, 0, len(markers)+len(links))
	for _, m := range markers {
		anchor := geom.Pt(m.Center.X, m.Center.Y-m.Radius-LabelGap)
		out = append(out, newLabel(KindEntity, m.Name, anchor, EntityPull))
	}
	for _, l := range links {
		if l.Relation.Label == "" {
			continue
		}
		out = append(out, newLabel(KindRelation, l.Relation.Label, l.Anchor, RelationPull))
	}
	return out
}

func newLabel(k Kind, text string, anchor geom.Point, pull float64) Label {
	return Label{
		Kind:      k,
		Text:      text,
		Anchor:    anchor,
		Pos:       anchor,
		Pull:      pull,
		Footprint: Footprint(text, fonts.LabelSize),
	}
}

type particle struct {
	x, y, vx, vy float64
}

// Solve runs the simulation for iterations steps and returns the settled
// labels with their measured background boxes. The input is not modified.
// A non-positive iteration count means DefaultIterations.
func Solve(labels []Label, iterations int) []Label {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	out := make([]Label, len(labels))
	copy(out, labels)

	ps := make([]particle, len(out))
	for i, l := range out {
		ps[i] = particle{x: l.Pos.X, y: l.Pos.Y}
	}

	alpha := 1.0
	alphaDecay := 1 - math.Pow(alphaMin, 1/float64(iterations))
	rng := newLCG()
	for range iterations {
		alpha += -alpha * alphaDecay
		for i := range ps {
			p, l := &ps[i], out[i]
			p.vx += (l.Anchor.X - p.x) * l.Pull * alpha
			p.vy += (l.Anchor.Y - p.y) * l.Pull * alpha
		}
		collide(ps, out, rng)
		for i := range ps {
			p := &ps[i]
			p.vx *= 1 - velocityDecay
			p.vy *= 1 - velocityDecay
			p.x += p.vx
			p.y += p.vy
		}
	}

	for i := range out {
		out[i].Pos = geom.Pt(ps[i].x, ps[i].y)
		out[i].Box = MeasureBox(out[i].Text, out[i].Pos)
	}
	return out
}

// collide applies one pass of pairwise circle separation. Positions are
// predicted with the current velocity, and each pair is pushed apart in
// proportion to the other particle's share of the combined area.
func collide(ps []particle, ls []Label, rng *lcg) {
	for i := range ps {
		a := &ps[i]
		ri := ls[i].Footprint
		ri2 := ri * ri
		xi, yi := a.x+a.vx, a.y+a.vy
		for j := i + 1; j < len(ps); j++ {
			b := &ps[j]
			rj := ls[j].Footprint
			r := ri + rj
			x := xi - (b.x + b.vx)
			y := yi - (b.y + b.vy)
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = rng.jiggle()
				l += x * x
			}
			if y == 0 {
				y = rng.jiggle()
				l += y * y
			}
			d := math.Sqrt(l)
			f := (r - d) / d * collideForce
			x *= f
			y *= f
			share := rj * rj / (ri2 + rj*rj)
			a.vx += x * share
			a.vy += y * share
			b.vx -= x * (1 - share)
			b.vy -= y * (1 - share)
		}
	}
}

// MeasureBox returns the padded background rectangle of text whose baseline
// is centered at pos.
func MeasureBox(text string, pos geom.Point) geom.Rect {
	m := fonts.Measure(text, fonts.LabelSize)
	return geom.RectXYWH(
		pos.X-m.Width/2-BoxPad,
		pos.Y-m.Ascent-BoxPad,
		m.Width+2*BoxPad,
		m.Height()+2*BoxPad,
	)
}

// lcg is the linear congruential generator d3-force uses, so coincident
// particles separate the same way on every run.
type lcg struct{ s uint32 }

func newLCG() *lcg { return &lcg{s: 1} }

func (g *lcg) next() float64 {
	g.s = 1664525*g.s + 1013904223
	return float64(g.s) / 4294967296
}

func (g *lcg) jiggle() float64 { return (g.next() - 0.5) * 1e-6 }
