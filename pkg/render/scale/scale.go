// Package scale derives the visual mappings of a qualitative map from its
// data: position, marker radius, relation stroke width and group color.
//
// Every mapping tolerates a degenerate domain (all inputs equal, or no inputs
// at all) by mapping to the midpoint of its output range.
package scale

import (
	"math"

	"github.com/matzehuels/qualmap/pkg/dataset"
)

// Layout constants shared by the renderer.
const (
	Margin    = 40.0
	MinRadius = 6.0
	MaxRadius = 30.0
	MinStroke = 1.0
	MaxStroke = 5.0
	niceTicks = 10
)

// Palette is the categorical color cycle assigned to groups.
var Palette = []string{
	"#4E79A7", "#F28E2B", "#E15759", "#76B7B2", "#59A14F",
	"#EDC948", "#B07AA1", "#FF9DA7", "#9C755F", "#BAB0AC",
}

// Frame is the pixel size of the drawing surface.
type Frame struct {
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
}

// Linear maps a domain interval onto a range interval.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// Map applies the scale. A zero-width domain maps to the range midpoint.
func (s Linear) Map(v float64) float64 {
	if s.Degenerate() {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Degenerate reports whether the domain has zero width.
func (s Linear) Degenerate() bool { return s.D0 == s.D1 }

// Nice extends the domain to round values the way d3's linear.nice does.
func (s Linear) Nice(count int) Linear {
	if s.Degenerate() {
		return s
	}
	s.D0, s.D1 = niceDomain(s.D0, s.D1, count)
	return s
}

// Radius maps entity size to marker radius with a square-root encoding, so
// marker area is proportional to size.
type Radius struct {
	MinSize, MaxSize float64
	MinR, MaxR       float64
}

// Map returns the radius for size.
func (s Radius) Map(size float64) float64 {
	if s.MinSize == s.MaxSize || s.MaxSize <= 0 {
		return (s.MinR + s.MaxR) / 2
	}
	r := s.MaxR * math.Sqrt(math.Max(size, 0)/s.MaxSize)
	return math.Max(r, s.MinR)
}

// Colors assigns palette colors to groups in first-seen order.
type Colors struct {
	Order []string
	index map[string]int
}

// NewColors builds a color mapping over groups, which must be distinct.
func NewColors(groups []string) Colors {
	c := Colors{Order: groups, index: make(map[string]int, len(groups))}
	for i, g := range groups {
		c.index[g] = i
	}
	return c
}

// Of returns the color of group. Unknown groups get the first color.
func (c Colors) Of(group string) string {
	return Palette[c.index[group]%len(Palette)]
}

// Scales holds every mapping for one render.
type Scales struct {
	Frame  Frame
	X, Y   Linear
	Radius Radius
	Stroke Linear
	Colors Colors
}

// Build derives all scales from ds for a drawing surface of size f.
func Build(ds *dataset.Dataset, f Frame) Scales {
	xs, ys, sizes := []float64{ds.Axis.XCenter}, []float64{ds.Axis.YCenter}, []float64(nil)
	for _, e := range ds.Entities {
		xs = append(xs, e.X)
		ys = append(ys, e.Y)
		sizes = append(sizes, e.Size)
	}
	var strengths []float64
	for _, r := range ds.Relations {
		strengths = append(strengths, r.Strength)
	}

	x0, x1 := extent(xs)
	y0, y1 := extent(ys)
	s0, s1 := extent(sizes)
	w0, w1 := extent(strengths)

	return Scales{
		Frame:  f,
		X:      Linear{D0: x0, D1: x1, R0: Margin, R1: f.Width - Margin}.Nice(niceTicks),
		Y:      Linear{D0: y0, D1: y1, R0: f.Height - Margin, R1: Margin}.Nice(niceTicks),
		Radius: Radius{MinSize: s0, MaxSize: s1, MinR: MinRadius, MaxR: MaxRadius},
		Stroke: Linear{D0: w0, D1: w1, R0: MinStroke, R1: MaxStroke},
		Colors: NewColors(ds.Groups()),
	}
}

// Project maps a data position to screen coordinates.
func (s Scales) Project(x, y float64) (float64, float64) {
	return s.X.Map(x), s.Y.Map(y)
}

func extent(vs []float64) (lo, hi float64) {
	if len(vs) == 0 {
		return 0, 0
	}
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
