// Package legend builds the screen-anchored group legend.
package legend

import (
	"math"

	"github.com/matzehuels/qualmap/pkg/fonts"
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/scale"
)

// Geometry constants, in pixels.
const (
	RowHeight    = 22.0
	SwatchRadius = 6.0
	TextOffset   = 14.0
	Baseline     = 4.0
	Padding      = 8.0
	RightInset   = 120.0
	TextColor    = "#555"
	BackingColor = "#fff"
	BackingAlpha = 0.8
)

// Entry is one legend row.
type Entry struct {
	Group string  `json:"group" msgpack:"group"`
	Color string  `json:"color" msgpack:"color"`
	Y     float64 `json:"y" msgpack:"y"` // row offset from the legend origin
}

// Legend lists every group in first-seen order. Entry geometry is relative
// to the legend origin, which is placed by its owner.
type Legend struct {
	Entries []Entry   `json:"entries" msgpack:"entries"`
	Local   geom.Rect `json:"-" msgpack:"local"` // backing box in legend coordinates
}

// Build creates the legend for the groups of s.
func Build(s scale.Scales) Legend {
	var l Legend
	var textW float64
	for i, g := range s.Colors.Order {
		l.Entries = append(l.Entries, Entry{Group: g, Color: s.Colors.Of(g), Y: float64(i) * RowHeight})
		textW = math.Max(textW, fonts.Measure(g, fonts.LabelSize).Width)
	}
	if len(l.Entries) == 0 {
		return l
	}
	m := fonts.Measure("", fonts.LabelSize)
	last := l.Entries[len(l.Entries)-1].Y
	l.Local = geom.Rect{
		MinX:     -SwatchRadius,
		MinY:     math.Min(-SwatchRadius, Baseline-m.Ascent),
		MaxX:     TextOffset + textW,
		MaxY:     last + math.Max(SwatchRadius, Baseline+m.Descent),
		NonEmpty: true,
	}.Inset(-Padding)
	return l
}

// Empty reports whether the legend has no entries.
func (l Legend) Empty() bool { return len(l.Entries) == 0 }

// Origin returns the default screen position of the legend in a frame.
func Origin(f scale.Frame) geom.Point {
	return geom.Pt(f.Width-scale.Margin-RightInset, scale.Margin)
}

// Bounds returns the legend's box when its origin is placed at pos.
func (l Legend) Bounds(pos geom.Point) geom.Rect {
	return l.Local.Translate(pos)
}
