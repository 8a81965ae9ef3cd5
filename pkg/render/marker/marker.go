// Package marker builds entity markers: a disk for single-group entities or
// a pie of equal wedges for entities in several groups, always topped by a
// white outline ring.
package marker

import (
	"fmt"
	"math"

	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/scale"
)

// Styling constants.
const (
	FillOpacity  = 0.85
	OutlineColor = "#fff"
	OutlineWidth = 1.5
)

// Wedge is one colored sector of a multi-group marker. Angles are in radians,
// measured clockwise from 12 o'clock.
type Wedge struct {
	Group string  `json:"group" msgpack:"group"`
	Color string  `json:"color" msgpack:"color"`
	Start float64 `json:"start" msgpack:"start"`
	End   float64 `json:"end" msgpack:"end"`
	Path  string  `json:"path" msgpack:"path"`
}

// Marker is the rendered glyph of one entity.
type Marker struct {
	Name   string     `json:"name" msgpack:"name"`
	Center geom.Point `json:"center" msgpack:"center"`
	Radius float64    `json:"radius" msgpack:"radius"`
	Color  string     `json:"color,omitempty" msgpack:"color,omitempty"` // single-group fill
	Wedges []Wedge    `json:"wedges,omitempty" msgpack:"wedges,omitempty"`
}

// Pie reports whether the marker is drawn as wedges.
func (m Marker) Pie() bool { return len(m.Wedges) > 0 }

// Bounds returns the marker's bounding box including the outline stroke.
func (m Marker) Bounds() geom.Rect {
	r := m.Radius + OutlineWidth/2
	return geom.RectXYWH(m.Center.X-r, m.Center.Y-r, 2*r, 2*r)
}

// Build returns one marker per entity in input order.
func Build(ds *dataset.Dataset, s scale.Scales) []Marker {
	out := make([]Marker, 0, len(ds.Entities))
	for _, e := range ds.Entities {
		x, y := s.Project(e.X, e.Y)
		m := Marker{
			Name:   e.Name,
			Center: geom.Pt(x, y),
			Radius: s.Radius.Map(e.Size),
		}
		if e.MultiGroup() {
			m.Wedges = wedges(m.Center, m.Radius, e.Groups, s.Colors)
		} else {
			m.Color = s.Colors.Of(e.Groups[0])
		}
		out = append(out, m)
	}
	return out
}

func wedges(c geom.Point, r float64, groups []string, colors scale.Colors) []Wedge {
	step := 2 * math.Pi / float64(len(groups))
	out := make([]Wedge, len(groups))
	for i, g := range groups {
		start, end := float64(i)*step, float64(i+1)*step
		out[i] = Wedge{
			Group: g,
			Color: colors.Of(g),
			Start: start,
			End:   end,
			Path:  sectorPath(c, r, start, end),
		}
	}
	return out
}

// PointAt returns the point on the circle at angle a, clockwise from 12 o'clock.
func PointAt(c geom.Point, r, a float64) geom.Point {
	return geom.Pt(c.X+r*math.Sin(a), c.Y-r*math.Cos(a))
}

func sectorPath(c geom.Point, r, start, end float64) string {
	p0, p1 := PointAt(c, r, start), PointAt(c, r, end)
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 1 %.2f,%.2f Z",
		c.X, c.Y, p0.X, p0.Y, r, r, large, p1.X, p1.Y)
}
