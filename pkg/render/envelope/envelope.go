// Package envelope draws a smooth translucent boundary around every group
// with at least three members.
package envelope

import (
	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/scale"
)

// Styling and geometry constants.
const (
	MinMembers    = 3
	Expansion     = 25.0
	FillOpacity   = 0.1
	StrokeOpacity = 0.4
	StrokeWidth   = 1.5
)

// Envelope is the rendered boundary of one group.
type Envelope struct {
	Group   string       `json:"group" msgpack:"group"`
	Color   string       `json:"color" msgpack:"color"`
	Hull    []geom.Point `json:"hull" msgpack:"hull"`         // expanded hull vertices
	Path    string       `json:"path" msgpack:"path"`         // closed spline path data
	Bounds  geom.Rect    `json:"-" msgpack:"bounds"`
	Members int          `json:"members" msgpack:"members"`
}

// Skip records a group that qualified by size but produced no envelope.
type Skip struct {
	Group  string `json:"group" msgpack:"group"`
	Reason string `json:"reason" msgpack:"reason"`
}

// Build returns one envelope per eligible group in first-seen group order,
// plus the groups whose members were collinear or coincident.
func Build(ds *dataset.Dataset, s scale.Scales) ([]Envelope, []Skip) {
	var (
		out   []Envelope
		skips []Skip
	)
	for _, group := range s.Colors.Order {
		members := ds.Members(group)
		if len(members) < MinMembers {
			continue
		}
		pts := make([]geom.Point, len(members))
		for i, m := range members {
			x, y := s.Project(m.X, m.Y)
			pts[i] = geom.Pt(x, y)
		}
		env, ok := build(pts)
		if !ok {
			skips = append(skips, Skip{Group: group, Reason: "members are collinear or coincident"})
			continue
		}
		env.Group = group
		env.Color = s.Colors.Of(group)
		env.Members = len(members)
		out = append(out, env)
	}
	return out, skips
}

func build(pts []geom.Point) (Envelope, bool) {
	hull := geom.ConvexHull(pts)
	if len(hull) < 3 {
		return Envelope{}, false
	}
	expanded := geom.Expand(hull, geom.Centroid(hull), Expansion)
	spline := geom.NewClosedSpline(expanded)
	return Envelope{
		Hull:   expanded,
		Path:   spline.PathData(),
		Bounds: spline.Bounds(),
	}, true
}
