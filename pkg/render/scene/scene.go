// Package scene assembles a complete qualitative map from a normalized
// dataset.
//
// [Build] is a pure function of its [Input]: the same input always yields
// the same scene, including its ID. Everything that depends on interactive
// state (transform, axis visibility, legend placement) lives in
// [github.com/matzehuels/qualmap/pkg/render/canvas] instead.
package scene

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/errors"
	"github.com/matzehuels/qualmap/pkg/fonts"
	"github.com/matzehuels/qualmap/pkg/render/declutter"
	"github.com/matzehuels/qualmap/pkg/render/envelope"
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/legend"
	"github.com/matzehuels/qualmap/pkg/render/marker"
	"github.com/matzehuels/qualmap/pkg/render/route"
	"github.com/matzehuels/qualmap/pkg/render/scale"
)

// DefaultFrame is the drawing surface used when none is configured.
var DefaultFrame = scale.Frame{Width: 1200, Height: 800}

// Namespace scopes scene IDs.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/qualmap/scene"))

// Input is everything a render depends on.
type Input struct {
	Dataset    *dataset.Dataset `json:"dataset"`
	Frame      scale.Frame      `json:"frame"`
	Iterations int              `json:"iterations"` // label solver steps; 0 means the default
}

// Scene is a laid-out map, ready to serialize.
type Scene struct {
	ID        string              `json:"id" msgpack:"id"`
	Frame     scale.Frame         `json:"frame" msgpack:"frame"`
	Axes      Axes                `json:"axes" msgpack:"axes"`
	Envelopes []envelope.Envelope `json:"envelopes" msgpack:"envelopes"`
	Links     []route.Link        `json:"links" msgpack:"links"`
	Markers   []marker.Marker     `json:"markers" msgpack:"markers"`
	Labels    []declutter.Label   `json:"labels" msgpack:"labels"`
	Legend    legend.Legend       `json:"legend" msgpack:"legend"`
	Stats     Stats               `json:"stats" msgpack:"stats"`
}

// Stats summarizes what reached the scene and what was absorbed.
type Stats struct {
	Entities         int             `json:"entities" msgpack:"entities"`
	Relations        int             `json:"relations" msgpack:"relations"`
	Links            int             `json:"links" msgpack:"links"`
	Unresolved       int             `json:"unresolved" msgpack:"unresolved"`
	SelfLoops        int             `json:"self_loops" msgpack:"self_loops"`
	Groups           int             `json:"groups" msgpack:"groups"`
	Envelopes        int             `json:"envelopes" msgpack:"envelopes"`
	SkippedEnvelopes []envelope.Skip `json:"skipped_envelopes,omitempty" msgpack:"skipped_envelopes,omitempty"`
	Labels           int             `json:"labels" msgpack:"labels"`
}

// Build lays out the map described by in.
func Build(in Input) (*Scene, error) {
	if in.Dataset == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene input has no dataset")
	}
	f := in.Frame
	if f == (scale.Frame{}) {
		f = DefaultFrame
	}
	if f.Width <= 2*scale.Margin || f.Height <= 2*scale.Margin {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "frame %gx%g is too small", f.Width, f.Height)
	}
	ds := in.Dataset

	s := scale.Build(ds, f)
	envs, skipped := envelope.Build(ds, s)
	routed := route.Route(ds, s)
	markers := marker.Build(ds, s)
	labels := declutter.Solve(declutter.Labels(markers, routed.Links), in.Iterations)

	sc := &Scene{
		ID:        ID(in),
		Frame:     f,
		Axes:      buildAxes(ds.Axis, s),
		Envelopes: envs,
		Links:     routed.Links,
		Markers:   markers,
		Labels:    labels,
		Legend:    legend.Build(s),
		Stats: Stats{
			Entities:         len(ds.Entities),
			Relations:        len(ds.Relations),
			Links:            len(routed.Links),
			Unresolved:       len(routed.Unresolved),
			SelfLoops:        len(routed.SelfLoops),
			Groups:           len(s.Colors.Order),
			Envelopes:        len(envs),
			SkippedEnvelopes: skipped,
			Labels:           len(labels),
		},
	}
	return sc, nil
}

// ID derives the stable scene ID of an input.
func ID(in Input) string {
	data, err := json.Marshal(in)
	if err != nil {
		return uuid.NewSHA1(Namespace, nil).String()
	}
	return uuid.NewSHA1(Namespace, data).String()
}

// DOMPrefix returns the prefix namespacing element ids of this scene, so
// several maps can share one HTML page.
func (s *Scene) DOMPrefix() string {
	if len(s.ID) < 8 {
		return "qm-"
	}
	return "qm-" + s.ID[:8] + "-"
}

// Empty reports whether the scene draws nothing in its content layer.
func (s *Scene) Empty() bool {
	return len(s.Markers) == 0 && len(s.Links) == 0 && len(s.Envelopes) == 0
}

// ContentBounds returns the bounding box of the content layer in content
// coordinates. Axes are included only when shown.
func (s *Scene) ContentBounds(axes bool) geom.Rect {
	var r geom.Rect
	if s.Empty() {
		return r
	}
	if axes {
		r = r.Union(s.Axes.Bounds())
	}
	for _, e := range s.Envelopes {
		r = r.Union(e.Bounds.Inset(-envelope.StrokeWidth / 2))
	}
	for _, l := range s.Links {
		r = r.Union(l.Curve.Bounds().Inset(-l.Width / 2))
	}
	for _, m := range s.Markers {
		r = r.Union(m.Bounds())
	}
	for _, l := range s.Labels {
		r = r.Union(l.Box)
	}
	return r
}

// Axes is the dashed crosshair through the configured center.
type Axes struct {
	Center     geom.Point    `json:"center" msgpack:"center"`
	Horizontal [2]geom.Point `json:"horizontal" msgpack:"horizontal"`
	Vertical   [2]geom.Point `json:"vertical" msgpack:"vertical"`
	XLabel     string        `json:"x_label,omitempty" msgpack:"x_label,omitempty"`
	YLabel     string        `json:"y_label,omitempty" msgpack:"y_label,omitempty"`
	XLabelPos  geom.Point    `json:"x_label_pos" msgpack:"x_label_pos"` // text end, baseline
	YLabelPos  geom.Point    `json:"y_label_pos" msgpack:"y_label_pos"` // text start, baseline
}

// Axis styling constants.
const (
	AxisColor      = "#ccc"
	AxisDash       = "4,4"
	AxisWidth      = 1.0
	AxisLabelColor = "#888"
	axisLabelGap   = 6.0
)

func buildAxes(a dataset.AxisSettings, s scale.Scales) Axes {
	cx, cy := s.Project(a.XCenter, a.YCenter)
	f := s.Frame
	return Axes{
		Center:     geom.Pt(cx, cy),
		Horizontal: [2]geom.Point{geom.Pt(scale.Margin, cy), geom.Pt(f.Width-scale.Margin, cy)},
		Vertical:   [2]geom.Point{geom.Pt(cx, scale.Margin), geom.Pt(cx, f.Height-scale.Margin)},
		XLabel:     a.XLabel,
		YLabel:     a.YLabel,
		XLabelPos:  geom.Pt(f.Width-scale.Margin, cy-axisLabelGap),
		YLabelPos:  geom.Pt(cx+axisLabelGap, scale.Margin+fonts.LabelSize),
	}
}

// Bounds returns the box covered by the axis lines and labels.
func (a Axes) Bounds() geom.Rect {
	r := geom.RectFromPoints(a.Horizontal[0], a.Horizontal[1], a.Vertical[0], a.Vertical[1])
	if a.XLabel != "" {
		m := fonts.Measure(a.XLabel, fonts.LabelSize)
		r = r.Union(geom.RectXYWH(a.XLabelPos.X-m.Width, a.XLabelPos.Y-m.Ascent, m.Width, m.Height()))
	}
	if a.YLabel != "" {
		m := fonts.Measure(a.YLabel, fonts.LabelSize)
		r = r.Union(geom.RectXYWH(a.YLabelPos.X, a.YLabelPos.Y-m.Ascent, m.Width, m.Height()))
	}
	return r
}
