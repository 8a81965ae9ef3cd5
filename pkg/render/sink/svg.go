package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/qualmap/pkg/fonts"
	"github.com/matzehuels/qualmap/pkg/render/declutter"
	"github.com/matzehuels/qualmap/pkg/render/envelope"
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/legend"
	"github.com/matzehuels/qualmap/pkg/render/marker"
	"github.com/matzehuels/qualmap/pkg/render/route"
	"github.com/matzehuels/qualmap/pkg/render/scene"
	"github.com/matzehuels/qualmap/pkg/render/viewport"
)

// XMLHeader starts every static document.
const XMLHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// View is the state a serializer reads.
type View interface {
	Scene() *scene.Scene
	Transform() viewport.Transform
	AxesVisible() bool
	LegendPos() geom.Point
	LegendVisible() bool
	ViewBox() geom.Rect
	PixelSize() (width, height float64)
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	static bool
	font   bool
}

// Static renders the self-contained export form: XML declaration, no script.
func Static() SVGOption { return func(r *svgRenderer) { r.static = true } }

// WithEmbeddedFont embeds the label font so text renders exactly as measured.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.font = true } }

// RenderSVG serializes v. It does not modify v.
func RenderSVG(v View, opts ...SVGOption) ([]byte, error) {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}
	sc := v.Scene()
	if sc == nil {
		return nil, fmt.Errorf("render svg: no scene")
	}
	prefix := sc.DOMPrefix()
	vb := v.ViewBox()
	w, h := v.PixelSize()

	var buf bytes.Buffer
	if r.static {
		buf.WriteString(XMLHeader)
	}
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		num(vb.MinX), num(vb.MinY), num(vb.Width()), num(vb.Height()), w, h, escape(fonts.FallbackFontFamily))

	if r.font {
		fmt.Fprintf(&buf, "  <style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s); }</style>\n",
			fonts.FontFamily, fonts.GoRegularTTFBase64())
	}
	fmt.Fprintf(&buf, `  <rect class="background" x="%s" y="%s" width="%s" height="%s" fill="#fff"/>`+"\n",
		num(vb.MinX), num(vb.MinY), num(vb.Width()), num(vb.Height()))

	fmt.Fprintf(&buf, `  <g id="%sviewport" class="viewport" transform="%s">`+"\n", prefix, v.Transform().SVG())
	renderAxes(&buf, prefix, sc.Axes, v.AxesVisible())
	renderEnvelopes(&buf, sc.Envelopes)
	renderLinks(&buf, sc.Links)
	renderMarkers(&buf, sc.Markers)
	renderLabels(&buf, sc.Labels)
	buf.WriteString("  </g>\n")

	if v.LegendVisible() && !sc.Legend.Empty() {
		renderLegend(&buf, prefix, sc.Legend, v.LegendPos())
	}
	if !r.static {
		renderInteraction(&buf, prefix, v.Transform())
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderAxes(buf *bytes.Buffer, prefix string, a scene.Axes, visible bool) {
	display := ""
	if !visible {
		display = ` display="none"`
	}
	fmt.Fprintf(buf, `    <g id="%saxes" class="axes"%s>`+"\n", prefix, display)
	for _, seg := range [][2]geom.Point{a.Vertical, a.Horizontal} {
		fmt.Fprintf(buf, `      <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-dasharray="%s"/>`+"\n",
			num(seg[0].X), num(seg[0].Y), num(seg[1].X), num(seg[1].Y), scene.AxisColor, num(scene.AxisWidth), scene.AxisDash)
	}
	if a.XLabel != "" {
		fmt.Fprintf(buf, `      <text x="%s" y="%s" text-anchor="end" font-size="%s" fill="%s">%s</text>`+"\n",
			num(a.XLabelPos.X), num(a.XLabelPos.Y), num(fonts.LabelSize), scene.AxisLabelColor, escape(a.XLabel))
	}
	if a.YLabel != "" {
		fmt.Fprintf(buf, `      <text x="%s" y="%s" text-anchor="start" font-size="%s" fill="%s">%s</text>`+"\n",
			num(a.YLabelPos.X), num(a.YLabelPos.Y), num(fonts.LabelSize), scene.AxisLabelColor, escape(a.YLabel))
	}
	buf.WriteString("    </g>\n")
}

func renderEnvelopes(buf *bytes.Buffer, envs []envelope.Envelope) {
	buf.WriteString(`    <g class="envelopes">` + "\n")
	for _, e := range envs {
		fmt.Fprintf(buf, `      <path class="envelope" data-group="%s" d="%s" fill="%s" fill-opacity="%s" stroke="%s" stroke-opacity="%s" stroke-width="%s"/>`+"\n",
			escape(e.Group), e.Path, e.Color, num(envelope.FillOpacity), e.Color, num(envelope.StrokeOpacity), num(envelope.StrokeWidth))
	}
	buf.WriteString("    </g>\n")
}

func renderLinks(buf *bytes.Buffer, links []route.Link) {
	buf.WriteString(`    <g class="links" fill="none">` + "\n")
	for _, l := range links {
		dash := ""
		if l.Dashed() {
			dash = fmt.Sprintf(` stroke-dasharray="%s"`, route.DashPattern)
		}
		fmt.Fprintf(buf, `      <path class="link" data-source="%s" data-target="%s" d="%s" stroke="%s" stroke-opacity="%s" stroke-width="%s"%s/>`+"\n",
			escape(l.Relation.Source), escape(l.Relation.Target), l.Curve.PathData(),
			route.Stroke, num(route.Opacity), num(l.Width), dash)
	}
	buf.WriteString("    </g>\n")
}

func renderMarkers(buf *bytes.Buffer, markers []marker.Marker) {
	buf.WriteString(`    <g class="markers">` + "\n")
	for _, m := range markers {
		fmt.Fprintf(buf, `      <g class="marker" data-name="%s">`+"\n", escape(m.Name))
		if m.Pie() {
			for _, w := range m.Wedges {
				fmt.Fprintf(buf, `        <path class="wedge" data-group="%s" d="%s" fill="%s" fill-opacity="%s"/>`+"\n",
					escape(w.Group), w.Path, w.Color, num(marker.FillOpacity))
			}
		} else {
			fmt.Fprintf(buf, `        <circle cx="%s" cy="%s" r="%s" fill="%s" fill-opacity="%s"/>`+"\n",
				num(m.Center.X), num(m.Center.Y), num(m.Radius), m.Color, num(marker.FillOpacity))
		}
		fmt.Fprintf(buf, `        <circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			num(m.Center.X), num(m.Center.Y), num(m.Radius), marker.OutlineColor, num(marker.OutlineWidth))
		buf.WriteString("      </g>\n")
	}
	buf.WriteString("    </g>\n")
}

func renderLabels(buf *bytes.Buffer, labels []declutter.Label) {
	buf.WriteString(`    <g class="labels">` + "\n")
	for _, l := range labels {
		b := l.Box
		fmt.Fprintf(buf, `      <g class="label %s">`+"\n", l.Kind)
		fmt.Fprintf(buf, `        <rect x="%s" y="%s" width="%s" height="%s" fill="#fff" fill-opacity="%s" rx="2"/>`+"\n",
			num(b.MinX), num(b.MinY), num(b.Width()), num(b.Height()), num(declutter.BoxOpacity))
		fmt.Fprintf(buf, `        <text x="%s" y="%s" text-anchor="middle" font-size="%s" fill="%s">%s</text>`+"\n",
			num(l.Pos.X), num(l.Pos.Y), num(fonts.LabelSize), declutter.TextColor, escape(l.Text))
		buf.WriteString("      </g>\n")
	}
	buf.WriteString("    </g>\n")
}

func renderLegend(buf *bytes.Buffer, prefix string, l legend.Legend, pos geom.Point) {
	fmt.Fprintf(buf, `  <g id="%slegend" class="legend" transform="translate(%s,%s)">`+"\n", prefix, num(pos.X), num(pos.Y))
	b := l.Local
	fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s" fill-opacity="%s" rx="4"/>`+"\n",
		num(b.MinX), num(b.MinY), num(b.Width()), num(b.Height()), legend.BackingColor, num(legend.BackingAlpha))
	for _, e := range l.Entries {
		fmt.Fprintf(buf, `    <g transform="translate(0,%s)">`+"\n", num(e.Y))
		fmt.Fprintf(buf, `      <circle r="%s" fill="%s" fill-opacity="%s"/>`+"\n", num(legend.SwatchRadius), e.Color, num(marker.FillOpacity))
		fmt.Fprintf(buf, `      <text x="%s" y="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			num(legend.TextOffset), num(legend.Baseline), num(fonts.LabelSize), legend.TextColor, escape(e.Group))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

func renderInteraction(buf *bytes.Buffer, prefix string, t viewport.Transform) {
	js := strings.NewReplacer(
		"__PREFIX__", prefix,
		"__X__", fmt.Sprint(t.X),
		"__Y__", fmt.Sprint(t.Y),
		"__K__", fmt.Sprint(t.K),
		"__MIN__", fmt.Sprint(viewport.MinScale),
		"__MAX__", fmt.Sprint(viewport.MaxScale),
		"__RATE__", fmt.Sprint(viewport.WheelRate),
		"__DUR__", fmt.Sprint(viewport.ResetDuration.Milliseconds()),
	).Replace(interactionJS)
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", interactionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", js)
}

// num formats a coordinate compactly.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
