package sink

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/render/canvas"
	"github.com/matzehuels/qualmap/pkg/render/scene"
)

func testCanvas(t *testing.T) *canvas.Canvas {
	t.Helper()
	sc, err := scene.Build(scene.Input{Dataset: &dataset.Dataset{
		Entities: []dataset.Entity{
			{Name: "A<1>", X: 0, Y: 0, Size: 1, Groups: []string{"X"}},
			{Name: "B", X: 10, Y: 10, Size: 9, Groups: []string{"Y", "X"}},
			{Name: "C", X: 10, Y: 0, Size: 4, Groups: []string{"X"}},
		},
		Relations: []dataset.Relation{
			{Source: "A<1>", Target: "B", Strength: 1, Style: dataset.StyleDashed, Label: "flow"},
		},
		Axis: dataset.AxisSettings{XLabel: "Supply", YLabel: "Influence"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	return canvas.New(sc)
}

func TestRenderSVGInteractive(t *testing.T) {
	c := testCanvas(t)
	c.Viewport().Drag(5, 5)
	out, err := RenderSVG(c)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	svg := string(out)
	prefix := c.Scene().DOMPrefix()

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`id="` + prefix + `viewport"`,
		`transform="translate(5.00,5.00) scale(1.0000)"`,
		`id="` + prefix + `axes"`,
		`id="` + prefix + `legend"`,
		`class="envelope"`,
		`stroke-dasharray="6,3"`,
		`class="wedge"`,
		"A&lt;1&gt;",
		"<script",
		">Supply</text>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("interactive SVG missing %q", want)
		}
	}
	if strings.HasPrefix(svg, "<?xml") {
		t.Error("interactive SVG should not carry an XML declaration")
	}
	// The legend is drawn after the content layer closes.
	if strings.Index(svg, prefix+"legend") < strings.LastIndex(svg, `class="labels"`) {
		t.Error("legend should sit outside the viewport layer")
	}
}

func TestRenderSVGStatic(t *testing.T) {
	c := testCanvas(t)
	out, err := RenderSVG(c, Static())
	if err != nil {
		t.Fatal(err)
	}
	svg := string(out)
	if !strings.HasPrefix(svg, XMLHeader) {
		t.Error("static SVG should start with the XML declaration")
	}
	if strings.Contains(svg, "<script") {
		t.Error("static SVG must not contain a script")
	}
}

func TestRenderSVGHonorsViewState(t *testing.T) {
	c := testCanvas(t)
	c.Viewport().SetAxesVisible(false)
	c.SetLegendVisible(false)
	out, err := RenderSVG(c, Static(), WithEmbeddedFont())
	if err != nil {
		t.Fatal(err)
	}
	svg := string(out)
	if !strings.Contains(svg, `class="axes" display="none"`) {
		t.Error("hidden axes should be marked display none")
	}
	if strings.Contains(svg, `class="legend"`) {
		t.Error("hidden legend should not be drawn")
	}
	if !strings.Contains(svg, "@font-face") {
		t.Error("embedded font missing")
	}
}

func TestRenderJSON(t *testing.T) {
	c := testCanvas(t)
	data, err := RenderJSON(c)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	var out struct {
		ID      string            `json:"id"`
		Markers []json.RawMessage `json:"markers"`
		Links   []json.RawMessage `json:"links"`
		View    struct {
			Axes bool `json:"axes"`
		} `json:"view"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.ID != c.Scene().ID || len(out.Markers) != 3 || len(out.Links) != 1 || !out.View.Axes {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{10: "10", 1.5: "1.5", 0.126: "0.13", -0.001: "0", 1200: "1200"}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
