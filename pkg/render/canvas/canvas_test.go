package canvas

import (
	"math"
	"testing"

	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/legend"
	"github.com/matzehuels/qualmap/pkg/render/scene"
	"github.com/matzehuels/qualmap/pkg/render/viewport"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc, err := scene.Build(scene.Input{Dataset: &dataset.Dataset{
		Entities: []dataset.Entity{
			{Name: "A", X: 0, Y: 0, Size: 1, Groups: []string{"X"}},
			{Name: "B", X: 4, Y: 3, Size: 2, Groups: []string{"Y"}},
		},
	}})
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestNew(t *testing.T) {
	sc := testScene(t)
	c := New(sc)
	if !c.Transform().IsIdentity() || !c.AxesVisible() || !c.LegendVisible() {
		t.Errorf("fresh canvas state = %+v", c.State())
	}
	if c.LegendPos() != legend.Origin(sc.Frame) {
		t.Errorf("legend at %v", c.LegendPos())
	}
	if w, h := c.PixelSize(); w != sc.Frame.Width || h != sc.Frame.Height {
		t.Errorf("pixel size %vx%v", w, h)
	}
}

func TestStateRestore(t *testing.T) {
	c := New(testScene(t))
	c.Viewport().Drag(10, 20)
	c.Viewport().ToggleAxes()
	saved := c.State()

	c.SetTransform(viewport.Identity)
	c.SetLegendPos(geom.Pt(1, 1))
	c.SetLegendVisible(false)
	c.SetViewBox(geom.RectXYWH(0, 0, 1, 1))
	c.SetPixelSize(3, 3)
	c.Viewport().SetAxesVisible(true)

	c.Restore(saved)
	if c.State() != saved {
		t.Errorf("restored state %+v, want %+v", c.State(), saved)
	}
}

func TestReplaceKeepsAxesResetsTransform(t *testing.T) {
	c := New(testScene(t))
	c.Viewport().ZoomBy(2, 0, 0)
	c.Viewport().SetAxesVisible(false)
	c.Replace(testScene(t))
	if !c.Transform().IsIdentity() {
		t.Error("Replace should reset the transform")
	}
	if c.AxesVisible() {
		t.Error("Replace should keep the axis flag")
	}
}

func TestContentBoundsFollowTransform(t *testing.T) {
	c := New(testScene(t))
	base := c.ContentBounds()
	c.Viewport().Drag(100, 0)
	moved := c.ContentBounds()
	if d := moved.MinX - base.MinX; math.Abs(d-100) > 1e-9 {
		t.Errorf("content moved by %v, want 100", d)
	}
	c.SetLegendVisible(false)
	if !c.LegendBounds().Empty() {
		t.Error("hidden legend should have no bounds")
	}
}
