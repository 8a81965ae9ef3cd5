package declutter

import (
	"math"
	"testing"

	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/fonts"
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/marker"
	"github.com/matzehuels/qualmap/pkg/render/route"
)

func TestFootprint(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"", FootprintPad},
		{"ab", 0.6*11 + FootprintPad},
		{"漁夫", 11 + FootprintPad},
		{"aé漁", (0.6*11*2+11)/2 + FootprintPad},
	}
	for _, tt := range tests {
		if got := Footprint(tt.text, fonts.LabelSize); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Footprint(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
	if Footprint("漁夫", 11) <= Footprint("ab", 11) {
		t.Error("ideographs should have a wider footprint than Latin text")
	}
}

func TestLabels(t *testing.T) {
	markers := []marker.Marker{{Name: "A", Center: geom.Pt(100, 100), Radius: 10}}
	links := []route.Link{
		{Relation: dataset.Relation{Label: "trade"}, Anchor: geom.Pt(50, 60)},
		{Relation: dataset.Relation{}},
	}
	ls := Labels(markers, links)
	if len(ls) != 2 {
		t.Fatalf("labels = %d, want 2 (uncaptioned link skipped)", len(ls))
	}
	if ls[0].Anchor != geom.Pt(100, 100-10-LabelGap) || ls[0].Pull != EntityPull {
		t.Errorf("entity label = %+v", ls[0])
	}
	if ls[1].Anchor != geom.Pt(50, 60) || ls[1].Pull != RelationPull || ls[1].Kind != KindRelation {
		t.Errorf("relation label = %+v", ls[1])
	}
}

func TestSolveSeparatesOverlaps(t *testing.T) {
	in := []Label{
		newLabel(KindEntity, "Harbor", geom.Pt(200, 200), EntityPull),
		newLabel(KindEntity, "Market", geom.Pt(200, 200), EntityPull),
		newLabel(KindRelation, "supply", geom.Pt(205, 202), RelationPull),
	}
	out := Solve(in, DefaultIterations)

	for i := range in {
		if in[i].Pos != in[i].Anchor {
			t.Fatal("Solve modified its input")
		}
	}
	for i := range out {
		for j := i + 1; j < len(out); j++ {
			want := 0.9 * (out[i].Footprint + out[j].Footprint)
			if d := out[i].Pos.Dist(out[j].Pos); d < want {
				t.Errorf("%q and %q are %v apart, want at least %v", out[i].Text, out[j].Text, d, want)
			}
		}
	}
	for _, l := range out {
		if math.IsNaN(l.Pos.X) || math.IsNaN(l.Pos.Y) {
			t.Fatalf("label %q has NaN position", l.Text)
		}
		if l.Box.Empty() || !l.Box.Contains(l.Pos) {
			t.Errorf("label %q box %+v does not contain %v", l.Text, l.Box, l.Pos)
		}
	}
	for _, l := range out[:2] {
		if d := l.Pos.Dist(l.Anchor); d > 2*l.Footprint {
			t.Errorf("entity label %q drifted %v from its anchor", l.Text, d)
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	in := []Label{
		newLabel(KindEntity, "a", geom.Pt(0, 0), EntityPull),
		newLabel(KindEntity, "b", geom.Pt(0, 0), EntityPull),
	}
	a, b := Solve(in, 50), Solve(in, 50)
	for i := range a {
		if a[i].Pos != b[i].Pos {
			t.Errorf("run differs at %d: %v vs %v", i, a[i].Pos, b[i].Pos)
		}
	}
}

func TestSolveIsolatedLabelStaysAtAnchor(t *testing.T) {
	out := Solve([]Label{newLabel(KindEntity, "alone", geom.Pt(10, 20), EntityPull)}, 0)
	if out[0].Pos != geom.Pt(10, 20) {
		t.Errorf("isolated label moved to %v", out[0].Pos)
	}
}
