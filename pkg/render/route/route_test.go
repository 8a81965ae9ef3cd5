package route

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/render/scale"
)

func TestOffsets(t *testing.T) {
	for n := 1; n <= 6; n++ {
		offs := Offsets(n)
		var sum float64
		for i, o := range offs {
			sum += o
			if i > 0 && o-offs[i-1] != Spacing {
				t.Errorf("n=%d: step %v, want %v", n, o-offs[i-1], Spacing)
			}
		}
		if math.Abs(sum) > 1e-9 {
			t.Errorf("n=%d: offsets %v not symmetric", n, offs)
		}
		sorted := slices.Clone(offs)
		slices.Sort(sorted)
		if len(slices.Compact(sorted)) != n {
			t.Errorf("n=%d: offsets %v not distinct", n, offs)
		}
		if n%2 == 1 && offs[n/2] != 0 {
			t.Errorf("n=%d: middle offset %v, want 0", n, offs[n/2])
		}
	}
}

func pq() *dataset.Dataset {
	return &dataset.Dataset{Entities: []dataset.Entity{
		{Name: "P", X: 0, Y: 0, Size: 1, Groups: []string{"G"}},
		{Name: "Q", X: 10, Y: 0, Size: 1, Groups: []string{"G"}},
	}}
}

func TestRouteParallel(t *testing.T) {
	ds := pq()
	ds.Relations = []dataset.Relation{
		{Source: "P", Target: "Q", Strength: 1, Style: dataset.StyleSolid},
		{Source: "Q", Target: "P", Strength: 2, Style: dataset.StyleDashed},
		{Source: "P", Target: "Q", Strength: 3, Style: dataset.StyleSolid},
	}
	s := scale.Build(ds, scale.Frame{Width: 800, Height: 600})
	res := Route(ds, s)

	if len(res.Links) != 3 {
		t.Fatalf("links = %d, want 3", len(res.Links))
	}
	var offs []float64
	for _, l := range res.Links {
		offs = append(offs, l.Offset)
	}
	if !slices.Equal(offs, []float64{-28, 0, 28}) {
		t.Errorf("offsets = %v, want [-28 0 28]", offs)
	}
	if !res.Links[1].Straight() || !res.Links[1].Dashed() {
		t.Error("middle link should be straight and dashed")
	}

	// The outer curves bow to opposite sides of the baseline.
	y0 := res.Links[0].Curve.P0.Y
	a, c := res.Links[0].Curve.C.Y-y0, res.Links[2].Curve.C.Y-y0
	if a*c >= 0 || math.Abs(a) != 28 || math.Abs(c) != 28 {
		t.Errorf("control offsets %v and %v should be opposite and 28 px", a, c)
	}
	// Anchors sit at the curve midpoint.
	for _, l := range res.Links {
		want := l.Curve.P0.Scale(0.25).Add(l.Curve.C.Scale(0.5)).Add(l.Curve.P2.Scale(0.25))
		if l.Anchor != want {
			t.Errorf("anchor %v, want %v", l.Anchor, want)
		}
	}
	if res.Links[0].Width != 1 || res.Links[2].Width != 5 {
		t.Errorf("widths %v %v, want 1 and 5", res.Links[0].Width, res.Links[2].Width)
	}
}

func TestRouteReversedPairDoesNotCoincide(t *testing.T) {
	ds := pq()
	ds.Relations = []dataset.Relation{
		{Source: "P", Target: "Q", Strength: 1, Style: dataset.StyleSolid},
		{Source: "Q", Target: "P", Strength: 1, Style: dataset.StyleSolid},
	}
	res := Route(ds, scale.Build(ds, scale.Frame{Width: 800, Height: 600}))
	if res.Links[0].Curve.C == res.Links[1].Curve.C {
		t.Error("A→B and B→A curves share a control point")
	}
}

func TestRouteCoincidentEntitiesFanOut(t *testing.T) {
	ds := &dataset.Dataset{
		Entities: []dataset.Entity{
			{Name: "P", X: 3, Y: 3, Size: 1, Groups: []string{"G"}},
			{Name: "Q", X: 3, Y: 3, Size: 1, Groups: []string{"G"}},
			{Name: "R", X: 10, Y: 8, Size: 1, Groups: []string{"G"}},
		},
		Relations: []dataset.Relation{
			{Source: "P", Target: "Q", Strength: 1, Style: dataset.StyleSolid},
			{Source: "Q", Target: "P", Strength: 1, Style: dataset.StyleSolid},
			{Source: "P", Target: "Q", Strength: 1, Style: dataset.StyleSolid},
		},
	}
	res := Route(ds, scale.Build(ds, scale.Frame{Width: 800, Height: 600}))
	if len(res.Links) != 3 {
		t.Fatalf("links = %d, want 3", len(res.Links))
	}
	for i := 1; i < len(res.Links); i++ {
		prev, cur := res.Links[i-1].Curve.C, res.Links[i].Curve.C
		if cur.X != prev.X {
			t.Errorf("control %d x = %v, want %v", i, cur.X, prev.X)
		}
		if d := prev.Y - cur.Y; math.Abs(d-Spacing) > 1e-9 {
			t.Errorf("controls %d and %d are %v apart, want %v", i-1, i, d, Spacing)
		}
	}
}

func TestRouteDrops(t *testing.T) {
	ds := pq()
	ds.Relations = []dataset.Relation{
		{Source: "P", Target: "Missing", Strength: 1},
		{Source: "P", Target: "P", Strength: 1},
		{Source: "P", Target: "Q", Strength: 1},
	}
	res := Route(ds, scale.Build(ds, scale.Frame{Width: 800, Height: 600}))
	if len(res.Links) != 1 || len(res.Unresolved) != 1 || len(res.SelfLoops) != 1 {
		t.Errorf("links=%d unresolved=%d self=%d", len(res.Links), len(res.Unresolved), len(res.SelfLoops))
	}
	if res.Dropped() != 2 {
		t.Errorf("Dropped() = %d, want 2", res.Dropped())
	}
	if !res.Links[0].Straight() {
		t.Error("lone link should be straight")
	}
}
