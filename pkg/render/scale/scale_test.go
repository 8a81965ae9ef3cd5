package scale

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/qualmap/pkg/dataset"
)

func TestRadiusProportionalToSqrtSize(t *testing.T) {
	r := Radius{MinSize: 1, MaxSize: 9, MinR: MinRadius, MaxR: MaxRadius}
	a, b := r.Map(1), r.Map(9)
	if math.Abs(b/a-3) > 1e-9 {
		t.Errorf("radius ratio = %v, want 3", b/a)
	}
	if b != MaxRadius {
		t.Errorf("largest radius = %v, want %v", b, MaxRadius)
	}
	// Area encoding: r²/size is constant above the floor.
	for _, size := range []float64{4, 16, 25, 36} {
		r := Radius{MinSize: 1, MaxSize: 36, MinR: MinRadius, MaxR: MaxRadius}
		if got := r.Map(size) * r.Map(size) / size; math.Abs(got-25) > 1e-9 {
			t.Errorf("r²/size at %v = %v, want 25", size, got)
		}
	}
	if got := r.Map(0.01); got != MinRadius {
		t.Errorf("tiny size radius = %v, want floor %v", got, MinRadius)
	}
}

func TestRadiusFloor(t *testing.T) {
	r := Radius{MinSize: 1, MaxSize: 100, MinR: MinRadius, MaxR: MaxRadius}
	tests := []struct {
		size float64
		want float64
	}{
		{1, MinRadius},
		{2, MinRadius},
		{9, 9},
		{16, 12},
		{100, MaxRadius},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.size), func(t *testing.T) {
			if got := r.Map(tt.size); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Map(%v) = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestDegenerateDomains(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"radius equal sizes", Radius{MinSize: 4, MaxSize: 4, MinR: 6, MaxR: 30}.Map(4), 18},
		{"radius empty", Radius{MinR: 6, MaxR: 30}.Map(0), 18},
		{"stroke equal strengths", Linear{D0: 5, D1: 5, R0: 1, R1: 5}.Map(5), 3},
		{"position single point", Linear{D0: 2, D1: 2, R0: 40, R1: 760}.Map(2), 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.IsNaN(tt.got) || tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestNice(t *testing.T) {
	tests := []struct {
		d0, d1       float64
		want0, want1 float64
	}{
		{0.13, 9.7, 0, 10},
		{-3.2, 47, -5, 50},
		{0, 10, 0, 10},
		{0.001, 0.0093, 0.001, 0.01},
		{12, 3, 12, 3},
	}
	for _, tt := range tests {
		s := Linear{D0: tt.d0, D1: tt.d1, R0: 0, R1: 1}.Nice(10)
		if math.Abs(s.D0-tt.want0) > 1e-12 || math.Abs(s.D1-tt.want1) > 1e-12 {
			t.Errorf("Nice(%v,%v) = [%v,%v], want [%v,%v]", tt.d0, tt.d1, s.D0, s.D1, tt.want0, tt.want1)
		}
	}
}

func TestBuild(t *testing.T) {
	ds := &dataset.Dataset{
		Entities: []dataset.Entity{
			{Name: "A", X: 1, Y: 1, Size: 1, Groups: []string{"G"}},
			{Name: "B", X: 9, Y: 9, Size: 4, Groups: []string{"H", "G"}},
		},
		Relations: []dataset.Relation{{Source: "A", Target: "B", Strength: 2}},
		Axis:      dataset.AxisSettings{XCenter: -5, YCenter: 20},
	}
	s := Build(ds, Frame{Width: 800, Height: 600})

	if s.X.D0 > -5 || s.Y.D1 < 20 {
		t.Errorf("domains [%v,%v] [%v,%v] must include the axis center", s.X.D0, s.X.D1, s.Y.D0, s.Y.D1)
	}
	if x := s.X.Map(s.X.D0); x != Margin {
		t.Errorf("x range start = %v, want %v", x, Margin)
	}
	if y := s.Y.Map(s.Y.D0); y != 600-Margin {
		t.Errorf("y range start = %v, want %v (y is inverted)", y, 600-Margin)
	}
	if got := s.Stroke.Map(2); got != 3 {
		t.Errorf("single relation stroke = %v, want 3", got)
	}
	if s.Colors.Of("G") != Palette[0] || s.Colors.Of("H") != Palette[1] {
		t.Errorf("colors G=%s H=%s", s.Colors.Of("G"), s.Colors.Of("H"))
	}
}

func TestColorsWrap(t *testing.T) {
	var groups []string
	for i := range len(Palette) + 2 {
		groups = append(groups, string(rune('a'+i)))
	}
	c := NewColors(groups)
	if c.Of(groups[len(Palette)]) != Palette[0] || c.Of(groups[len(Palette)+1]) != Palette[1] {
		t.Error("palette should wrap")
	}
}

func TestBuildEmpty(t *testing.T) {
	s := Build(&dataset.Dataset{}, Frame{Width: 100, Height: 100})
	x, y := s.Project(0, 0)
	if x != 50 || y != 50 {
		t.Errorf("empty dataset projects to (%v,%v), want (50,50)", x, y)
	}
}
