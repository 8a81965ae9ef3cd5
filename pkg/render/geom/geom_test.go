package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestConvexHull(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want int
	}{
		{"square with interior point", []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5}}, 4},
		{"triangle", []Point{{0, 0}, {4, 0}, {0, 3}}, 3},
		{"collinear", []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, 2},
		{"coincident", []Point{{1, 1}, {1, 1}, {1, 1}}, 1},
		{"duplicates on hull", []Point{{0, 0}, {0, 0}, {4, 0}, {4, 4}, {4, 4}, {0, 4}}, 4},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvexHull(tt.pts); len(got) != tt.want {
				t.Errorf("ConvexHull() has %d vertices (%v), want %d", len(got), got, tt.want)
			}
		})
	}
}

func TestConvexHullContainsInput(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
	}{
		{"square with interior point", []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {5, 5}}},
		{"triangle with duplicates", []Point{{0, 0}, {0, 0}, {6, 0}, {3, 5}, {3, 5}, {3, 1}}},
		{"scattered", []Point{{3, 7}, {-2, 4}, {8, -1}, {5, 5}, {0, 0}, {7, 6}, {1, 3}, {4, -3}, {6, 2}}},
		{"collinear edge plus interior", []Point{{0, 0}, {2, 0}, {4, 0}, {6, 0}, {3, 4}, {3, 1}, {1, 0.5}}},
		{"points on every edge", []Point{{0, 0}, {8, 0}, {8, 6}, {0, 6}, {4, 0}, {8, 3}, {4, 6}, {0, 3}}},
		{"screen-space members", []Point{{412.5, 88}, {120, 310.25}, {640, 512}, {300, 300}, {505.75, 260}, {120, 310.25}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hull := ConvexHull(tt.pts)
			if len(hull) < 3 {
				t.Fatalf("hull %v is degenerate", hull)
			}
			for _, p := range tt.pts {
				if !InConvex(hull, p, 1e-9) {
					t.Errorf("point %v outside hull %v", p, hull)
				}
			}
		})
	}
}

func TestCentroid(t *testing.T) {
	sq := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if c := Centroid(sq); !near(c.X, 5) || !near(c.Y, 5) {
		t.Errorf("Centroid(square) = %v, want (5,5)", c)
	}
	// Vertex mean would be pulled toward the clustered corner; area weighting is not.
	tri := ConvexHull([]Point{{0, 0}, {6, 0}, {0, 6}})
	if c := Centroid(tri); !near(c.X, 2) || !near(c.Y, 2) {
		t.Errorf("Centroid(triangle) = %v, want (2,2)", c)
	}
	flat := []Point{{0, 0}, {2, 0}, {4, 0}}
	if c := Centroid(flat); !near(c.X, 2) || !near(c.Y, 0) {
		t.Errorf("Centroid(flat) = %v, want vertex mean (2,0)", c)
	}
}

func TestExpandedHullContainsMembers(t *testing.T) {
	members := []Point{{100, 100}, {180, 120}, {140, 200}, {150, 140}, {120, 160}}
	hull := ConvexHull(members)
	expanded := Expand(hull, Centroid(hull), 25)

	for i, p := range expanded {
		if got := p.Dist(hull[i]); !near(got, 25) {
			t.Errorf("vertex %d moved %v, want 25", i, got)
		}
	}

	outline := NewClosedSpline(expanded).Flatten(24)
	for _, m := range members {
		if !InConvex(ConvexHull(expanded), m, 1e-9) {
			t.Errorf("member %v outside expanded hull", m)
		}
		if !InPolygon(outline, m) {
			t.Errorf("member %v outside spline outline", m)
		}
	}
}

func TestClosedSplineInterpolates(t *testing.T) {
	pts := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	s := NewClosedSpline(pts)
	if len(s) != 4 {
		t.Fatalf("segments = %d, want 4", len(s))
	}
	for i, c := range s {
		if c.P0 != pts[i] || c.P3 != pts[(i+1)%4] {
			t.Errorf("segment %d endpoints %v..%v", i, c.P0, c.P3)
		}
	}
	b := s.Bounds()
	if b.MinX >= 0 || b.MaxX <= 10 {
		t.Errorf("spline should bulge past the square, bounds %+v", b)
	}
	if NewClosedSpline(pts[:2]) != nil {
		t.Error("fewer than three points should yield no spline")
	}
}

func TestQuad(t *testing.T) {
	q := Quad{P0: Pt(0, 0), C: Pt(5, 10), P2: Pt(10, 0)}
	mid := q.At(0.5)
	want := q.P0.Scale(0.25).Add(q.C.Scale(0.5)).Add(q.P2.Scale(0.25))
	if mid != want {
		t.Errorf("At(0.5) = %v, want %v", mid, want)
	}
	b := q.Bounds()
	if !near(b.MaxY, 5) || !near(b.MinY, 0) || !near(b.MaxX, 10) {
		t.Errorf("Bounds() = %+v", b)
	}
	straight := Quad{P0: Pt(0, 0), C: Pt(5, 5), P2: Pt(10, 10)}
	if b := straight.Bounds(); !near(b.Width(), 10) || !near(b.Height(), 10) {
		t.Errorf("straight Bounds() = %+v", b)
	}
}

func TestCubicBounds(t *testing.T) {
	c := Cubic{P0: Pt(0, 0), C1: Pt(0, 10), C2: Pt(10, 10), P3: Pt(10, 0)}
	b := c.Bounds()
	if !near(b.MaxY, 7.5) {
		t.Errorf("MaxY = %v, want 7.5", b.MaxY)
	}
}

func TestRect(t *testing.T) {
	var r Rect
	if !r.Empty() {
		t.Fatal("zero Rect should be empty")
	}
	r = r.Union(RectXYWH(0, 0, 10, 5)).Union(Rect{})
	r = r.Union(RectXYWH(20, -5, 1, 1))
	if r.MinX != 0 || r.MaxX != 21 || r.MinY != -5 || r.MaxY != 5 {
		t.Errorf("Union = %+v", r)
	}
	if g := r.Inset(-2); g.Width() != 25 || g.Height() != 14 {
		t.Errorf("Inset(-2) = %+v", g)
	}
	if !r.Contains(Pt(10, 0)) || r.Contains(Pt(30, 0)) {
		t.Error("Contains misreports")
	}
}
