package geom

import (
	"fmt"
	"math"
	"strings"
)

// Quad is a quadratic Bézier curve.
type Quad struct {
	P0, C, P2 Point
}

// At evaluates the curve at t in [0, 1].
func (q Quad) At(t float64) Point {
	u := 1 - t
	return q.P0.Scale(u * u).Add(q.C.Scale(2 * u * t)).Add(q.P2.Scale(t * t))
}

// Bounds returns the tight bounding box of the curve.
func (q Quad) Bounds() Rect {
	r := RectFromPoints(q.P0, q.P2)
	for _, t := range []float64{
		quadExtremum(q.P0.X, q.C.X, q.P2.X),
		quadExtremum(q.P0.Y, q.C.Y, q.P2.Y),
	} {
		if t > 0 && t < 1 {
			r = r.Extend(q.At(t))
		}
	}
	return r
}

// PathData returns the SVG path data for the curve.
func (q Quad) PathData() string {
	return fmt.Sprintf("M%s Q%s %s", fmtPt(q.P0), fmtPt(q.C), fmtPt(q.P2))
}

func quadExtremum(a, b, c float64) float64 {
	d := a - 2*b + c
	if d == 0 {
		return -1
	}
	return (a - b) / d
}

// Cubic is a cubic Bézier segment.
type Cubic struct {
	P0, C1, C2, P3 Point
}

// At evaluates the segment at t in [0, 1].
func (c Cubic) At(t float64) Point {
	u := 1 - t
	return c.P0.Scale(u * u * u).
		Add(c.C1.Scale(3 * u * u * t)).
		Add(c.C2.Scale(3 * u * t * t)).
		Add(c.P3.Scale(t * t * t))
}

// Bounds returns the tight bounding box of the segment.
func (c Cubic) Bounds() Rect {
	r := RectFromPoints(c.P0, c.P3)
	for _, t := range cubicExtrema(c.P0.X, c.C1.X, c.C2.X, c.P3.X) {
		r = r.Extend(c.At(t))
	}
	for _, t := range cubicExtrema(c.P0.Y, c.C1.Y, c.C2.Y, c.P3.Y) {
		r = r.Extend(c.At(t))
	}
	return r
}

// cubicExtrema returns the parameters in (0, 1) where the derivative of the
// one-dimensional cubic vanishes.
func cubicExtrema(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3*p1 - 3*p2 + p3
	b := 2 * (p0 - 2*p1 + p2)
	c := p1 - p0
	var ts []float64
	add := func(t float64) {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) > eps {
			add(-c / b)
		}
		return ts
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return ts
	}
	sq := math.Sqrt(disc)
	add((-b + sq) / (2 * a))
	add((-b - sq) / (2 * a))
	return ts
}

// ClosedSpline is a closed curve through a ring of points, stored as one
// cubic segment per input point.
type ClosedSpline []Cubic

// NewClosedSpline interpolates pts with a closed uniform Catmull-Rom spline
// (a cardinal spline with zero tension) and converts it to cubic Béziers.
func NewClosedSpline(pts []Point) ClosedSpline {
	n := len(pts)
	if n < 3 {
		return nil
	}
	at := func(i int) Point { return pts[((i%n)+n)%n] }
	segs := make(ClosedSpline, n)
	for i := range n {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		segs[i] = Cubic{
			P0: p1,
			C1: p1.Add(p2.Sub(p0).Scale(1.0 / 6)),
			C2: p2.Sub(p3.Sub(p1).Scale(1.0 / 6)),
			P3: p2,
		}
	}
	return segs
}

// Bounds returns the bounding box of the whole curve.
func (s ClosedSpline) Bounds() Rect {
	var r Rect
	for _, c := range s {
		r = r.Union(c.Bounds())
	}
	return r
}

// PathData returns closed SVG path data.
func (s ClosedSpline) PathData() string {
	if len(s) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "M%s", fmtPt(s[0].P0))
	for _, c := range s {
		fmt.Fprintf(&b, " C%s %s %s", fmtPt(c.C1), fmtPt(c.C2), fmtPt(c.P3))
	}
	b.WriteString(" Z")
	return b.String()
}

func fmtPt(p Point) string { return fmt.Sprintf("%.2f,%.2f", p.X, p.Y) }

// Flatten samples the curve with perSegment points per cubic segment.
func (s ClosedSpline) Flatten(perSegment int) []Point {
	if perSegment < 1 {
		perSegment = 1
	}
	pts := make([]Point, 0, len(s)*perSegment)
	for _, c := range s {
		for i := range perSegment {
			pts = append(pts, c.At(float64(i)/float64(perSegment)))
		}
	}
	return pts
}
