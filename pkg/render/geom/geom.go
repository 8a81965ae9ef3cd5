// Package geom holds the small amount of plane geometry the renderer needs:
// points, rectangles, convex hulls, polygon centroids, Bézier bounds and
// closed spline construction.
//
// All coordinates are in screen space (y grows downward), matching SVG.
package geom

import (
	"fmt"
	"math"
)

// Point is a position or vector in the plane.
type Point struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point       { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point       { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(k float64) Point   { return Point{p.X * k, p.Y * k} }
func (p Point) Dot(q Point) float64     { return p.X*q.X + p.Y*q.Y }
func (p Point) Len() float64            { return math.Hypot(p.X, p.Y) }
func (p Point) Dist(q Point) float64    { return p.Sub(q).Len() }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Unit returns p scaled to length 1, or the zero vector if p has no length.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Perp returns p rotated a quarter turn.
func (p Point) Perp() Point { return Point{-p.Y, p.X} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// cross returns the z component of (a-o) × (b-o).
func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// Rect is an axis-aligned rectangle. The zero Rect is empty.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
	NonEmpty               bool
}

// RectFromPoints returns the smallest rectangle containing pts.
func RectFromPoints(pts ...Point) Rect {
	var r Rect
	for _, p := range pts {
		r = r.Extend(p)
	}
	return r
}

// RectXYWH builds a rectangle from its top-left corner and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h, NonEmpty: true}
}

// Empty reports whether r contains nothing.
func (r Rect) Empty() bool { return !r.NonEmpty }

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Extend returns r grown to include p.
func (r Rect) Extend(p Point) Rect {
	if !r.NonEmpty {
		return Rect{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y, NonEmpty: true}
	}
	r.MinX = math.Min(r.MinX, p.X)
	r.MinY = math.Min(r.MinY, p.Y)
	r.MaxX = math.Max(r.MaxX, p.X)
	r.MaxY = math.Max(r.MaxY, p.Y)
	return r
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if o.Empty() {
		return r
	}
	if r.Empty() {
		return o
	}
	return r.Extend(Point{o.MinX, o.MinY}).Extend(Point{o.MaxX, o.MaxY})
}

// Inset shrinks r by d on every side; a negative d grows it.
func (r Rect) Inset(d float64) Rect {
	if r.Empty() {
		return r
	}
	r.MinX += d
	r.MinY += d
	r.MaxX -= d
	r.MaxY -= d
	return r
}

// Translate moves r by v.
func (r Rect) Translate(v Point) Rect {
	if r.Empty() {
		return r
	}
	r.MinX += v.X
	r.MaxX += v.X
	r.MinY += v.Y
	r.MaxY += v.Y
	return r
}

// Contains reports whether p lies inside or on r.
func (r Rect) Contains(p Point) bool {
	return r.NonEmpty && p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}
