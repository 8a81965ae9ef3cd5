package geom

import (
	"cmp"
	"slices"
)

// ConvexHull returns the convex hull of pts using Andrew's monotone chain.
// Collinear and duplicate points are discarded, so the result has fewer than
// three vertices when the input is degenerate. Vertices are ordered
// counter-clockwise in a y-up frame (clockwise on screen).
func ConvexHull(pts []Point) []Point {
	sorted := slices.Clone(pts)
	slices.SortFunc(sorted, func(a, b Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	sorted = slices.Compact(sorted)
	if len(sorted) < 3 {
		return sorted
	}

	hull := make([]Point, 0, 2*len(sorted))
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// Area returns the signed area of the polygon.
func Area(poly []Point) float64 {
	var a float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Centroid returns the area-weighted centroid of a simple polygon. A polygon
// with no area falls back to the mean of its vertices.
func Centroid(poly []Point) Point {
	if len(poly) == 0 {
		return Point{}
	}
	a := Area(poly)
	if a == 0 {
		return Mean(poly)
	}
	var cx, cy float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		f := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * f
		cy += (p.Y + q.Y) * f
	}
	return Point{cx / (6 * a), cy / (6 * a)}
}

// Mean returns the average of pts.
func Mean(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var s Point
	for _, p := range pts {
		s = s.Add(p)
	}
	return s.Scale(1 / float64(len(pts)))
}

// Expand moves every vertex of poly outward by d along the ray from center.
// A vertex that coincides with center is left in place.
func Expand(poly []Point, center Point, d float64) []Point {
	out := make([]Point, len(poly))
	for i, p := range poly {
		out[i] = p.Add(p.Sub(center).Unit().Scale(d))
	}
	return out
}

// InConvex reports whether p lies inside or on the convex polygon poly,
// within tolerance eps.
func InConvex(poly []Point, p Point, eps float64) bool {
	if len(poly) < 3 {
		return false
	}
	var sign float64
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		c := cross(a, b, p)
		if c > -eps && c < eps {
			continue
		}
		if sign == 0 {
			sign = c
			continue
		}
		if (c > 0) != (sign > 0) {
			return false
		}
	}
	return true
}

// InPolygon reports whether p lies strictly inside the simple polygon poly,
// using the even-odd rule.
func InPolygon(poly []Point, p Point) bool {
	in := false
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				in = !in
			}
		}
	}
	return in
}
