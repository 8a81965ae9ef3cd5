// Package route turns relations into quadratic curves. Relations between the
// same unordered pair of entities fan out symmetrically around the straight
// baseline so that parallel relations never overlap.
package route

import (
	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/scale"
)

// Styling and spacing constants.
const (
	Spacing     = 28.0
	Stroke      = "#999"
	Opacity     = 0.5
	DashPattern = "6,3"
)

// PairKey identifies an unordered pair of entity names.
type PairKey struct {
	A, B string // A <= B
}

// KeyOf returns the canonical pair key of a relation's endpoints.
func KeyOf(source, target string) PairKey {
	if target < source {
		source, target = target, source
	}
	return PairKey{A: source, B: target}
}

// Link is a routed relation.
type Link struct {
	Relation dataset.Relation `json:"relation" msgpack:"relation"`
	Curve    geom.Quad        `json:"curve" msgpack:"curve"`
	Offset   float64          `json:"offset" msgpack:"offset"`
	Width    float64          `json:"width" msgpack:"width"`
	Anchor   geom.Point       `json:"anchor" msgpack:"anchor"` // curve midpoint, t = 0.5
}

// Dashed reports whether the link is drawn with a dash pattern.
func (l Link) Dashed() bool { return l.Relation.Style == dataset.StyleDashed }

// Straight reports whether the link has no lateral offset.
func (l Link) Straight() bool { return l.Offset == 0 }

// Result is the outcome of routing.
type Result struct {
	Links      []Link
	Unresolved []dataset.Relation // an endpoint names no entity
	SelfLoops  []dataset.Relation // source equals target
}

// Dropped returns the number of relations that produced no link.
func (r Result) Dropped() int { return len(r.Unresolved) + len(r.SelfLoops) }

// Offsets returns the lateral offsets for n parallel relations:
// (i - (n-1)/2) * Spacing for i in [0, n).
func Offsets(n int) []float64 {
	out := make([]float64, n)
	for i := range n {
		out[i] = (float64(i) - float64(n-1)/2) * Spacing
	}
	return out
}

// Route routes every resolvable relation of ds. Links keep input order.
func Route(ds *dataset.Dataset, s scale.Scales) Result {
	idx := ds.Index()
	var res Result

	type routed struct {
		rel dataset.Relation
		key PairKey
	}
	var valid []routed
	counts := make(map[PairKey]int)
	for _, rel := range ds.Relations {
		_, okS := idx[rel.Source]
		_, okT := idx[rel.Target]
		switch {
		case !okS || !okT:
			res.Unresolved = append(res.Unresolved, rel)
		case rel.Source == rel.Target:
			res.SelfLoops = append(res.SelfLoops, rel)
		default:
			k := KeyOf(rel.Source, rel.Target)
			valid = append(valid, routed{rel, k})
			counts[k]++
		}
	}

	seen := make(map[PairKey]int)
	offsets := make(map[PairKey][]float64, len(counts))
	for _, v := range valid {
		offs, ok := offsets[v.key]
		if !ok {
			offs = Offsets(counts[v.key])
			offsets[v.key] = offs
		}
		offset := offs[seen[v.key]]
		seen[v.key]++

		src := project(s, idx[v.rel.Source])
		dst := project(s, idx[v.rel.Target])
		// The normal is taken in canonical pair orientation so A→B and B→A
		// share one side convention.
		ca, cb := project(s, idx[v.key.A]), project(s, idx[v.key.B])
		base := cb.Sub(ca)
		normal := geom.Pt(0, -1)
		if base.Len() > 0 {
			normal = base.Perp().Unit()
		}

		mid := src.Lerp(dst, 0.5)
		curve := geom.Quad{P0: src, C: mid.Add(normal.Scale(offset)), P2: dst}
		res.Links = append(res.Links, Link{
			Relation: v.rel,
			Curve:    curve,
			Offset:   offset,
			Width:    s.Stroke.Map(v.rel.Strength),
			Anchor:   curve.At(0.5),
		})
	}
	return res
}

func project(s scale.Scales, e dataset.Entity) geom.Point {
	x, y := s.Project(e.X, e.Y)
	return geom.Pt(x, y)
}
