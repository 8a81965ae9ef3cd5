package dataset

import "slices"

// Style is the stroke style of a relation.
type Style string

// Relation styles.
const (
	StyleSolid  Style = "solid"
	StyleDashed Style = "dashed"
)

// Valid reports whether s is a known style.
func (s Style) Valid() bool { return s == StyleSolid || s == StyleDashed }

// Entity is a positioned, weighted member of one or more groups.
type Entity struct {
	Name   string   `json:"name" msgpack:"name"`
	X      float64  `json:"x" msgpack:"x"`
	Y      float64  `json:"y" msgpack:"y"`
	Size   float64  `json:"size" msgpack:"size"`
	Groups []string `json:"groups" msgpack:"groups"` // never empty, no duplicates
}

// MultiGroup reports whether the entity belongs to more than one group.
func (e Entity) MultiGroup() bool { return len(e.Groups) > 1 }

// InGroup reports whether the entity is a member of group.
func (e Entity) InGroup(group string) bool { return slices.Contains(e.Groups, group) }

// Relation connects two entities by name.
type Relation struct {
	Source   string  `json:"source" msgpack:"source"`
	Target   string  `json:"target" msgpack:"target"`
	Strength float64 `json:"strength" msgpack:"strength"`
	Style    Style   `json:"style" msgpack:"style"`
	Label    string  `json:"label,omitempty" msgpack:"label,omitempty"`
}

// AxisSettings describes the decorative crosshair axes.
type AxisSettings struct {
	XLabel  string  `json:"x_label,omitempty" msgpack:"x_label,omitempty"`
	YLabel  string  `json:"y_label,omitempty" msgpack:"y_label,omitempty"`
	XCenter float64 `json:"x_center" msgpack:"x_center"`
	YCenter float64 `json:"y_center" msgpack:"y_center"`
}

// Dataset is the normalized, immutable render input.
type Dataset struct {
	Entities  []Entity     `json:"entities" msgpack:"entities"`
	Relations []Relation   `json:"relations" msgpack:"relations"`
	Axis      AxisSettings `json:"axis" msgpack:"axis"`
}

// Groups returns every distinct group name in first-seen order over all
// entities. This order drives color assignment and the legend.
func (d *Dataset) Groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range d.Entities {
		for _, g := range e.Groups {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}

// Members returns the entities belonging to group, in input order.
func (d *Dataset) Members(group string) []Entity {
	var out []Entity
	for _, e := range d.Entities {
		if e.InGroup(group) {
			out = append(out, e)
		}
	}
	return out
}

// Index returns a name → entity lookup.
func (d *Dataset) Index() map[string]Entity {
	idx := make(map[string]Entity, len(d.Entities))
	for _, e := range d.Entities {
		idx[e.Name] = e
	}
	return idx
}

// Resolved reports whether both endpoints of r name known entities.
func (d *Dataset) Resolved(r Relation) bool {
	var src, dst bool
	for _, e := range d.Entities {
		src = src || e.Name == r.Source
		dst = dst || e.Name == r.Target
	}
	return src && dst
}
