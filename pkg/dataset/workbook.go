package dataset

import (
	"slices"
	"strings"
)

// Sheet names recognized by the normalizer.
const (
	SheetNodes    = "Nodes"
	SheetLinks    = "Links"
	SheetSettings = "Settings"
)

// Alternate sheet names accepted for the required tables.
var (
	nodesAliases = []string{SheetNodes, "Entities"}
	linksAliases = []string{SheetLinks, "Relations"}
)

// Row is one loosely typed record as decoded from a workbook document.
type Row map[string]any

// Get returns the value stored under key. An exact match wins; otherwise the
// first key that matches case-insensitively is used.
func (r Row) Get(key string) (any, bool) {
	if v, ok := r[key]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// Table is an ordered list of rows.
type Table []Row

// HasColumn reports whether any row carries column.
func (t Table) HasColumn(column string) bool {
	return slices.ContainsFunc(t, func(r Row) bool {
		_, ok := r.Get(column)
		return ok
	})
}

// Workbook is a set of named tables. A table that is present but empty is
// distinct from a missing table.
type Workbook struct {
	Tables map[string]Table
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() Workbook {
	return Workbook{Tables: make(map[string]Table)}
}

// Set stores a table under name, replacing any existing table.
func (w *Workbook) Set(name string, t Table) {
	if w.Tables == nil {
		w.Tables = make(map[string]Table)
	}
	if t == nil {
		t = Table{}
	}
	w.Tables[name] = t
}

// Table looks up the first table matching one of names, case-insensitively.
func (w Workbook) Table(names ...string) (Table, bool) {
	for _, name := range names {
		if t, ok := w.Tables[name]; ok {
			return t, true
		}
	}
	for _, name := range names {
		for k, t := range w.Tables {
			if strings.EqualFold(k, name) {
				return t, true
			}
		}
	}
	return nil, false
}
