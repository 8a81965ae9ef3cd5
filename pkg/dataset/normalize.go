package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/qualmap/pkg/errors"
)

// Required columns per table.
var (
	EntityFields   = []string{"Name", "X", "Y", "Size", "Group"}
	RelationFields = []string{"Source", "Target", "Strength", "Type"}
)

// Recognized settings keys.
const (
	SettingXAxisLabel  = "XAxisLabel"
	SettingYAxisLabel  = "YAxisLabel"
	SettingXAxisCenter = "XAxisCenter"
	SettingYAxisCenter = "YAxisCenter"
)

// Normalize validates wb and reshapes it into a Dataset.
//
// Structural problems (a missing table or column) are reported first and all
// together with code MISSING_FIELD. Only when the structure is complete are
// values checked; every value problem is reported together with code
// INVALID_INPUT. On error the returned Dataset is nil.
func Normalize(wb Workbook) (*Dataset, error) {
	nodes, hasNodes := wb.Table(nodesAliases...)
	links, hasLinks := wb.Table(linksAliases...)

	var missing []string
	missing = append(missing, missingFields(SheetNodes, nodes, hasNodes, EntityFields)...)
	missing = append(missing, missingFields(SheetLinks, links, hasLinks, RelationFields)...)
	if len(missing) > 0 {
		return nil, errors.WithDetails(errors.ErrCodeMissingField, missing, "missing required fields")
	}

	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	ds := &Dataset{
		Entities:  normalizeEntities(nodes, report),
		Relations: normalizeRelations(links, report),
	}
	if settings, ok := wb.Table(SheetSettings); ok {
		ds.Axis = normalizeSettings(settings, report)
	}

	if len(problems) > 0 {
		return nil, errors.WithDetails(errors.ErrCodeInvalidInput, problems, "invalid input")
	}
	return ds, nil
}

// missingFields lists the qualified fields absent from a table. A missing
// table contributes every required field. Columns are only checked when the
// table has rows, since an empty table has no header to inspect.
func missingFields(sheet string, t Table, present bool, required []string) []string {
	var out []string
	for _, f := range required {
		if !present || (len(t) > 0 && !t.HasColumn(f)) {
			out = append(out, sheet+"."+f)
		}
	}
	return out
}

func normalizeEntities(t Table, report func(string, ...any)) []Entity {
	entities := make([]Entity, 0, len(t))
	seen := make(map[string]int, len(t))
	for i, row := range t {
		where := fmt.Sprintf("%s row %d", SheetNodes, i+1)

		name := stringField(row, "Name")
		if err := errors.ValidateName(name); err != nil {
			report("%s: %s", where, errors.UserMessage(err))
			continue
		}
		where = fmt.Sprintf("%s %q", SheetNodes, name)
		if first, dup := seen[name]; dup {
			report("%s: duplicate name (first seen in row %d)", where, first)
			continue
		}
		seen[name] = i + 1

		e := Entity{Name: name}
		ok := true
		for _, f := range []struct {
			col string
			dst *float64
		}{{"X", &e.X}, {"Y", &e.Y}, {"Size", &e.Size}} {
			v, err := numberField(row, f.col)
			if err != nil {
				report("%s: %s %v", where, f.col, err)
				ok = false
				continue
			}
			*f.dst = v
		}
		if ok && e.Size <= 0 {
			report("%s: Size must be > 0, got %g", where, e.Size)
			ok = false
		}

		raw, _ := row.Get("Group")
		groups, err := ParseGroups(raw)
		if err != nil {
			report("%s: %v", where, err)
			ok = false
		}
		for _, g := range groups {
			if err := errors.ValidateName(g); err != nil {
				report("%s: group %s", where, errors.UserMessage(err))
				ok = false
			}
		}
		e.Groups = groups

		if ok {
			entities = append(entities, e)
		}
	}
	return entities
}

func normalizeRelations(t Table, report func(string, ...any)) []Relation {
	relations := make([]Relation, 0, len(t))
	for i, row := range t {
		where := fmt.Sprintf("%s row %d", SheetLinks, i+1)

		r := Relation{
			Source: stringField(row, "Source"),
			Target: stringField(row, "Target"),
			Label:  stringField(row, "Label"),
			Style:  Style(strings.ToLower(stringField(row, "Type"))),
		}
		ok := true
		if r.Source == "" || r.Target == "" {
			report("%s: Source and Target are required", where)
			ok = false
		}
		strength, err := numberField(row, "Strength")
		switch {
		case err != nil:
			report("%s: Strength %v", where, err)
			ok = false
		case strength <= 0:
			report("%s: Strength must be > 0, got %g", where, strength)
			ok = false
		}
		r.Strength = strength
		if !r.Style.Valid() {
			report("%s: Type must be solid or dashed, got %q", where, r.Style)
			ok = false
		}
		if ok {
			relations = append(relations, r)
		}
	}
	return relations
}

func normalizeSettings(t Table, report func(string, ...any)) AxisSettings {
	var axis AxisSettings
	for _, row := range t {
		key := stringField(row, "Key")
		value, present := row.Get("Value")
		if key == "" || !present || value == nil {
			continue
		}
		switch key {
		case SettingXAxisLabel:
			axis.XLabel = stringField(row, "Value")
		case SettingYAxisLabel:
			axis.YLabel = stringField(row, "Value")
		case SettingXAxisCenter, SettingYAxisCenter:
			v, err := toNumber(value)
			if err != nil {
				report("%s %s: %v", SheetSettings, key, err)
				continue
			}
			if key == SettingXAxisCenter {
				axis.XCenter = v
			} else {
				axis.YCenter = v
			}
		}
	}
	return axis
}

// stringField returns the trimmed string form of a cell, or "" when absent.
func stringField(row Row, col string) string {
	v, ok := row.Get(col)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func numberField(row Row, col string) (float64, error) {
	v, ok := row.Get(col)
	if !ok || v == nil {
		return 0, fmt.Errorf("is missing")
	}
	return toNumber(v)
}

// toNumber coerces the numeric representations produced by the JSON, YAML
// and TOML decoders, plus numeric strings.
func toNumber(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", n.String())
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", n)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", v)
	}
	return f, nil
}
