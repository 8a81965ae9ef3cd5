package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/errors"
)

// Format identifies a workbook encoding.
type Format string

// Supported workbook encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var formatByExt = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// FormatOf returns the encoding implied by path's extension.
func FormatOf(path string) (Format, error) {
	if err := errors.ValidateWorkbookPath(path); err != nil {
		return "", err
	}
	return formatByExt[strings.ToLower(filepath.Ext(path))], nil
}

// ImportWorkbook reads and decodes the workbook at path.
func ImportWorkbook(path string) (dataset.Workbook, error) {
	format, err := FormatOf(path)
	if err != nil {
		return dataset.Workbook{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dataset.Workbook{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "workbook %s", path)
		}
		return dataset.Workbook{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	wb, err := ReadWorkbook(f, format)
	if err != nil {
		return dataset.Workbook{}, fmt.Errorf("%s: %w", path, err)
	}
	return wb, nil
}

// ReadWorkbook decodes a workbook document from r. ReadWorkbook does not
// close r.
func ReadWorkbook(r io.Reader, format Format) (dataset.Workbook, error) {
	raw, err := decode(r, format)
	if err != nil {
		return dataset.Workbook{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s workbook", format)
	}

	wb := dataset.NewWorkbook()
	for name, v := range raw {
		t, err := toTable(name, v)
		if err != nil {
			return dataset.Workbook{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "table %s", name)
		}
		wb.Set(name, t)
	}
	return wb, nil
}

func decode(r io.Reader, format Format) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if raw == nil {
		return nil, fmt.Errorf("document is empty")
	}
	return raw, nil
}

// toTable converts one decoded top-level value into rows. A nil value is an
// empty table; a mapping becomes Key/Value rows.
func toTable(name string, v any) (dataset.Table, error) {
	switch val := v.(type) {
	case nil:
		return dataset.Table{}, nil
	case []any:
		t := make(dataset.Table, 0, len(val))
		for i, item := range val {
			row, ok := asRow(item)
			if !ok {
				return nil, fmt.Errorf("row %d is %T, not a mapping", i+1, item)
			}
			t = append(t, row)
		}
		return t, nil
	case []map[string]any:
		t := make(dataset.Table, len(val))
		for i, m := range val {
			t[i] = dataset.Row(m)
		}
		return t, nil
	case map[string]any:
		return keyValueRows(val), nil
	default:
		return nil, fmt.Errorf("%s is %T, not a list of rows", name, v)
	}
}

func asRow(v any) (dataset.Row, bool) {
	switch m := v.(type) {
	case map[string]any:
		return dataset.Row(m), true
	case map[any]any:
		row := make(dataset.Row, len(m))
		for k, v := range m {
			row[fmt.Sprint(k)] = v
		}
		return row, true
	}
	return nil, false
}

func keyValueRows(m map[string]any) dataset.Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	t := make(dataset.Table, len(keys))
	for i, k := range keys {
		t[i] = dataset.Row{"Key": k, "Value": m[k]}
	}
	return t
}
