package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/errors"
)

const yamlWorkbook = `
Nodes:
  - {Name: Port, X: 0, Y: 10, Size: 5, Group: Market}
  - {Name: Agency, X: 9.5, Y: 9, Size: 2, Group: '["Government","Fishers"]'}
Links:
  - {Source: Port, Target: Agency, Strength: 2, Type: dashed, Label: permits}
Settings:
  XAxisLabel: Supply chain
  YAxisCenter: 5
`

const jsonWorkbook = `{
  "Nodes": [
    {"Name": "Port", "X": 0, "Y": 10, "Size": 5, "Group": "Market"},
    {"Name": "Agency", "X": 9.5, "Y": 9, "Size": 2, "Group": ["Government", "Fishers"]}
  ],
  "Links": [
    {"Source": "Port", "Target": "Agency", "Strength": 2, "Type": "dashed", "Label": "permits"}
  ],
  "Settings": [
    {"Key": "XAxisLabel", "Value": "Supply chain"},
    {"Key": "YAxisCenter", "Value": 5}
  ]
}`

const tomlWorkbook = `
[[Nodes]]
Name = "Port"
X = 0
Y = 10
Size = 5
Group = "Market"

[[Nodes]]
Name = "Agency"
X = 9.5
Y = 9
Size = 2
Group = ["Government", "Fishers"]

[[Links]]
Source = "Port"
Target = "Agency"
Strength = 2
Type = "dashed"
Label = "permits"

[Settings]
XAxisLabel = "Supply chain"
YAxisCenter = 5
`

func TestReadWorkbookFormats(t *testing.T) {
	tests := []struct {
		format Format
		doc    string
	}{
		{FormatYAML, yamlWorkbook},
		{FormatJSON, jsonWorkbook},
		{FormatTOML, tomlWorkbook},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			wb, err := ReadWorkbook(strings.NewReader(tt.doc), tt.format)
			if err != nil {
				t.Fatalf("ReadWorkbook: %v", err)
			}
			ds, err := dataset.Normalize(wb)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if len(ds.Entities) != 2 || len(ds.Relations) != 1 {
				t.Fatalf("got %d entities, %d relations", len(ds.Entities), len(ds.Relations))
			}
			agency := ds.Entities[1]
			if agency.X != 9.5 || len(agency.Groups) != 2 || agency.Groups[1] != "Fishers" {
				t.Errorf("agency = %+v", agency)
			}
			if ds.Relations[0].Style != dataset.StyleDashed {
				t.Errorf("style = %q", ds.Relations[0].Style)
			}
			if ds.Axis.XLabel != "Supply chain" || ds.Axis.YCenter != 5 {
				t.Errorf("axis = %+v", ds.Axis)
			}
		})
	}
}

func TestReadWorkbookSettingsMapping(t *testing.T) {
	wb, err := ReadWorkbook(strings.NewReader(yamlWorkbook), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	settings, ok := wb.Table(dataset.SheetSettings)
	if !ok || len(settings) != 2 {
		t.Fatalf("settings = %v", settings)
	}
	if settings[0]["Key"] != "XAxisLabel" || settings[1]["Key"] != "YAxisCenter" {
		t.Errorf("settings not sorted by key: %v", settings)
	}
}

func TestReadWorkbookInvalid(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"malformed json", FormatJSON, `{"Nodes": [`},
		{"malformed yaml", FormatYAML, "Nodes: [\n"},
		{"malformed toml", FormatTOML, "[[Nodes]\n"},
		{"empty", FormatYAML, ""},
		{"scalar table", FormatYAML, "Nodes: 3\n"},
		{"scalar row", FormatJSON, `{"Nodes": [1, 2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadWorkbook(strings.NewReader(tt.doc), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestReadWorkbookEmptyTable(t *testing.T) {
	wb, err := ReadWorkbook(strings.NewReader("Nodes:\nLinks: []\n"), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{dataset.SheetNodes, dataset.SheetLinks} {
		if tbl, ok := wb.Table(name); !ok || len(tbl) != 0 {
			t.Errorf("%s = %v, %v; want present and empty", name, tbl, ok)
		}
	}
}

func TestImportWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.yml")
	if err := os.WriteFile(path, []byte(yamlWorkbook), 0o644); err != nil {
		t.Fatal(err)
	}
	wb, err := ImportWorkbook(path)
	if err != nil {
		t.Fatalf("ImportWorkbook: %v", err)
	}
	if _, ok := wb.Table(dataset.SheetNodes); !ok {
		t.Error("Nodes table missing")
	}

	if _, err := ImportWorkbook(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ImportWorkbook(filepath.Join(dir, "map.xlsx")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("xlsx error = %v, want INVALID_FORMAT", err)
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.json":    FormatJSON,
		"b.YAML":    FormatYAML,
		"dir/c.yml": FormatYAML,
		"d.toml":    FormatTOML,
	}
	for path, want := range tests {
		got, err := FormatOf(path)
		if err != nil || got != want {
			t.Errorf("FormatOf(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
}
