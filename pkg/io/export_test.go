package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/qualmap/pkg/errors"
)

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "map.svg")
	if err := ExportFile(path, []byte("<svg/>")); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<svg/>" {
		t.Errorf("content = %q", got)
	}

	if err := ExportFile(path, []byte("<svg></svg>")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (no temp files left)", len(entries))
	}
}

func TestExportFileInvalidPath(t *testing.T) {
	for _, path := range []string{"", "dir/"} {
		if err := ExportFile(path, nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
			t.Errorf("ExportFile(%q) = %v, want INVALID_PATH", path, err)
		}
	}
}
