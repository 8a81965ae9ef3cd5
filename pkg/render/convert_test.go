package render

import (
	"context"
	"os/exec"
	"testing"

	"github.com/matzehuels/qualmap/pkg/errors"
)

func TestConvertWithoutTool(t *testing.T) {
	orig := lookPath
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	defer func() { lookPath = orig }()

	if Available() {
		t.Error("Available() = true without the tool")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF error = %v, want UNSUPPORTED", err)
	}
	_, err = ToPNG(context.Background(), []byte("<svg/>"), 2)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG error = %v, want UNSUPPORTED", err)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
	png, err := ToPNG(context.Background(), svg, 1)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Errorf("output is not a PNG")
	}
}
