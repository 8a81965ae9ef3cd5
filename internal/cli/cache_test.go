package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/qualmap/pkg/cache"
)

func TestCachePath(t *testing.T) {
	isolate(t)
	out := captureStdout(t)

	if _, err := execute(t, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	got := strings.TrimSpace(out.String())
	if filepath.Base(got) != appName {
		t.Errorf("cache path = %q, want a directory named %q", got, appName)
	}
}

func TestCacheClear(t *testing.T) {
	dir := isolate(t)
	cacheDir := filepath.Join(dir, "scenes")
	cfg := writeFile(t, dir, "qualmap.toml", "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(cacheDir)+"\"\n")

	fc, err := cache.NewFileCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "scene:abc", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}

	out := captureStdout(t)
	if _, err := execute(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(context.Background(), "scene:abc"); hit {
		t.Error("entry survived cache clear")
	}
	if !strings.Contains(out.String(), "Cleared the file cache") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if _, err := os.Stat(cacheDir); err != nil {
		t.Errorf("cache directory removed: %v", err)
	}
}

func TestCacheClearDisabled(t *testing.T) {
	dir := isolate(t)
	cfg := writeFile(t, dir, "qualmap.toml", "[cache]\nbackend = \"none\"\n")
	out := captureStdout(t)

	if _, err := execute(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out.String(), "disabled") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
