// Package config loads qualmap's optional TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/qualmap/config.toml (see
// [os.UserConfigDir]) unless --config names another path. A missing file is
// not an error: every setting has a default, and command-line flags override
// whatever the file says.
//
//	[render]
//	width = 1200
//	height = 800
//	iterations = 300
//	export_height = 1200
//	axes = true
//
//	[cache]
//	backend = "file"        # file | redis | none
//	dir = "~/.cache/qualmap"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "168h"
//
//	[server]
//	addr = "127.0.0.1:8080"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/qualmap/pkg/errors"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds layout and export settings.
type RenderConfig struct {
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
	Iterations   int     `toml:"iterations"`
	ExportHeight float64 `toml:"export_height"`
	Axes         bool    `toml:"axes"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// ServerConfig configures `qualmap serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration that reads from TOML strings like "36h".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Width:        1200,
			Height:       800,
			Iterations:   300,
			ExportHeight: 1200,
			Axes:         true,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     defaultCacheDir(),
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "qualmap", "config.toml")
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "qualmap")
	}
	return filepath.Join(dir, "qualmap")
}

// Load reads the file at path over the defaults. An empty path means
// [DefaultPath]. A missing file yields the defaults; unknown keys and
// invalid values are INVALID_CONFIG errors.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		if explicit {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.WithDetails(errors.ErrCodeInvalidConfig, keys, "unknown keys in %s", path)
	}
	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	return cfg, cfg.Validate()
}

// Validate checks every setting, reporting all problems at once.
func (c Config) Validate() error {
	var problems []string
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		problems = append(problems, "render.width and render.height must be positive")
	}
	if c.Render.Iterations < 0 {
		problems = append(problems, "render.iterations must not be negative")
	}
	if c.Render.ExportHeight <= 0 {
		problems = append(problems, "render.export_height must be positive")
	}
	switch c.Cache.Backend {
	case BackendFile:
		if c.Cache.Dir == "" {
			problems = append(problems, "cache.dir is required for the file backend")
		}
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			problems = append(problems, "cache.redis_url is required for the redis backend")
		}
	case BackendNone:
	default:
		problems = append(problems, "cache.backend must be file, redis or none")
	}
	if c.Cache.TTL.Duration < 0 {
		problems = append(problems, "cache.ttl must not be negative")
	}
	if len(problems) > 0 {
		return errors.WithDetails(errors.ErrCodeInvalidConfig, problems, "invalid configuration")
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
