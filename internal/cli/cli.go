// Package cli implements the qualmap command-line interface.
//
// # Commands
//
//   - render: Draw a workbook as static SVG, interactive SVG, PNG, PDF or JSON
//   - validate: Check a workbook and report what would be drawn or dropped
//   - serve: Serve a live, pannable map over HTTP
//   - view: Drive a map's viewport from the terminal and export snapshots
//   - cache: Manage the render cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context to every command.
//
// # Configuration
//
// Defaults come from the TOML file named by --config (or the XDG default
// location, see [config.DefaultPath]). Explicit flags win over the file.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/qualmap/pkg/buildinfo"
	"github.com/matzehuels/qualmap/pkg/cache"
	"github.com/matzehuels/qualmap/pkg/config"
	"github.com/matzehuels/qualmap/pkg/pipeline"
)

// appName is the application name used for display and key prefixes.
const appName = "qualmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "qualmap draws qualitative maps of actors and their relations",
		Long:         `qualmap turns a workbook of positioned, weighted entities and their relations into a layered qualitative map: group envelopes, curved links, pie markers and decluttered labels.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies --verbose, loads the configuration and attaches the logger
// to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		registerLogHooks(c.Logger)
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
	case config.BackendFile:
		fc, err := cache.NewFileCache(c.Config.Cache.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "dir", c.Config.Cache.Dir, "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	default:
		return cache.NewNullCache(), nil
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions builds pipeline options from the configuration.
func (c *CLI) baseOptions(input string) pipeline.Options {
	r := c.Config.Render
	return pipeline.Options{
		Input:        input,
		Width:        r.Width,
		Height:       r.Height,
		Iterations:   r.Iterations,
		HideAxes:     !r.Axes,
		ExportHeight: r.ExportHeight,
		Logger:       c.Logger,
	}
}

// applyFlags overrides options with the scene flags the user set explicitly.
func applyFlags(cmd *cobra.Command, opts *pipeline.Options, f sceneFlags) {
	if cmd.Flags().Changed("width") {
		opts.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		opts.Height = f.height
	}
	if cmd.Flags().Changed("iterations") {
		opts.Iterations = f.iterations
	}
	if cmd.Flags().Changed("no-axes") {
		opts.HideAxes = f.noAxes
	}
}

// sceneFlags are the layout flags shared by render, serve and view.
type sceneFlags struct {
	width      float64
	height     float64
	iterations int
	noAxes     bool
	noCache    bool
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "frame width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "frame height")
	cmd.Flags().IntVar(&f.iterations, "iterations", pipeline.DefaultIterations, "label placement iterations")
	cmd.Flags().BoolVar(&f.noAxes, "no-axes", false, "hide the crosshair axes")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the render cache")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
