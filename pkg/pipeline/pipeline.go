// Package pipeline provides the load → scene → render pipeline shared by the
// CLI, the terminal viewer and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a workbook document and normalize it into a dataset
//  2. Scene: scale, envelope, route, mark and declutter the dataset
//  3. Render: serialize the scene (static SVG, interactive SVG, PNG, PDF, JSON)
//
// The scene and render stages are memoized through [cache.Cache]; loading
// always reads the file so edits are never masked.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "fishmarket.yaml",
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Run individual stages:
//
//	ds, err := runner.Load(ctx, opts)
//	sc, err := runner.BuildScene(ctx, ds, opts)
//	artifacts, err := runner.Render(ctx, sc, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qualmap/pkg/cache"
	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/errors"
	"github.com/matzehuels/qualmap/pkg/render/declutter"
	"github.com/matzehuels/qualmap/pkg/render/export"
	"github.com/matzehuels/qualmap/pkg/render/scale"
	"github.com/matzehuels/qualmap/pkg/render/scene"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800.0

	// DefaultIterations is the default number of label solver steps.
	DefaultIterations = declutter.DefaultIterations

	// DefaultPNGScale is the default raster scale factor.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG         = "svg"         // static export
	FormatInteractive = "interactive" // live canvas with pan/zoom script
	FormatPNG         = "png"
	FormatPDF         = "pdf"
	FormatJSON        = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:         true,
	FormatInteractive: true,
	FormatPNG:         true,
	FormatPDF:         true,
	FormatJSON:        true,
}

var formatExt = map[string]string{
	FormatSVG:         ".svg",
	FormatInteractive: ".interactive.svg",
	FormatPNG:         ".png",
	FormatPDF:         ".pdf",
	FormatJSON:        ".json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
type Options struct {
	// Load options
	Input string `json:"input,omitempty"`

	// Scene options
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Iterations int     `json:"iterations,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	HideAxes bool     `json:"hide_axes,omitempty"`
	Scale    float64  `json:"scale,omitempty"` // PNG scale factor

	// ExportHeight is the pixel height of static exports.
	ExportHeight float64 `json:"export_height,omitempty"`

	// Refresh bypasses cache reads; results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Dataset   *dataset.Dataset
	Scene     *scene.Scene
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime   time.Duration
	SceneTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid format: %q (must be one of: svg, interactive, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Filename returns the output file name for format, derived from base (an
// input path or a bare name). The extension of base is replaced.
func Filename(base, format string) string {
	if base == "" {
		base = "qualitative-map"
	}
	if i := strings.LastIndexByte(base, '.'); i > strings.LastIndexAny(base, `/\`) {
		base = base[:i]
	}
	return base + formatExt[format]
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidPath, "input workbook is required")
	}
	if err := errors.ValidateWorkbookPath(o.Input); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// SetSceneDefaults sets default values for scene construction.
func (o *Options) SetSceneDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	o.setLogger()
}

// ValidateForScene validates and sets defaults for scene construction.
func (o *Options) ValidateForScene() error {
	o.SetSceneDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "frame %gx%g must be positive", o.Width, o.Height)
	}
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must not be negative")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultPNGScale
	}
	if o.ExportHeight == 0 {
		o.ExportHeight = export.DefaultPixelHeight
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive")
	}
	if o.ExportHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "export height must be positive")
	}
	return ValidateFormats(o.Formats)
}

// Validate checks everything a full run needs.
func (o *Options) Validate() error {
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForScene(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// SceneInput builds the scene input for ds.
func (o *Options) SceneInput(ds *dataset.Dataset) scene.Input {
	return scene.Input{
		Dataset:    ds,
		Frame:      scale.Frame{Width: o.Width, Height: o.Height},
		Iterations: o.Iterations,
	}
}

// SceneKeyOpts returns cache key options for scene construction.
func (o *Options) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Width:      o.Width,
		Height:     o.Height,
		Iterations: o.Iterations,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Axes: !o.HideAxes}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	if format != FormatInteractive && format != FormatJSON {
		opts.ExportHeight = o.ExportHeight
	}
	return opts
}

// Exporter returns the static exporter for these options.
func (o *Options) Exporter() *export.Exporter {
	e := export.NewExporter()
	if o.ExportHeight > 0 {
		e.PixelHeight = o.ExportHeight
	}
	return e
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

