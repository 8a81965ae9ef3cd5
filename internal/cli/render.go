package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	qio "github.com/matzehuels/qualmap/pkg/io"
	"github.com/matzehuels/qualmap/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	sceneFlags
	output  string  // output file (single format) or base path (several)
	formats string  // comma-separated output formats
	scale   float64 // PNG scale factor
	refresh bool    // ignore cached scenes and artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [workbook]",
		Short: "Render a workbook to SVG, PNG, PDF or JSON",
		Long: `Render a workbook (.json, .yaml, .yml or .toml with Nodes, Links and an
optional Settings table) to one or more output files.

Formats:
  svg          static export, framed around the content with the legend below
  interactive  live SVG with pan, zoom, reset and axis toggle
  png, pdf     conversions of the static export (requires rsvg-convert)
  json         scene geometry and view state`,
		Example: `  qualmap render fishmarket.yaml
  qualmap render fishmarket.yaml -f svg,png -o out/market
  qualmap render fishmarket.yaml --no-axes --iterations 600`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.baseOptions(args[0])
			applyFlags(cmd, &popts, opts.sceneFlags)
			popts.Formats = parseFormats(opts.formats)
			popts.Scale = opts.scale
			popts.Refresh = opts.refresh
			if err := pipeline.ValidateFormats(popts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), popts, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), interactive, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultPNGScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, opts renderOpts) error {
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(popts.Input)+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess("Rendered " + filepath.Base(popts.Input))

	st := result.Scene.Stats
	printStats(st.Entities, st.Links, result.CacheInfo.SceneHit && result.CacheInfo.RenderHit)
	if dropped := st.Unresolved + st.SelfLoops; dropped > 0 {
		printWarning("%d relation(s) dropped (unknown endpoint or self relation)", dropped)
	}
	for _, skip := range st.SkippedEnvelopes {
		printDetail("no envelope for %s: %s", skip.Group, skip.Reason)
	}

	for _, format := range popts.Formats {
		path := outputPath(opts.output, popts.Input, format, len(popts.Formats))
		if err := qio.ExportFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// outputPath picks the file for one format. A single format writes exactly
// to --output when given; otherwise --output (or the input) is a base path.
func outputPath(output, input, format string, count int) string {
	if output == "" {
		return pipeline.Filename(input, format)
	}
	if count == 1 && hasFormatExt(output) {
		return output
	}
	return pipeline.Filename(output, format)
}

func hasFormatExt(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return pipeline.ValidFormats[ext]
}
