package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/qualmap/pkg/render"
	"github.com/matzehuels/qualmap/pkg/render/canvas"
	"github.com/matzehuels/qualmap/pkg/render/export"
	"github.com/matzehuels/qualmap/pkg/render/scene"
	"github.com/matzehuels/qualmap/pkg/render/sink"
)

// Render generates output artifacts for sc in the requested formats.
func Render(ctx context.Context, sc *scene.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	c := canvas.New(sc)
	c.Viewport().SetAxesVisible(!opts.HideAxes)
	return RenderCanvas(ctx, c, opts.Exporter(), opts.Formats, opts.Scale)
}

// RenderCanvas serializes the live state of c. Static formats go through
// the export normalizer, so they ignore the current pan and zoom; the
// interactive SVG and the JSON dump reflect it.
func RenderCanvas(ctx context.Context, c *canvas.Canvas, exp *export.Exporter, formats []string, scale float64) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))

	var static []byte
	exportSVG := func() ([]byte, error) {
		if static != nil {
			return static, nil
		}
		res, err := exp.Export(c)
		if err != nil {
			return nil, err
		}
		static = res.Data
		return static, nil
	}

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = exportSVG()
		case FormatInteractive:
			data, err = sink.RenderSVG(c)
		case FormatJSON:
			data, err = sink.RenderJSON(c)
		case FormatPNG:
			if data, err = exportSVG(); err == nil {
				data, err = render.ToPNG(ctx, data, scale)
			}
		case FormatPDF:
			if data, err = exportSVG(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
