// Package export produces a static snapshot of a live canvas that does not
// depend on the current pan, zoom or legend placement.
//
// The export temporarily rearranges the canvas: the transform goes back to
// identity, the legend moves below the content, and the document frame is
// fitted to everything drawn. Every attribute touched is put back before
// Export returns, whatever the outcome, so exporting is observably
// read-only for the canvas.
package export

import (
	"github.com/matzehuels/qualmap/pkg/errors"
	"github.com/matzehuels/qualmap/pkg/render/canvas"
	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/sink"
	"github.com/matzehuels/qualmap/pkg/render/viewport"
)

// Defaults.
const (
	DefaultFilename    = "qualitative-map.svg"
	DefaultLegendGap   = 20.0
	DefaultFrameMargin = 20.0
	DefaultPixelHeight = 1200.0
)

// Serializer writes the rearranged canvas.
type Serializer func(sink.View) ([]byte, error)

// Exporter configures an export. The zero value is not usable; use
// [NewExporter].
type Exporter struct {
	LegendGap   float64
	FrameMargin float64
	PixelHeight float64
	Serialize   Serializer
}

// NewExporter returns an exporter with the default geometry, writing static
// SVG with the label font embedded.
func NewExporter() *Exporter {
	return &Exporter{
		LegendGap:   DefaultLegendGap,
		FrameMargin: DefaultFrameMargin,
		PixelHeight: DefaultPixelHeight,
		Serialize: func(v sink.View) ([]byte, error) {
			return sink.RenderSVG(v, sink.Static(), sink.WithEmbeddedFont())
		},
	}
}

// Result is a finished export.
type Result struct {
	Data     []byte
	Filename string
	Frame    geom.Rect // document coordinate frame
	Width    float64   // pixel width
	Height   float64   // pixel height
}

// Export snapshots c with the default exporter.
func Export(c *canvas.Canvas) (*Result, error) {
	return NewExporter().Export(c)
}

// Export snapshots c. It fails with EMPTY_SCENE when there is nothing to
// measure, and with EXPORT_FAILED when serialization fails. In every case c
// is left exactly as it was found.
func (e *Exporter) Export(c *canvas.Canvas) (res *Result, err error) {
	saved := c.State()
	defer c.Restore(saved)

	c.SetTransform(viewport.Identity)

	c.SetLegendVisible(false)
	content := c.ContentBounds()
	if content.Empty() {
		return nil, errors.New(errors.ErrCodeEmptyScene, "nothing to export: the scene has no drawable content")
	}

	lg := c.Scene().Legend
	if !lg.Empty() {
		c.SetLegendPos(geom.Pt(
			content.MaxX-lg.Local.MaxX,
			content.MaxY+e.LegendGap-lg.Local.MinY,
		))
		c.SetLegendVisible(true)
	}

	full := content.Union(c.LegendBounds())
	frame := full.Inset(-e.FrameMargin)
	c.SetViewBox(frame)

	h := e.PixelHeight
	w := h * frame.Width() / frame.Height()
	c.SetPixelSize(w, h)

	data, err := e.Serialize(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "serialize export")
	}
	return &Result{
		Data:     data,
		Filename: DefaultFilename,
		Frame:    frame,
		Width:    w,
		Height:   h,
	}, nil
}
