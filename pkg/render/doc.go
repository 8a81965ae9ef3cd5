// Package render turns a normalized dataset into a qualitative map.
//
// # Overview
//
// The rendering engine is split into small subpackages, leaves first:
//
//   - [scale]: position, radius, stroke and color mappings
//   - [envelope]: smoothed convex hulls around groups
//   - [route]: curved, de-duplicated relation links
//   - [marker]: disks and multi-group pies
//   - [declutter]: collision-free label placement
//   - [legend]: the group legend
//   - [scene]: the pure composition of all of the above
//   - [canvas] and [viewport]: live interactive state
//   - [export]: view-independent static snapshots
//   - [sink]: SVG and JSON serialization
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	res, err := export.Export(c)
//	pdf, err := render.ToPDF(ctx, res.Data)
//	png, err := render.ToPNG(ctx, res.Data, 2.0)  // 2x scale
//
// [scale]: github.com/matzehuels/qualmap/pkg/render/scale
// [envelope]: github.com/matzehuels/qualmap/pkg/render/envelope
// [route]: github.com/matzehuels/qualmap/pkg/render/route
// [marker]: github.com/matzehuels/qualmap/pkg/render/marker
// [declutter]: github.com/matzehuels/qualmap/pkg/render/declutter
// [legend]: github.com/matzehuels/qualmap/pkg/render/legend
// [scene]: github.com/matzehuels/qualmap/pkg/render/scene
// [canvas]: github.com/matzehuels/qualmap/pkg/render/canvas
// [viewport]: github.com/matzehuels/qualmap/pkg/render/viewport
// [export]: github.com/matzehuels/qualmap/pkg/render/export
// [sink]: github.com/matzehuels/qualmap/pkg/render/sink
package render
