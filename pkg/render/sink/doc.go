// Package sink serializes a displayed map.
//
// [RenderSVG] writes the canvas as an SVG document. By default it is the
// interactive form: an embedded script implements drag panning, wheel
// zooming, double-click reset and the axis toggle on the content layer. The
// [Static] option drops the script and prefixes an XML declaration, which is
// the form written by exports.
//
// [RenderJSON] writes the scene geometry for other tools.
//
// Both accept any [View], the read-only face of
// [github.com/matzehuels/qualmap/pkg/render/canvas.Canvas].
package sink
