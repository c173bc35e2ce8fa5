// Package sink renders a computed door layout into output formats.
//
// A "sink" consumes a [door.Result] and never recomputes geometry: panel
// extents, the peephole position and its conflicts are taken as-is. Three
// sinks are provided:
//
//   - SVG: vector drawing with optional dimension annotations
//   - PNG: raster drawing via github.com/fogleman/gg
//   - JSON: the result plus the drawn rectangles, for external tools
//
// Basic usage:
//
//	svg := sink.RenderSVG(res,
//	    sink.WithStyle(sink.StyleWood),
//	    sink.WithDimensions(),
//	)
//	png, err := sink.RenderPNG(res, sink.WithScale(2))
//
// Panels whose conflict with the peephole is a warning are drawn in the
// style's warning colour; the peephole itself turns red when any conflict is
// reported.
//
// Degenerate results (negative panel width, zero-height panels, a zero-sized
// door) render without error. Negative sizes are clamped to zero and
// non-finite coordinates are drawn at zero.
//
// [door.Result]: github.com/matzehuels/doorpanels/pkg/door.Result
package sink
