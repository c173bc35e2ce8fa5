// Package render groups the output stages of doorpanels.
//
// Rendering never changes a layout: a [door.Result] is computed once and each
// sink draws it. The [sink] subpackage holds the SVG, PNG and JSON sinks and
// their shared options:
//
//	svg := sink.RenderSVG(res, sink.WithStyle(sink.StyleWood), sink.WithDimensions())
//	png, err := sink.RenderPNG(res, sink.WithScale(2))
//	data, err := sink.RenderJSON(res, sink.WithJSONIndent())
//
// Coordinates are door units with the origin at the top-left corner of the
// door. With dimensions enabled the canvas grows by a fixed margin on every
// side to make room for the labels.
//
// [door.Result]: github.com/matzehuels/doorpanels/pkg/door#Result
// [sink]: github.com/matzehuels/doorpanels/pkg/render/sink
package render
