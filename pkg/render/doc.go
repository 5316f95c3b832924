// Package render converts SVG diagrams to other formats.
//
// [ToPDF] and [ToPNG] pipe SVG through the external rsvg-convert tool (from
// librsvg). The diagram sinks use them for PDF and PNG output:
//
//	svg := sink.RenderSVG(diagram)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// When rsvg-convert is missing both return a RENDERER_UNAVAILABLE error;
// [Available] checks up front.
package render
