package sink

import (
	"context"

	"github.com/matzehuels/gentree/pkg/render"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	svgOpts []SVGOption
}

// DefaultPNGScale renders at twice the diagram size.
const DefaultPNGScale = 2.0

// WithScale sets the PNG scale factor.
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithSVGOptions passes options to the underlying SVG rendering.
func WithSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = append(r.svgOpts, opts...) }
}

// RenderPDF renders the diagram to SVG and converts it to PDF.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, d Diagram, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(d, opts...))
}

// RenderPNG renders the diagram to SVG and converts it to PNG.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, d Diagram, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultPNGScale}
	for _, opt := range opts {
		opt(&r)
	}
	return render.ToPNG(ctx, RenderSVG(d, r.svgOpts...), r.scale)
}
