package pipeline

import (
	"context"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
	"github.com/matzehuels/gentree/pkg/sink"
)

// RenderFormat renders one output format of a laid-out diagram.
func RenderFormat(ctx context.Context, out *LayoutOutput, format string, opts Options) ([]byte, error) {
	d := out.Diagram
	svgOpts := buildSVGOptions(opts)

	switch format {
	case FormatSVG:
		return sink.RenderSVG(d, svgOpts...), nil
	case FormatJSON:
		return sink.RenderJSON(d, sink.WithJSONStrategy(out.Strategy))
	case FormatDOT:
		return []byte(sink.ToDOT(d)), nil
	case FormatGraphviz:
		return sink.RenderGraphviz(ctx, d, "svg")
	case FormatGraphML:
		return sink.RenderGraphML(d)
	case FormatPDF:
		return sink.RenderPDF(ctx, d, svgOpts...)
	case FormatPNG:
		return sink.RenderPNG(ctx, d, sink.WithScale(opts.Scale), sink.WithSVGOptions(svgOpts...))
	}
	return nil, gerrors.New(gerrors.ErrCodeInvalidFormat, "unsupported format %q", format)
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithLabels(!opts.NoLabels),
		sink.WithMargin(opts.Margin),
	}
	if style, ok := sink.StyleByName(opts.Style); ok {
		svgOpts = append(svgOpts, sink.WithStyle(style))
	}
	return svgOpts
}
