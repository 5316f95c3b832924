package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gentree/pkg/layout"
	"github.com/matzehuels/gentree/pkg/lineage/transform"
	"github.com/matzehuels/gentree/pkg/ordering"
	"github.com/matzehuels/gentree/pkg/pipeline"
)

// flagSetters copies one flag's value from the flag-bound options into the
// merged options. Only flags the user set are copied, so config file
// values survive unless overridden.
var flagSetters = map[string]func(dst, src *pipeline.Options){
	// Ordering
	"strategy":     func(d, s *pipeline.Options) { d.Strategy = s.Strategy },
	"north":        func(d, s *pipeline.Options) { d.North = s.North },
	"south":        func(d, s *pipeline.Options) { d.South = s.South },
	"centre":       func(d, s *pipeline.Options) { d.Centre = s.Centre },
	"axis-a":       func(d, s *pipeline.Options) { d.AxisA = s.AxisA },
	"axis-b":       func(d, s *pipeline.Options) { d.AxisB = s.AxisB },
	"inner-cutoff": func(d, s *pipeline.Options) { d.Thresholds.InnerLayerCutoffDeg = s.Thresholds.InnerLayerCutoffDeg },
	"outer-cutoff": func(d, s *pipeline.Options) { d.Thresholds.OuterLayerCutoffDeg = s.Thresholds.OuterLayerCutoffDeg },
	"lr-cutoff": func(d, s *pipeline.Options) {
		d.Thresholds.LeftRightToUpDownCutoffDeg = s.Thresholds.LeftRightToUpDownCutoffDeg
	},
	"trace": func(d, s *pipeline.Options) { d.Trace = s.Trace },

	// Input
	"select":        func(d, s *pipeline.Options) { d.Selection = s.Selection },
	"prune-solists": func(d, s *pipeline.Options) { d.PruneSolists = s.PruneSolists },
	"last-only":     func(d, s *pipeline.Options) { d.Solists.LastTimepointOnly = s.Solists.LastTimepointOnly },
	"numeric-only":  func(d, s *pipeline.Options) { d.Solists.NumericLabelsOnly = s.Solists.NumericLabelsOnly },
	"strict":        func(d, s *pipeline.Options) { d.Strict = s.Strict },

	// Layout
	"column-width": func(d, s *pipeline.Options) { d.ColumnWidth = s.ColumnWidth },
	"line-step":    func(d, s *pipeline.Options) { d.LineStep = s.LineStep },
	"bend-offset":  func(d, s *pipeline.Options) { d.BendOffsetY = s.BendOffsetY },
	"node-width":   func(d, s *pipeline.Options) { d.NodeWidth = s.NodeWidth },
	"node-height":  func(d, s *pipeline.Options) { d.NodeHeight = s.NodeHeight },
	"node-color":   func(d, s *pipeline.Options) { d.NodeColor = s.NodeColor },
	"edges":        func(d, s *pipeline.Options) { d.EdgeMode = s.EdgeMode },
	"identity":     func(d, s *pipeline.Options) { d.Identity = s.Identity },

	// Render
	"style":     func(d, s *pipeline.Options) { d.Style = s.Style },
	"no-labels": func(d, s *pipeline.Options) { d.NoLabels = s.NoLabels },
	"margin":    func(d, s *pipeline.Options) { d.Margin = s.Margin },
	"scale":     func(d, s *pipeline.Options) { d.Scale = s.Scale },
	"refresh":   func(d, s *pipeline.Options) { d.Refresh = s.Refresh },
}

// overlayFlags applies every flag the user set on cmd to dst.
func overlayFlags(cmd *cobra.Command, dst, src *pipeline.Options) {
	for name, set := range flagSetters {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			set(dst, src)
		}
	}
}

// addOrderingFlags registers the strategy, anchor and threshold flags.
func addOrderingFlags(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	fs.StringVarP(&opts.Strategy, "strategy", "s", pipeline.DefaultStrategy,
		"ordering strategy: trackscheme, alphanumeric, poles, slices, triangle")
	fs.StringVar(&opts.North, "north", "", "label of the north pole anchor (poles, slices)")
	fs.StringVar(&opts.South, "south", "", "label of the south pole anchor (poles, slices)")
	fs.StringVar(&opts.Centre, "centre", "", "label of the centre anchor (poles, triangle)")
	fs.StringVar(&opts.AxisA, "axis-a", "", "label of the first axis anchor (triangle)")
	fs.StringVar(&opts.AxisB, "axis-b", "", "label of the second axis anchor (triangle)")
	fs.Float64Var(&opts.Thresholds.InnerLayerCutoffDeg, "inner-cutoff", ordering.DefaultInnerLayerCutoffDeg, "inner layering cutoff in degrees")
	fs.Float64Var(&opts.Thresholds.OuterLayerCutoffDeg, "outer-cutoff", ordering.DefaultOuterLayerCutoffDeg, "outer layering cutoff in degrees")
	fs.Float64Var(&opts.Thresholds.LeftRightToUpDownCutoffDeg, "lr-cutoff", ordering.DefaultLeftRightToUpDownCutoffDeg, "left/right to up/down cutoff in degrees")
	fs.BoolVar(&opts.Trace, "trace", false, "log every pairwise comparison (needs --verbose)")
}

// addInputFlags registers the selection and solist flags.
func addInputFlags(cmd *cobra.Command, opts *pipeline.Options) {
	defaults := transform.DefaultSolistOptions()
	fs := cmd.Flags()
	fs.StringSliceVar(&opts.Selection, "select", nil, "lay out only these vertex IDs (comma-separated)")
	fs.BoolVar(&opts.PruneSolists, "prune-solists", false, "remove isolated vertices before layout")
	fs.BoolVar(&opts.Solists.LastTimepointOnly, "last-only", defaults.LastTimepointOnly, "prune only solists at the last time point")
	fs.BoolVar(&opts.Solists.NumericLabelsOnly, "numeric-only", defaults.NumericLabelsOnly, "prune only solists with numeric labels")
	fs.BoolVar(&opts.Strict, "strict", false, "fail when a root is not a tree instead of skipping it")
}

// addLayoutFlags registers the layout constant flags.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	fs.Float64Var(&opts.ColumnWidth, "column-width", layout.DefaultColumnWidth, "horizontal footprint of a leaf")
	fs.Float64Var(&opts.LineStep, "line-step", layout.DefaultLineStep, "vertical distance between generations")
	fs.Var(optionalFloat{&opts.BendOffsetY}, "bend-offset",
		"bend position above the daughter for bent edges, default "+strconv.FormatFloat(layout.DefaultBendOffsetY, 'g', -1, 64))
	fs.Float64Var(&opts.NodeWidth, "node-width", layout.DefaultNodeWidth, "node width")
	fs.Float64Var(&opts.NodeHeight, "node-height", layout.DefaultNodeHeight, "node height")
	fs.Uint32Var(&opts.NodeColor, "node-color", layout.DefaultNodeColor, "colour of vertices without their own colour (0xRRGGBB)")
	fs.StringVar(&opts.EdgeMode, "edges", pipeline.DefaultEdgeMode, "edge drawing: straight, rectangular, bent")
	fs.StringVar(&opts.Identity, "identity", pipeline.DefaultIdentity, "chain node identity: endpoint, chain-head")
}

// optionalFloat is a float flag bound to a pointer that stays nil until the
// flag is set, so an explicit 0 is distinguishable from the default.
type optionalFloat struct{ p **float64 }

func (f optionalFloat) String() string {
	if f.p == nil || *f.p == nil {
		return ""
	}
	return strconv.FormatFloat(**f.p, 'g', -1, 64)
}

func (f optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f.p = &v
	return nil
}

func (f optionalFloat) Type() string { return "float" }
