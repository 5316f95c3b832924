// Package pipeline provides the load → layout → render pipeline of gentree.
//
// The CLI commands are thin wrappers around a [Runner]: it reads a forest,
// lays it out with the configured ordering strategy into a [sink.Diagram],
// renders the diagram in the requested formats and caches both stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Strategy: "poles",
//	    North:    "N", South: "S", Centre: "C",
//	    Formats:  []string{"svg", "graphml"},
//	}
//	f, err := runner.Load(ctx, "forest.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, f, opts)
//	svg := result.Artifacts["svg"]
//
// Options can also be read from a TOML, YAML or JSON file with [LoadConfig].
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gentree/pkg/cache"
	gerrors "github.com/matzehuels/gentree/pkg/errors"
	"github.com/matzehuels/gentree/pkg/layout"
	"github.com/matzehuels/gentree/pkg/lineage/transform"
	"github.com/matzehuels/gentree/pkg/ordering"
	"github.com/matzehuels/gentree/pkg/sink"
)

// Default values shared by the CLI and config files.
const (
	DefaultStrategy = "trackscheme"
	DefaultStyle    = "simple"
	DefaultEdgeMode = "straight"
	DefaultIdentity = "endpoint"
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz" // SVG drawn by Graphviz from the DOT output
	FormatGraphML  = "graphml"
	FormatPDF      = "pdf"
	FormatPNG      = "png"
)

// formatExtensions maps every supported format to its file extension.
var formatExtensions = map[string]string{
	FormatSVG:      ".svg",
	FormatJSON:     ".diagram.json",
	FormatDOT:      ".dot",
	FormatGraphviz: ".gv.svg",
	FormatGraphML:  ".graphml",
	FormatPDF:      ".pdf",
	FormatPNG:      ".png",
}

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatSVG, FormatJSON, FormatDOT, FormatGraphviz, FormatGraphML, FormatPDF, FormatPNG}
}

// Extension returns the output file extension for a format.
func Extension(format string) string {
	if ext, ok := formatExtensions[format]; ok {
		return ext
	}
	return "." + format
}

// Options contains all configuration for the pipeline. Zero values mean
// "use the default"; the Set*Defaults methods fill them in.
type Options struct {
	// Ordering
	Strategy   string              `json:"strategy,omitempty" toml:"strategy" yaml:"strategy,omitempty"`
	North      string              `json:"north,omitempty" toml:"north" yaml:"north,omitempty"`
	South      string              `json:"south,omitempty" toml:"south" yaml:"south,omitempty"`
	Centre     string              `json:"centre,omitempty" toml:"centre" yaml:"centre,omitempty"`
	AxisA      string              `json:"axis_a,omitempty" toml:"axis_a" yaml:"axis_a,omitempty"`
	AxisB      string              `json:"axis_b,omitempty" toml:"axis_b" yaml:"axis_b,omitempty"`
	Thresholds ordering.Thresholds `json:"thresholds" toml:"thresholds" yaml:"thresholds"`
	Trace      bool                `json:"trace,omitempty" toml:"trace" yaml:"trace,omitempty"` // log every comparison

	// Input
	Selection    []string                `json:"selection,omitempty" toml:"selection" yaml:"selection,omitempty"` // vertex IDs; empty means all
	PruneSolists bool                    `json:"prune_solists,omitempty" toml:"prune_solists" yaml:"prune_solists,omitempty"`
	Solists      transform.SolistOptions `json:"solists" toml:"solists" yaml:"solists"`
	Strict       bool                    `json:"strict,omitempty" toml:"strict" yaml:"strict,omitempty"` // fail on non-forest roots

	// Layout
	ColumnWidth float64  `json:"column_width,omitempty" toml:"column_width" yaml:"column_width,omitempty"`
	LineStep    float64  `json:"line_step,omitempty" toml:"line_step" yaml:"line_step,omitempty"`
	// BendOffsetY nil means the default; 0 bends at the daughter's own y.
	BendOffsetY *float64 `json:"bend_offset_y,omitempty" toml:"bend_offset_y" yaml:"bend_offset_y,omitempty"`
	NodeWidth   float64  `json:"node_width,omitempty" toml:"node_width" yaml:"node_width,omitempty"`
	NodeHeight  float64  `json:"node_height,omitempty" toml:"node_height" yaml:"node_height,omitempty"`
	NodeColor   uint32   `json:"node_color,omitempty" toml:"node_color" yaml:"node_color,omitempty"`
	EdgeMode    string   `json:"edge_mode,omitempty" toml:"edge_mode" yaml:"edge_mode,omitempty"`
	Identity    string   `json:"identity,omitempty" toml:"identity" yaml:"identity,omitempty"`

	// Render
	Formats  []string `json:"formats,omitempty" toml:"formats" yaml:"formats,omitempty"`
	Style    string   `json:"style,omitempty" toml:"style" yaml:"style,omitempty"`
	NoLabels bool     `json:"no_labels,omitempty" toml:"no_labels" yaml:"no_labels,omitempty"`
	Margin   float64  `json:"margin,omitempty" toml:"margin" yaml:"margin,omitempty"`
	Scale    float64  `json:"scale,omitempty" toml:"scale" yaml:"scale,omitempty"`

	// Refresh bypasses cached results.
	Refresh bool `json:"refresh,omitempty" toml:"refresh" yaml:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" yaml:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Layout    *LayoutOutput
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, ok := formatExtensions[f]; !ok {
			return gerrors.New(gerrors.ErrCodeInvalidFormat,
				"invalid format %q (must be one of: %s)", f, strings.Join(Formats(), ", "))
		}
	}
	return nil
}

// ValidateStyle checks that a style is known.
func ValidateStyle(style string) error {
	if _, ok := sink.StyleByName(style); !ok {
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "invalid style %q (must be one of: simple, mono)", style)
	}
	return nil
}

// SetLayoutDefaults fills in unset layout options.
func (o *Options) SetLayoutDefaults() {
	if kind, err := ordering.ParseKind(o.Strategy); err == nil {
		o.Strategy = kind.String()
	} else if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.ColumnWidth == 0 {
		o.ColumnWidth = layout.DefaultColumnWidth
	}
	if o.LineStep == 0 {
		o.LineStep = layout.DefaultLineStep
	}
	if o.BendOffsetY == nil {
		o.BendOffsetY = BendOffset(layout.DefaultBendOffsetY)
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = layout.DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = layout.DefaultNodeHeight
	}
	if o.NodeColor == 0 {
		o.NodeColor = layout.DefaultNodeColor
	}
	if o.EdgeMode == "" {
		o.EdgeMode = DefaultEdgeMode
	}
	if o.Identity == "" {
		o.Identity = DefaultIdentity
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets layout defaults and checks the layout options.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := o.OrderingStrategy(); err != nil {
		return err
	}
	cfg, err := o.LayoutConfig()
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// SetRenderDefaults fills in unset render options.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Margin == 0 {
		o.Margin = sink.DefaultMargin
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults and checks the render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Scale < 0 {
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "png scale must be positive, got %g", o.Scale)
	}
	return nil
}

// OrderingStrategy builds the strategy variant named by o.Strategy with its
// anchors and thresholds.
func (o *Options) OrderingStrategy() (ordering.Strategy, error) {
	kind, err := ordering.ParseKind(o.Strategy)
	if err != nil {
		return nil, err
	}
	switch kind {
	case ordering.KindAlphanumeric:
		return ordering.Alphanumeric{}, nil
	case ordering.KindPoles:
		return ordering.Poles{North: o.North, South: o.South, Centre: o.Centre, Thresholds: o.Thresholds}, nil
	case ordering.KindSlices:
		return ordering.Slices{North: o.North, South: o.South, Thresholds: o.Thresholds}, nil
	case ordering.KindTriangle:
		return ordering.Triangle{Centre: o.Centre, AxisA: o.AxisA, AxisB: o.AxisB, Thresholds: o.Thresholds}, nil
	}
	return ordering.TrackScheme{}, nil
}

// anchors returns the anchor labels the strategy uses, for cache keys.
// Unknown strategies keep every label so distinct runs never share a key.
func (o *Options) anchors() []string {
	kind, err := ordering.ParseKind(o.Strategy)
	if err != nil {
		return []string{o.North, o.South, o.Centre, o.AxisA, o.AxisB}
	}
	switch kind {
	case ordering.KindPoles:
		return []string{o.North, o.South, o.Centre}
	case ordering.KindSlices:
		return []string{o.North, o.South}
	case ordering.KindTriangle:
		return []string{o.Centre, o.AxisA, o.AxisB}
	}
	return nil
}

// strategyName is the canonical strategy name, or the raw one if unknown.
func (o *Options) strategyName() string {
	if kind, err := ordering.ParseKind(o.Strategy); err == nil {
		return kind.String()
	}
	return o.Strategy
}

// BendOffset returns a pointer to y, for [Options.BendOffsetY].
func BendOffset(y float64) *float64 {
	return &y
}

// bendOffset resolves [Options.BendOffsetY].
func (o *Options) bendOffset() float64 {
	if o.BendOffsetY == nil {
		return layout.DefaultBendOffsetY
	}
	return *o.BendOffsetY
}

// LayoutConfig converts the layout options.
func (o *Options) LayoutConfig() (layout.Config, error) {
	mode, err := layout.ParseEdgeMode(o.EdgeMode)
	if err != nil {
		return layout.Config{}, err
	}
	identity, err := layout.ParseNodeIdentity(o.Identity)
	if err != nil {
		return layout.Config{}, err
	}
	return layout.Config{
		ColumnWidth: o.ColumnWidth,
		LineStep:    o.LineStep,
		BendOffsetY: o.bendOffset(),
		NodeWidth:   o.NodeWidth,
		NodeHeight:  o.NodeHeight,
		NodeColor:   o.NodeColor,
		EdgeMode:    mode,
		Identity:    identity,
	}, nil
}

// DiagramKeyOpts returns cache key options for layout computation.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	cfg, _ := o.LayoutConfig()
	return cache.DiagramKeyOpts{
		Strategy:  fmt.Sprintf("%s/%+v/trace=%v", o.strategyName(), o.Thresholds.OrDefault(), o.Trace),
		Anchors:   o.anchors(),
		Selection: o.Selection,
		Layout: struct {
			Config  layout.Config
			Prune   bool
			Solists transform.SolistOptions
			Strict  bool
		}{cfg, o.PruneSolists, o.Solists, o.Strict},
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Labels: !o.NoLabels,
		Scale:  o.Scale,
		Margin: o.Margin,
	}
}
