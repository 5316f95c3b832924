package pipeline

import (
	"errors"
	"slices"

	"github.com/charmbracelet/log"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
	"github.com/matzehuels/gentree/pkg/layout"
	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/lineage/transform"
	"github.com/matzehuels/gentree/pkg/ordering"
	"github.com/matzehuels/gentree/pkg/sink"
)

// LayoutOutput is the cached result of the layout stage.
type LayoutOutput struct {
	Strategy   string       `json:"strategy"`
	Diagram    sink.Diagram `json:"diagram"`
	Stats      layout.Stats `json:"stats"`
	Failed     []string     `json:"failed,omitempty"` // roots skipped as non-forest
	Pruned     []string     `json:"pruned,omitempty"` // solists removed before layout
	Degenerate bool         `json:"degenerate"`       // anchors unusable, label order used
}

// Warning returns the DEGENERATE_GEOMETRY error behind
// [LayoutOutput.Degenerate], or nil. It survives the layout cache.
func (o *LayoutOutput) Warning() error {
	if o == nil || !o.Degenerate {
		return nil
	}
	return gerrors.New(gerrors.ErrCodeDegenerateGeometry,
		"%s anchors do not span usable axes, daughters are ordered by label", o.Strategy)
}

// Layout lays out f with the configured strategy. f is not modified.
//
// Anchors are looked up in f before solists are pruned, so isolated anchor
// vertices keep working. Roots that turn out not to be trees are skipped
// and listed in [LayoutOutput.Failed]; with Options.Strict they fail the
// layout instead.
func Layout(f *lineage.Forest, opts Options) (*LayoutOutput, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	out := &LayoutOutput{Strategy: opts.Strategy}

	sorter, err := resolveSorter(f, opts)
	if err != nil {
		return nil, err
	}
	if err := ordering.GeometryError(sorter); err != nil {
		out.Degenerate = true
		logger.Warn("falling back to label order", "strategy", opts.Strategy, "err", err)
	}

	work := f
	if opts.PruneSolists {
		work, out.Pruned = transform.PruneSolists(f, opts.Solists)
		logger.Debug("pruned solists", "removed", len(out.Pruned))
	}

	elig, err := selection(work, opts.Selection)
	if err != nil {
		return nil, err
	}
	roots := work.Roots(elig)
	logger.Debug("found roots", "count", len(roots))

	rec := sink.NewRecorder()
	var s layout.Sink = rec
	if logger.GetLevel() <= log.DebugLevel {
		s = sink.Tee(rec, sink.Logging(logger))
	}

	cfg, _ := opts.LayoutConfig()
	res, err := layout.Walk(work, roots, elig, sorter, s, cfg)
	out.Stats = res.Stats
	out.Failed = res.Failed
	out.Diagram = rec.Diagram()
	if err != nil {
		if opts.Strict || !onlyNonForest(err) {
			return nil, err
		}
		for _, id := range res.Failed {
			logger.Warn("skipped root: lineage merges below it", "root", id)
		}
	}
	return out, nil
}

// onlyNonForest reports whether every error joined in err is a
// NON_FOREST_INPUT error.
func onlyNonForest(err error) bool {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if !onlyNonForest(e) {
				return false
			}
		}
		return true
	}
	return gerrors.GetCode(err) == gerrors.ErrCodeNonForestInput
}

func resolveSorter(f *lineage.Forest, opts Options) (ordering.Sorter, error) {
	strategy, err := opts.OrderingStrategy()
	if err != nil {
		return nil, err
	}
	var sortOpts []ordering.Option
	if opts.Trace {
		sortOpts = append(sortOpts, ordering.WithLogger(opts.Logger))
	}
	return ordering.Resolve(strategy, f.FindByLabel, sortOpts...)
}

// selection checks that every selected ID exists and returns the
// eligibility for it.
func selection(f *lineage.Forest, ids []string) (lineage.Eligibility, error) {
	var missing []error
	for _, id := range ids {
		if _, ok := f.Vertex(id); !ok {
			missing = append(missing, gerrors.New(gerrors.ErrCodeVertexNotFound, "selected vertex %q not in forest", id))
		}
	}
	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}
	return lineage.Selection(ids...), nil
}

// Explanation is the comparator trace for the daughters of one division.
type Explanation struct {
	Division    *lineage.Vertex
	Before      []*lineage.Vertex
	After       []*lineage.Vertex
	Comparisons []ordering.Comparison
	Markers     []ordering.MarkerPoint
}

// Explain sorts the daughters of the vertex labelled label with the
// configured strategy and reports every pairwise decision. Strategies
// without a comparator (trackscheme) report no comparisons.
func Explain(f *lineage.Forest, label string, opts Options) (*Explanation, error) {
	opts.SetLayoutDefaults()
	v, ok := f.FindByLabel(label)
	if !ok {
		if v, ok = f.Vertex(label); !ok {
			return nil, gerrors.New(gerrors.ErrCodeVertexNotFound, "no vertex labelled %q", label)
		}
	}
	sorter, err := resolveSorter(f, opts)
	if err != nil {
		return nil, err
	}

	ex := &Explanation{Division: v, Before: f.Later(v.ID)}
	ex.After = slices.Clone(ex.Before)
	sorter.Sort(ex.After)
	if cs, ok := sorter.(*ordering.ComparatorSorter); ok {
		ex.Comparisons = cs.Explain(ex.Before)
		ex.Markers = cs.Markers()
	}
	return ex, nil
}

// Markers returns the reference points of the configured strategy, or nil
// for strategies without anchors.
func Markers(f *lineage.Forest, opts Options) ([]ordering.MarkerPoint, error) {
	opts.SetLayoutDefaults()
	sorter, err := resolveSorter(f, opts)
	if err != nil {
		return nil, err
	}
	if m, ok := sorter.(ordering.Marker); ok {
		return m.Markers(), nil
	}
	return nil, nil
}

// SortForest stores the configured strategy's daughter order in a copy of
// f, so that the copy lays out identically with the trackscheme strategy.
// It returns the copy and the number of divisions reordered.
func SortForest(f *lineage.Forest, opts Options) (*lineage.Forest, int, error) {
	opts.SetLayoutDefaults()
	sorter, err := resolveSorter(f, opts)
	if err != nil {
		return nil, 0, err
	}
	elig, err := selection(f, opts.Selection)
	if err != nil {
		return nil, 0, err
	}
	out := f.Clone()
	n, err := transform.SortDaughters(out, elig, sorter)
	if err != nil {
		return nil, 0, gerrors.Wrap(gerrors.ErrCodeInternal, err, "persist daughter order")
	}
	return out, n, nil
}
