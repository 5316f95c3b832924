package pipeline

import (
	"context"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/sink"
)

// Comparison summarizes the layout one strategy produces.
type Comparison struct {
	Strategy   string
	Nodes      int
	Divisions  int
	Differs    int // divisions whose daughter order differs from the first strategy
	Failed     []string
	Degenerate bool
	Duration   time.Duration
	orders     map[string][]string
}

// Compare lays out f once per strategy, concurrently, and reports how the
// daughter orders differ from the first strategy's. Layout options other
// than the strategy are shared; anchors that a strategy needs must be set
// in opts.
func Compare(ctx context.Context, f *lineage.Forest, opts Options, strategies []string) ([]Comparison, error) {
	results := make([]Comparison, len(strategies))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range strategies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o := opts
			o.Strategy = name
			start := time.Now()
			out, err := Layout(f, o)
			if err != nil {
				return err
			}
			c := Comparison{
				Strategy:   out.Strategy,
				Nodes:      out.Stats.Nodes,
				Divisions:  out.Stats.Divisions,
				Failed:     out.Failed,
				Degenerate: out.Degenerate,
				Duration:   time.Since(start),
				orders:     daughterOrders(out.Diagram),
			}
			mu.Lock()
			results[i] = c
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(results) > 0 {
		base := results[0].orders
		for i := range results {
			for id, order := range results[i].orders {
				if !slices.Equal(order, base[id]) {
					results[i].Differs++
				}
			}
		}
	}
	return results, nil
}

// daughterOrders returns, for every node with two or more outgoing edges,
// its children sorted left to right.
func daughterOrders(d sink.Diagram) map[string][]string {
	x := make(map[string]float64, len(d.Nodes))
	for _, n := range d.Nodes {
		x[n.ID] = n.X
	}
	children := make(map[string][]string)
	for _, e := range d.Edges {
		children[e.From] = append(children[e.From], e.To)
	}
	orders := make(map[string][]string)
	for from, to := range children {
		if len(to) < 2 {
			continue
		}
		slices.SortStableFunc(to, func(a, b string) int {
			switch {
			case x[a] < x[b]:
				return -1
			case x[a] > x[b]:
				return 1
			}
			return 0
		})
		orders[from] = to
	}
	return orders
}
