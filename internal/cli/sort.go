package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/lineage/transform"
	"github.com/matzehuels/gentree/pkg/ordering"
	"github.com/matzehuels/gentree/pkg/pipeline"
)

// sortCommand creates the sort command for inspecting and persisting a
// strategy's daughter order.
func (c *CLI) sortCommand() *cobra.Command {
	var (
		vertex  string
		markers string
		persist string
	)
	flags := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "sort [forest.json]",
		Short: "Explain or persist the daughter order of a strategy",
		Long: `Explain or persist the daughter order of a strategy.

With --vertex, every pairwise decision taken while sorting the daughters of
that division is printed. With --markers, the strategy's anchor points are
added to a copy of the forest as isolated vertices, so they can be inspected
in a viewer. With --persist, the daughter order is stored in a copy of the
forest, which then lays out the same way with the trackscheme strategy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if vertex == "" && markers == "" && persist == "" {
				return fmt.Errorf("nothing to do: set --vertex, --markers or --persist")
			}
			opts := c.options(cmd, &flags)
			return c.runSort(cmd.Context(), args[0], opts, vertex, markers, persist)
		},
	}

	cmd.Flags().StringVar(&vertex, "vertex", "", "label (or ID) of the division to explain")
	cmd.Flags().StringVar(&markers, "markers", "", "write the forest with anchor markers to this file")
	cmd.Flags().StringVar(&persist, "persist", "", "write the forest with sorted daughters to this file")
	addOrderingFlags(cmd, &flags)
	cmd.Flags().StringSliceVar(&flags.Selection, "select", nil, "sort only among these vertex IDs (comma-separated)")

	return cmd
}

func (c *CLI) runSort(ctx context.Context, input string, opts pipeline.Options, vertex, markers, persist string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	f, err := loadForest(ctx, runner, input)
	if err != nil {
		return err
	}

	if vertex != "" {
		ex, err := pipeline.Explain(f, vertex, opts)
		if err != nil {
			return err
		}
		printExplanation(ex)
	}

	if markers != "" {
		points, err := pipeline.Markers(f, opts)
		if err != nil {
			return err
		}
		if len(points) == 0 {
			printWarning("Strategy %s has no anchor points", opts.Strategy)
		} else {
			marked, err := transform.AddMarkers(f, points)
			if err != nil {
				return err
			}
			if err := lineage.WriteForestFile(markers, marked); err != nil {
				return fmt.Errorf("write %s: %w", markers, err)
			}
			printSuccess("Added %d markers", len(points))
			printFile(markers)
		}
	}

	if persist != "" {
		sorted, n, err := pipeline.SortForest(f, opts)
		if err != nil {
			return err
		}
		if err := lineage.WriteForestFile(persist, sorted); err != nil {
			return fmt.Errorf("write %s: %w", persist, err)
		}
		printSuccess("Reordered %d divisions", n)
		printFile(persist)
	}
	return nil
}

func printExplanation(ex *pipeline.Explanation) {
	printKeyValue("Division", ex.Division.Label+" ("+ex.Division.ID+")")
	printKeyValue("Before", vertexLabels(ex.Before))
	printKeyValue("After", vertexLabels(ex.After))
	if len(ex.Comparisons) == 0 {
		printDetail("graph order kept, no comparisons")
		return
	}
	printNewline()
	for _, cmp := range ex.Comparisons {
		printInfo("%s vs %s: %s", cmp.First.Label, cmp.Second.Label, describeDecision(cmp))
	}
	for _, m := range ex.Markers {
		printDetail("%s at (%.2f, %.2f, %.2f)", m.Name, m.Pos.X, m.Pos.Y, m.Pos.Z)
	}
}

func describeDecision(cmp ordering.Comparison) string {
	d := cmp.Decision
	first := cmp.First.Label
	switch {
	case d.Order > 0:
		first = cmp.Second.Label
	case d.Order == 0:
		first = "tie"
	}
	s := fmt.Sprintf("%s first (%s", first, d.Reason)
	if d.LayerAngle != 0 {
		s += fmt.Sprintf(", layer %.1f°", d.LayerAngle)
	}
	if d.Axis != "" {
		s += fmt.Sprintf(", axis %s %.1f°", d.Axis, d.AxisAngle)
	}
	return s + ")"
}

func vertexLabels(vs []*lineage.Vertex) string {
	labels := make([]string, len(vs))
	for i, v := range vs {
		labels[i] = v.Label
	}
	return strings.Join(labels, ", ")
}
