package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gentree/pkg/ordering"
	"github.com/matzehuels/gentree/pkg/pipeline"
)

// compareCommand creates the compare command, which lays out one forest
// with several strategies side by side.
func (c *CLI) compareCommand() *cobra.Command {
	var strategies []string
	flags := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "compare [forest.json]",
		Short: "Compare the daughter orders of several strategies",
		Long: `Compare the daughter orders of several strategies.

The forest is laid out once per strategy, concurrently. For each strategy the
table lists how many divisions it orders differently from the first one.
Strategies that need anchors use the anchor flags shared by all of them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(cmd.Context(), args[0], c.options(cmd, &flags), strategies)
		},
	}

	cmd.Flags().StringSliceVar(&strategies, "strategies", []string{
		ordering.KindTrackScheme.String(),
		ordering.KindAlphanumeric.String(),
	}, "strategies to compare (comma-separated, first is the reference)")
	addOrderingFlags(cmd, &flags)
	addInputFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runCompare(ctx context.Context, input string, opts pipeline.Options, strategies []string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	f, err := loadForest(ctx, runner, input)
	if err != nil {
		return err
	}

	results, err := pipeline.Compare(ctx, f, opts, strategies)
	if err != nil {
		return err
	}
	fmt.Println(renderComparison(results))
	return nil
}

// renderComparison formats the results as a table.
func renderComparison(results []pipeline.Comparison) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(results))
	for i, r := range results {
		differs := strconv.Itoa(r.Differs)
		if i == 0 {
			differs = "reference"
		}
		notes := []string{}
		if r.Degenerate {
			notes = append(notes, "degenerate anchors")
		}
		if len(r.Failed) > 0 {
			notes = append(notes, fmt.Sprintf("%d roots skipped", len(r.Failed)))
		}
		rows = append(rows, []string{
			r.Strategy,
			strconv.Itoa(r.Nodes),
			strconv.Itoa(r.Divisions),
			differs,
			r.Duration.Round(time.Microsecond).String(),
			strings.Join(notes, ", "),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Strategy", "Nodes", "Divisions", "Reordered", "Time", "Notes").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 3 && row < len(results) && row > 0 && results[row].Differs > 0 {
				return cellStyle.Foreground(colorYellow)
			}
			return cellStyle
		})
	return t.String()
}
