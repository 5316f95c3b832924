package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/lineage/transform"
	"github.com/matzehuels/gentree/pkg/pipeline"
)

// pruneCommand creates the prune command, which removes solists from a
// forest file.
func (c *CLI) pruneCommand() *cobra.Command {
	var output string
	flags := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "prune [forest.json]",
		Short: "Remove isolated vertices from a tracking graph",
		Long: `Remove isolated vertices (solists) from a tracking graph.

Tracking tools often leave short-lived detections without any links. By
default only solists at the last time point with numeric labels are removed;
see --last-only and --numeric-only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			return c.runPrune(cmd.Context(), args[0], opts.Solists, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.pruned.json)")
	addInputFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runPrune(ctx context.Context, input string, solists transform.SolistOptions, output string) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	f, err := loadForest(ctx, runner, input)
	if err != nil {
		return err
	}

	pruned, removed := transform.PruneSolists(f, solists)
	c.Logger.Debug("pruned solists", "removed", removed)

	if output == "" {
		output = basePath(input) + ".pruned.json"
	}
	if err := lineage.WriteForestFile(output, pruned); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Removed %d solists", len(removed))
	printFile(output)
	printCounts(tally{pruned.VertexCount(), "vertices"}, tally{pruned.EdgeCount(), "edges"})
	return nil
}
