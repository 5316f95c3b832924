package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gentree/pkg/pipeline"
	"github.com/matzehuels/gentree/pkg/sink"
)

// layoutCommand creates the layout command for computing diagram geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	flags := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [forest.json]",
		Short: "Compute a genealogy diagram from a tracking graph",
		Long: `Compute a genealogy diagram from a tracking graph.

The layout command takes a forest.json file and computes the position of
every node and edge. The output is a diagram.json file (same format as
'render -f json') that can be rendered to SVG, GraphML, PNG or PDF with the
'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], c.options(cmd, &flags), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.diagram.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.Refresh, "refresh", false, "ignore cached results")
	addOrderingFlags(cmd, &flags)
	addInputFlags(cmd, &flags)
	addLayoutFlags(cmd, &flags)

	return cmd
}

// runLayout loads the forest, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	f, err := loadForest(ctx, runner, input)
	if err != nil {
		return err
	}

	spinner := c.spinner(ctx, fmt.Sprintf("Computing %s layout...", opts.Strategy))
	spinner.Start()

	out, cacheHit, err := runner.LayoutWithCacheInfo(ctx, f, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(out.Diagram, sink.WithJSONStrategy(out.Strategy))
	if err != nil {
		return err
	}
	outputPath := output
	if outputPath == "" {
		outputPath = basePath(input) + pipeline.Extension(pipeline.FormatJSON)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	reportLayout(out)
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(cacheHit, layoutTallies(out.Stats)...)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
