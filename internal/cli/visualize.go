package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gentree/pkg/pipeline"
	"github.com/matzehuels/gentree/pkg/sink"
)

// visualizeCommand creates the visualize command for rendering from a diagram.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	flags := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [diagram.json]",
		Short: "Render a computed diagram",
		Long: `Render a computed diagram.

The visualize command takes a diagram.json file (produced by 'layout') and
renders it to SVG, DOT, GraphML, PNG or PDF. The diagram contains all
positioning information, so this step is purely about rendering.

Use 'render' as a shortcut to go directly from forest.json to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addRenderFlags(cmd, &flags, &formatsStr)

	return cmd
}

// runVisualize loads the diagram and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	file, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open diagram %s: %w", input, err)
	}
	d, err := sink.ReadDiagram(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := c.spinner(ctx, "Rendering diagram...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, &pipeline.LayoutOutput{Diagram: d}, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		tallies:   []tally{{len(d.Nodes), "nodes"}, {len(d.Edges), "edges"}},
		cacheHit:  cacheHit,
	})
}
