package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gentree/pkg/pipeline"
	"github.com/matzehuels/gentree/pkg/sink"
)

// renderCommand creates the render command (layout + visualize in one step).
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	flags := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [forest.json]",
		Short: "Lay out a tracking graph and render it",
		Long: `Lay out a tracking graph and render it in one step.

This is a shortcut for 'layout' followed by 'visualize'. Several formats can
be requested at once; they are rendered concurrently. Both the layout and
the rendered files are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &flags)
			if cmd.Flags().Changed("format") || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addOrderingFlags(cmd, &flags)
	addInputFlags(cmd, &flags)
	addLayoutFlags(cmd, &flags)
	addRenderFlags(cmd, &flags, &formatsStr)

	return cmd
}

// addRenderFlags registers the output format and style flags.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, formats *string) {
	fs := cmd.Flags()
	fs.StringVarP(formats, "format", "f", "",
		"output format(s): "+strings.Join(pipeline.Formats(), ", ")+" (comma-separated, default svg)")
	fs.StringVar(&opts.Style, "style", pipeline.DefaultStyle, "visual style: simple, mono")
	fs.BoolVar(&opts.NoLabels, "no-labels", false, "omit node labels")
	fs.Float64Var(&opts.Margin, "margin", sink.DefaultMargin, "margin around the diagram")
	fs.Float64Var(&opts.Scale, "scale", sink.DefaultPNGScale, "PNG scale factor")
	fs.BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
}

// runRender loads the forest, lays it out and renders every format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	f, err := loadForest(ctx, runner, input)
	if err != nil {
		return err
	}

	spinner := c.spinner(ctx, fmt.Sprintf("Rendering %s lineage...", opts.Strategy))
	spinner.Start()

	result, err := runner.Execute(ctx, f, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	reportLayout(result.Layout)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		tallies:   layoutTallies(result.Layout.Stats),
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	tallies   []tally
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to the
// output path as given; several formats share the output (or input) base
// path with per-format extensions.
func writeArtifacts(p artifactWriteParams) error {
	var paths []string
	for _, format := range p.formats {
		path := outputPath(p.output, p.input, format, len(p.formats))
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Render complete")
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.cacheHit, p.tallies...)
	return nil
}

func outputPath(output, input, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	base := output
	if base == "" {
		base = basePath(input)
	}
	return base + pipeline.Extension(format)
}

// reportLayout prints warnings about roots that were skipped or anchors
// that did not span usable axes.
func reportLayout(out *pipeline.LayoutOutput) {
	if out == nil {
		return
	}
	for _, id := range out.Failed {
		printWarning("Skipped root %s: its lineage merges", id)
	}
	if len(out.Pruned) > 0 {
		printDetail("Pruned %d solists", len(out.Pruned))
	}
	if err := out.Warning(); err != nil {
		printWarning("%s", err)
	}
}
