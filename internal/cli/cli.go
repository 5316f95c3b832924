// Package cli implements the gentree command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gentree/pkg/buildinfo"
	"github.com/matzehuels/gentree/pkg/cache"
	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/lineage/transform"
	"github.com/matzehuels/gentree/pkg/observability/prom"
	"github.com/matzehuels/gentree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gentree"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	metricsFile string
	config      pipeline.Options
	registry    *prometheus.Registry
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: pipeline.Options{Solists: transform.DefaultSolistOptions()},
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gentree draws cell lineage trees from tracking graphs",
		Long: `gentree lays out the lineage trees of a cell tracking graph as 2-D
genealogy diagrams. Daughters of every division are ordered by one of several
strategies, from tracking order to geometric orderings around anchor cells.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.preRun,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.writeMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "read options from a .toml, .yaml or .json file")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.sortCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.pruneCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// preRun loads the config file and installs metrics hooks.
func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	if c.configPath != "" {
		cfg, err := pipeline.LoadConfig(c.configPath)
		if err != nil {
			return err
		}
		c.config = cfg
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	if c.metricsFile != "" {
		c.registry = prom.Register()
	}
	return nil
}

func (c *CLI) writeMetrics() error {
	if c.registry == nil {
		return nil
	}
	if err := prom.WriteTextfile(c.metricsFile, c.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsFile)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CacheScope())
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/gentree/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath strips the forest or diagram suffix from an input path.
func basePath(input string) string {
	for _, suffix := range []string{".diagram.json", ".json"} {
		if strings.HasSuffix(input, suffix) {
			return strings.TrimSuffix(input, suffix)
		}
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// =============================================================================
// Options Helpers
// =============================================================================

// options merges the config file with the flags the user set explicitly.
func (c *CLI) options(cmd *cobra.Command, flags *pipeline.Options) pipeline.Options {
	opts := c.config
	overlayFlags(cmd, &opts, flags)
	opts.Logger = c.Logger
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// loadForest reads a forest file through the runner so load hooks fire.
func loadForest(ctx context.Context, runner *pipeline.Runner, path string) (*lineage.Forest, error) {
	f, err := runner.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load forest %s: %w", path, err)
	}
	return f, nil
}
