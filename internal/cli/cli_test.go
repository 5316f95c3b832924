package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gentree/pkg/cache"
	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/observability"
	"github.com/matzehuels/gentree/pkg/pipeline"
	"github.com/matzehuels/gentree/pkg/sink"
)

const forestJSON = `{
  "vertices": [
    {"id": "r", "label": "r", "time": 0, "pos": [0, 0, 0]},
    {"id": "a", "label": "zeta", "time": 1, "pos": [1, 0, 0]},
    {"id": "b", "label": "alpha", "time": 1, "pos": [-1, 0, 0]},
    {"id": "s", "label": "7", "time": 1, "pos": [5, 5, 5]}
  ],
  "edges": [{"a": "r", "b": "a"}, {"a": "r", "b": "b"}]
}`

// workspace writes the test forest into a temporary directory and points
// the cache there.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	path := filepath.Join(dir, "embryo.json")
	require.NoError(t, os.WriteFile(path, []byte(forestJSON), 0o644))
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func readDiagram(t *testing.T, path string) sink.Diagram {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	d, err := sink.ReadDiagram(f)
	require.NoError(t, err)
	return d
}

func leftmost(t *testing.T, d sink.Diagram, ids ...string) string {
	t.Helper()
	best, bestX := "", 0.0
	for _, id := range ids {
		n, ok := d.Node(id)
		require.True(t, ok, "node %s missing", id)
		if best == "" || n.X < bestX {
			best, bestX = id, n.X
		}
	}
	return best
}

func TestLayoutCommand(t *testing.T) {
	input := workspace(t)
	require.NoError(t, execute(t, "layout", input, "--strategy", "alphanumeric"))

	d := readDiagram(t, strings.TrimSuffix(input, ".json")+".diagram.json")
	assert.Equal(t, "b", leftmost(t, d, "a", "b"))
	_, ok := d.Node("s")
	assert.True(t, ok, "solists are kept unless pruned")
}

func TestLayoutCommandPrune(t *testing.T) {
	input := workspace(t)
	out := filepath.Join(filepath.Dir(input), "pruned.diagram.json")
	require.NoError(t, execute(t, "layout", input, "--prune-solists", "--no-cache", "-o", out))

	d := readDiagram(t, out)
	_, ok := d.Node("s")
	assert.False(t, ok)
	assert.Len(t, d.Nodes, 3)
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	input := workspace(t)
	dir := filepath.Dir(input)
	config := filepath.Join(dir, "gentree.toml")
	require.NoError(t, os.WriteFile(config, []byte("strategy = \"alphanumeric\"\n"), 0o644))

	out := filepath.Join(dir, "config.diagram.json")
	require.NoError(t, execute(t, "--config", config, "layout", input, "-o", out))
	assert.Equal(t, "b", leftmost(t, readDiagram(t, out), "a", "b"))

	require.NoError(t, execute(t, "--config", config, "layout", input, "-o", out, "--strategy", "trackscheme"))
	assert.Equal(t, "a", leftmost(t, readDiagram(t, out), "a", "b"))
}

func TestConfigFileUnknownKey(t *testing.T) {
	input := workspace(t)
	config := filepath.Join(filepath.Dir(input), "gentree.yaml")
	require.NoError(t, os.WriteFile(config, []byte("stratgy: poles\n"), 0o644))

	assert.Error(t, execute(t, "--config", config, "layout", input))
}

func TestLayoutCommandSingleCutoff(t *testing.T) {
	input := workspace(t)
	out := filepath.Join(filepath.Dir(input), "cutoff.diagram.json")
	require.NoError(t, execute(t, "layout", input, "--strategy", "slices",
		"--north", "7", "--south", "r", "--inner-cutoff", "20", "--no-cache", "-o", out))
	assert.Len(t, readDiagram(t, out).Nodes, 4)
}

func TestLayoutCommandZeroBendOffset(t *testing.T) {
	input := workspace(t)
	out := filepath.Join(filepath.Dir(input), "bent.diagram.json")
	require.NoError(t, execute(t, "layout", input, "--edges", "bent", "--bend-offset", "0", "--no-cache", "-o", out))

	d := readDiagram(t, out)
	require.NotEmpty(t, d.Edges)
	for _, e := range d.Edges {
		assert.True(t, e.Bent)
		assert.Zero(t, e.BendOffsetY)
	}
}

func TestRenderCommand(t *testing.T) {
	input := workspace(t)
	require.NoError(t, execute(t, "render", input, "-f", "svg,graphml,dot", "--no-cache"))

	base := strings.TrimSuffix(input, ".json")
	for _, ext := range []string{".svg", ".graphml", ".dot"} {
		data, err := os.ReadFile(base + ext)
		require.NoError(t, err, ext)
		assert.NotEmpty(t, data, ext)
	}
}

func TestRenderCommandInvalidFormat(t *testing.T) {
	input := workspace(t)
	assert.Error(t, execute(t, "render", input, "-f", "bmp"))
}

func TestVisualizeCommand(t *testing.T) {
	input := workspace(t)
	require.NoError(t, execute(t, "layout", input))

	diagram := strings.TrimSuffix(input, ".json") + ".diagram.json"
	out := filepath.Join(filepath.Dir(input), "tree.svg")
	require.NoError(t, execute(t, "visualize", diagram, "-o", out, "--style", "mono"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg"))
}

func TestSortCommandPersist(t *testing.T) {
	input := workspace(t)
	out := filepath.Join(filepath.Dir(input), "sorted.json")
	require.NoError(t, execute(t, "sort", input, "--strategy", "alphanumeric", "--vertex", "r", "--persist", out))

	f, err := lineage.ReadForestFile(out)
	require.NoError(t, err)
	later := f.Later("r")
	require.Len(t, later, 2)
	assert.Equal(t, "b", later[0].ID)
}

func TestSortCommandMarkers(t *testing.T) {
	input := workspace(t)
	out := filepath.Join(filepath.Dir(input), "markers.json")
	require.NoError(t, execute(t, "sort", input, "--strategy", "slices", "--north", "zeta", "--south", "alpha", "--markers", out))

	f, err := lineage.ReadForestFile(out)
	require.NoError(t, err)
	v, ok := f.Vertex("marker:centre")
	require.True(t, ok)
	assert.Equal(t, 0, v.Time)
}

func TestSortCommandNeedsAction(t *testing.T) {
	input := workspace(t)
	assert.Error(t, execute(t, "sort", input))
}

func TestPruneCommand(t *testing.T) {
	input := workspace(t)
	require.NoError(t, execute(t, "prune", input))

	f, err := lineage.ReadForestFile(strings.TrimSuffix(input, ".json") + ".pruned.json")
	require.NoError(t, err)
	assert.Equal(t, 3, f.VertexCount())
}

func TestCompareCommand(t *testing.T) {
	input := workspace(t)
	require.NoError(t, execute(t, "compare", input, "--strategies", "trackscheme,alphanumeric"))
	assert.Error(t, execute(t, "compare", input, "--strategies", "trackscheme,poles"))
}

func TestRenderComparison(t *testing.T) {
	out := renderComparison([]pipeline.Comparison{
		{Strategy: "trackscheme", Nodes: 3, Divisions: 1},
		{Strategy: "alphanumeric", Nodes: 3, Divisions: 1, Differs: 1, Degenerate: true},
	})
	assert.Contains(t, out, "trackscheme")
	assert.Contains(t, out, "reference")
	assert.Contains(t, out, "degenerate anchors")
}

func TestMetricsFile(t *testing.T) {
	defer observability.Reset()

	input := workspace(t)
	metrics := filepath.Join(filepath.Dir(input), "gentree.prom")
	require.NoError(t, execute(t, "--metrics-file", metrics, "layout", input, "--no-cache"))

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gentree_layout_total{status="ok",strategy="trackscheme"} 1`)
}

func TestCompleteLabels(t *testing.T) {
	path := workspace(t)

	got, directive := completeLabels(nil, []string{path}, "")
	assert.Equal(t, []string{"7", "alpha", "r", "zeta"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	got, _ = completeLabels(nil, []string{path}, "z")
	assert.Equal(t, []string{"zeta"}, got)

	got, _ = completeLabels(nil, nil, "")
	assert.Empty(t, got)

	got, _ = completeLabels(nil, []string{filepath.Join(t.TempDir(), "missing.json")}, "")
	assert.Empty(t, got)
}

func TestRegisterCompletions(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	layout, _, err := root.Find([]string{"layout"})
	require.NoError(t, err)
	_, ok := layout.GetFlagCompletionFunc("north")
	assert.True(t, ok)
	strategy, ok := layout.GetFlagCompletionFunc("strategy")
	require.True(t, ok)
	names, _ := strategy(layout, nil, "")
	assert.Contains(t, names, "triangle")
	require.NotNil(t, layout.ValidArgsFunction)

	sortCmd, _, err := root.Find([]string{"sort"})
	require.NoError(t, err)
	_, ok = sortCmd.GetFlagCompletionFunc("vertex")
	assert.True(t, ok)
}

func TestCacheCommands(t *testing.T) {
	input := workspace(t)

	// Nothing cached yet.
	require.NoError(t, execute(t, "cache", "clear"))
	require.NoError(t, execute(t, "cache", "info"))

	require.NoError(t, execute(t, "render", input, "-f", "svg"))
	dir, err := cacheDir()
	require.NoError(t, err)
	fc, err := cache.NewFileCache(dir)
	require.NoError(t, err)
	u, err := fc.Usage()
	require.NoError(t, err)
	assert.Equal(t, 2, u.Entries, "one diagram and one artifact")

	require.NoError(t, execute(t, "cache", "info"))
	require.NoError(t, execute(t, "cache", "prune"))
	u, err = fc.Usage()
	require.NoError(t, err)
	assert.Equal(t, 2, u.Entries, "fresh entries survive prune")

	require.NoError(t, execute(t, "cache", "clear"))
	u, err = fc.Usage()
	require.NoError(t, err)
	assert.Zero(t, u.Entries)
}
