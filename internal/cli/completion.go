package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gentree/pkg/lineage"
	"github.com/matzehuels/gentree/pkg/ordering"
	"github.com/matzehuels/gentree/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gentree.

Besides commands and flags, the scripts complete strategy, format, style and
edge mode names, and anchor flags such as --north or --vertex with the cell
labels found in the forest file given on the command line.

Bash:
  $ source <(gentree completion bash)

Zsh:
  $ gentree completion zsh > "${fpath[1]}/_gentree"

Fish:
  $ gentree completion fish > ~/.config/fish/completions/gentree.fish

PowerShell:
  PS> gentree completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// labelFlags take a cell label and complete from the input forest.
var labelFlags = []string{"north", "south", "centre", "axis-a", "axis-b", "vertex"}

// registerCompletions adds value completion to every subcommand of root
// that carries one of the known flags, and restricts positional file
// arguments to JSON files.
func registerCompletions(root *cobra.Command) {
	strategies := make([]string, 0, len(ordering.Kinds()))
	for _, k := range ordering.Kinds() {
		strategies = append(strategies, k.String())
	}
	fixed := map[string][]string{
		"strategy":   strategies,
		"strategies": strategies,
		"format":     pipeline.Formats(),
		"style":      {"simple", "mono"},
		"edges":      {"straight", "rectangular", "bent"},
		"identity":   {"endpoint", "chain-head"},
	}

	for _, cmd := range root.Commands() {
		if strings.Contains(cmd.Use, ".json]") {
			cmd.ValidArgsFunction = completeJSONFile
		}
		for name, values := range fixed {
			if cmd.Flags().Lookup(name) != nil {
				_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
			}
		}
		for _, name := range labelFlags {
			if cmd.Flags().Lookup(name) != nil {
				_ = cmd.RegisterFlagCompletionFunc(name, completeLabels)
			}
		}
	}
}

func completeJSONFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeLabels offers the distinct labels of the forest named by the
// first positional argument.
func completeLabels(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	f, err := lineage.ReadForestFile(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return forestLabels(f, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// forestLabels returns the sorted, distinct non-empty labels of f that
// start with prefix.
func forestLabels(f *lineage.Forest, prefix string) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, v := range f.Vertices() {
		if v.Label == "" || seen[v.Label] || !strings.HasPrefix(v.Label, prefix) {
			continue
		}
		seen[v.Label] = true
		labels = append(labels, v.Label)
	}
	slices.Sort(labels)
	return labels
}
