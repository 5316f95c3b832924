package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gentree/pkg/layout"
)

var (
	colorCyan   = lipgloss.Color("36")  // spinner
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // keys, info
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(StyleWarning.Render(iconWarning + " " + fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// tally is one count in a stats line, e.g. {3, "divisions"}.
type tally struct {
	n    int
	unit string
}

// statsLine joins the non-zero tallies with dots. Zero tallies are left out
// unless every tally is zero, in which case the first one is kept.
func statsLine(tallies []tally) string {
	var parts []string
	for _, t := range tallies {
		if t.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", t.n, t.unit))
		}
	}
	if len(parts) == 0 && len(tallies) > 0 {
		parts = append(parts, fmt.Sprintf("0 %s", tallies[0].unit))
	}
	return strings.Join(parts, " · ")
}

// layoutTallies lists what a walk produced.
func layoutTallies(s layout.Stats) []tally {
	return []tally{
		{s.Nodes, "nodes"},
		{s.Divisions, "divisions"},
		{s.Leaves, "leaves"},
		{s.Compressed, "compressed"},
	}
}

// printStats prints tallies followed by the cache status.
func printStats(cached bool, tallies ...tally) {
	status := StyleDim.Render("fresh")
	if cached {
		status = styleCached.Render("cached")
	}
	line := statsLine(tallies)
	if line != "" {
		line += " · "
	}
	fmt.Println("  " + StyleDim.Render(line) + status)
}

// printCounts prints tallies without a cache status.
func printCounts(tallies ...tally) {
	fmt.Println("  " + StyleDim.Render(statsLine(tallies)))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
