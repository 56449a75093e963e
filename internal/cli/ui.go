package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/aplet/pkg/fm"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleAbstract = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess      = "✓"
	iconError        = "✗"
	iconWarning      = "!"
	iconInfo         = "›"
	iconArrow        = "→"
	iconInconclusive = "?"
)

// =============================================================================
// Printer
// =============================================================================

// printer writes styled status lines to a command's output stream.
type printer struct {
	w io.Writer
}

func newPrinter(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout()}
}

func (p printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p printer) success(format string, args ...any) {
	p.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented, dimmed line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (p printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// nextStep prints a suggested next command.
func (p printer) nextStep(description, cmd string) {
	p.line(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func (p printer) newline() {
	fmt.Fprintln(p.w)
}

// =============================================================================
// Test States
// =============================================================================

func stateStyle(s fm.TestState) lipgloss.Style {
	switch s.Resolved() {
	case fm.Passed:
		return styleIconSuccess
	case fm.Failed:
		return styleIconError
	default:
		return styleIconWarning
	}
}

func stateIcon(s fm.TestState) string {
	switch s.Resolved() {
	case fm.Passed:
		return iconSuccess
	case fm.Failed:
		return iconError
	default:
		return iconInconclusive
	}
}

// renderState renders a state as a colored icon and name.
func renderState(s fm.TestState) string {
	st := stateStyle(s)
	return st.Render(stateIcon(s)) + " " + st.Render(s.Resolved().String())
}

// =============================================================================
// Status Tree
// =============================================================================

// writeStatusTree prints the features of t as an indented tree with their
// states. Scenarios are listed below their feature when withScenarios is set.
func writeStatusTree(w io.Writer, t *fm.Tree, withScenarios bool) {
	if t == nil || t.Root == nil {
		fmt.Fprintln(w, StyleDim.Render("(empty feature model)"))
		return
	}
	writeFeature(w, t.Root, "", "", withScenarios)
}

func writeFeature(w io.Writer, f *fm.Feature, prefix, branch string, withScenarios bool) {
	name := StyleValue.Render(f.Name)
	if f.Abstract {
		name = styleAbstract.Render(f.Name)
	}
	st := stateStyle(f.Status)
	fmt.Fprintf(w, "%s%s%s %s%s\n", prefix, branch, st.Render(stateIcon(f.Status)), name, featureTags(f))

	childPrefix := prefix
	switch branch {
	case "├── ":
		childPrefix += "│   "
	case "└── ":
		childPrefix += "    "
	}

	children := f.Children()
	if withScenarios {
		bar := "  "
		if len(children) > 0 {
			bar = "│ "
		}
		for _, s := range f.Scenarios {
			ss := stateStyle(s.Status)
			fmt.Fprintf(w, "%s%s%s %s\n", childPrefix, StyleDim.Render(bar), ss.Render(stateIcon(s.Status)), StyleDim.Render(s.Name))
		}
	}
	for i, c := range children {
		b := "├── "
		if i == len(children)-1 {
			b = "└── "
		}
		writeFeature(w, c, childPrefix, b, withScenarios)
	}
}

func featureTags(f *fm.Feature) string {
	var tags []string
	if f.Abstract {
		tags = append(tags, "abstract")
	}
	if f.IsOptional() {
		tags = append(tags, "optional")
	}
	if len(tags) == 0 {
		return ""
	}
	return " " + StyleDim.Render("("+strings.Join(tags, ", ")+")")
}

// =============================================================================
// Utilities
// =============================================================================

// shellJoin joins args into a command line, quoting arguments that contain
// whitespace or quotes.
func shellJoin(args []string) string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			a = strconv.Quote(a)
		}
		out[i] = a
	}
	return strings.Join(out, " ")
}
