package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/doorpanels/pkg/pipeline"
)

// Terminal palette shared by the report, the status lines and the editor.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

var (
	StyleTitle   = fg(colorCyan).Bold(true)
	StyleDim     = fg(colorDim)
	StyleValue   = fg(colorWhite)
	StyleSuccess = fg(colorGreen)
	StyleWarning = fg(colorYellow)

	styleError   = fg(colorRed)
	styleMuted   = fg(colorGray)
	styleCommand = fg(colorBlue)
)

// stdout receives user-facing output. Logs go to the CLI logger instead.
var stdout io.Writer = os.Stdout

// mark is the glyph that opens a status message.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = mark{"✓", StyleSuccess}
	markError   = mark{"✗", styleError}
	markWarning = mark{"!", StyleWarning}
	markInfo    = mark{"›", styleMuted}
)

func (m mark) String() string { return m.style.Render(m.glyph) }

func (m mark) println(msg string) {
	fmt.Fprintln(stdout, m, msg)
}

func printSuccess(format string, args ...any) { markSuccess.println(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markError.println(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markInfo.println(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarning.println(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printWarnings prints one warning per layout problem.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		markWarning.println(StyleWarning.Render(w))
	}
}

// printDetail prints an indented, dimmed line under the previous message.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written file, e.g. "  → door.svg".
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→"), StyleValue.Render(path))
}

func printStatus(sum pipeline.Summary, cached bool) {
	fmt.Fprintln(stdout, statusLine(sum, cached))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }

// statusLine condenses a layout into one line, e.g.
// "  3 panels · fits · peephole gap · cached". Overflow and peephole
// conflicts are highlighted.
func statusLine(sum pipeline.Summary, cached bool) string {
	fit := "fits"
	if !sum.Fits {
		fit = StyleWarning.Render("overflow")
	}
	parts := []string{fmt.Sprintf("%d panels", sum.Panels), fit}

	if sum.Placement != "" {
		peephole := "peephole " + string(sum.Placement)
		if !sum.Safe {
			peephole = StyleWarning.Render(peephole + " (conflict)")
		}
		parts = append(parts, peephole)
	}

	if cached {
		parts = append(parts, StyleSuccess.Render("cached"))
	} else {
		parts = append(parts, styleMuted.Render("fresh"))
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}
