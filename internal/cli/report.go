package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/doorpanels/pkg/door"
	"github.com/matzehuels/doorpanels/pkg/render/sink"
)

var (
	reportHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	reportCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	reportKeyStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(18)
)

// renderReport formats a layout result for the terminal.
func renderReport(res door.Result) string {
	var b strings.Builder

	d := res.Input.Door
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Door %s × %s", num(d.Width), num(d.Height))))
	b.WriteString("\n\n")

	b.WriteString(reportSpacing(res))
	b.WriteString("\n")
	b.WriteString(reportPanels(res))
	b.WriteString("\n")
	if res.Peephole != nil {
		b.WriteString(reportPeephole(*res.Peephole))
		b.WriteString("\n")
	}
	b.WriteString(reportMetrics(res.Metrics))

	if warnings := sink.Warnings(res); len(warnings) > 0 {
		b.WriteString("\n")
		for _, w := range warnings {
			b.WriteString(markWarning.String() + " " + StyleWarning.Render(w) + "\n")
		}
	}
	return b.String()
}

func reportSpacing(res door.Result) string {
	sp := res.Spacing
	mode := "manual"
	if sp.Auto {
		mode = "auto, ratio " + num(res.Input.Spacing.TargetRatio)
		if sp.Fallback {
			mode += ", fallback"
		}
	}
	return keyValue("Spacing", mode) +
		keyValue("Edge distance", num(sp.Edge)) +
		keyValue("Panel gap", num(sp.Gap)) +
		keyValue("Proportion", fmt.Sprintf("%s × %d", res.Input.Proportion.Type, res.Input.Proportion.PanelCount))
}

func reportPanels(res door.Result) string {
	l := res.Panels
	rows := make([][]string, len(l.Positions))
	for i, p := range l.Positions {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			num(p.Top),
			num(p.Bottom),
			num(p.Height),
			fmt.Sprintf("%.1f%%", p.Share*100),
		}
	}

	fit := StyleSuccess.Render("fits")
	if !l.Fits {
		fit = StyleWarning.Render("does not fit")
	}

	return newTable("Panel", "Top", "Bottom", "Height", "Share").Rows(rows...).Render() + "\n" +
		keyValue("Panel width", num(l.Width)) +
		keyValue("Available height", num(l.AvailableHeight)) +
		keyValue("Used height", num(l.TotalUsedHeight)) +
		keyValue("Fit", fit)
}

func reportPeephole(p door.PeepholeResult) string {
	status := StyleSuccess.Render("safe")
	if !p.Safe() {
		status = StyleWarning.Render("conflict")
	}

	var b strings.Builder
	b.WriteString(keyValue("Peephole", fmt.Sprintf("⌀%s, %s placement, %s", num(p.Diameter), p.Placement, status)))
	b.WriteString(keyValue("Center", fmt.Sprintf("x %s, %s from top, %s from bottom",
		num(p.Coordinates.X), num(p.Coordinates.FromTop), num(p.Coordinates.FromBottom))))
	b.WriteString(keyValue("Ergonomic ideal", num(p.Ideal)))

	var rows [][]string
	for _, c := range p.Panels {
		if c.Kind == door.PanelNone {
			continue
		}
		rows = append(rows, []string{"panel " + strconv.Itoa(c.Panel+1), string(c.Kind), num(c.Distance)})
	}
	if p.Gap.Kind != door.GapNone {
		rows = append(rows, []string{"gap " + strconv.Itoa(p.Gap.Gap+1), string(p.Gap.Kind), num(p.Gap.Distance)})
	}
	if len(rows) > 0 {
		b.WriteString(newTable("Region", "Conflict", "Clearance").Rows(rows...).Render())
		b.WriteString("\n")
	}
	return b.String()
}

func reportMetrics(m door.Metrics) string {
	rows := [][]string{
		{"Door area", num(m.TotalDoorArea)},
		{"Panel area", num(m.TotalPanelArea)},
		{"Negative space", num(m.NegativeSpaceArea)},
		{"  edges", num(m.EdgeArea)},
		{"  gaps", num(m.GapArea)},
		{"  remainder", num(m.Remainder)},
		{"Target ratio", num(m.TargetRatio)},
		{"Actual ratio", num(m.ActualRatio)},
		{"Ratio error", fmt.Sprintf("%.2f%%", m.RatioErrorPct)},
	}
	return newTable("Metric", "Value").Rows(rows...).Render() + "\n"
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return reportHeaderStyle.Padding(0, 1)
			}
			return reportCellStyle
		})
}

func keyValue(key, value string) string {
	return reportKeyStyle.Render(key) + " " + StyleValue.Render(value) + "\n"
}

// num formats a length or ratio with two decimals.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
