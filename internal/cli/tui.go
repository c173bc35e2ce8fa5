package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/doorpanels/pkg/door"
	"github.com/matzehuels/doorpanels/pkg/errors"
	"github.com/matzehuels/doorpanels/pkg/pipeline"
	"github.com/matzehuels/doorpanels/pkg/render/sink"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	doorFrameStyle    = lipgloss.NewStyle().Foreground(colorGray)
	doorPanelStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	doorPeepholeStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	doorConflictStyle = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// =============================================================================
// Fields - Editable option rows
// =============================================================================

// field is one editable row. adjust is called with +1 or -1; boolean and
// enum fields toggle or cycle regardless of direction sign.
type field struct {
	label  string
	value  func(o *pipeline.Options) string
	adjust func(o *pipeline.Options, dir int)
}

func numberField(label string, ptr func(o *pipeline.Options) *float64, step, floor float64) field {
	return field{
		label: label,
		value: func(o *pipeline.Options) string { return num(*ptr(o)) },
		adjust: func(o *pipeline.Options, dir int) {
			v := ptr(o)
			*v = math.Max(floor, math.Round((*v+float64(dir)*step)/step)*step)
		},
	}
}

func boolField(label string, ptr func(o *pipeline.Options) *bool) field {
	return field{
		label: label,
		value: func(o *pipeline.Options) string {
			if *ptr(o) {
				return "on"
			}
			return "off"
		},
		adjust: func(o *pipeline.Options, _ int) {
			v := ptr(o)
			*v = !*v
		},
	}
}

func cycle[T comparable](values []T, cur T, dir int) T {
	i := 0
	for j, v := range values {
		if v == cur {
			i = j
			break
		}
	}
	i = (i + dir + len(values)) % len(values)
	return values[i]
}

var conflictModels = []door.ConflictModel{door.ConflictRadius, door.ConflictLegacy}

func editorFields() []field {
	return []field{
		numberField("Door width", func(o *pipeline.Options) *float64 { return &o.Door.Width }, 1, 1),
		numberField("Door height", func(o *pipeline.Options) *float64 { return &o.Door.Height }, 1, 1),
		numberField("Edge distance", func(o *pipeline.Options) *float64 { return &o.Spacing.EdgeDistance }, 0.5, 0),
		numberField("Panel gap", func(o *pipeline.Options) *float64 { return &o.Spacing.PanelGap }, 0.5, 0),
		boolField("Auto spacing", func(o *pipeline.Options) *bool { return &o.Spacing.Auto }),
		numberField("Target ratio", func(o *pipeline.Options) *float64 { return &o.Spacing.TargetRatio }, 0.01, 0.01),
		{
			label: "Panels",
			value: func(o *pipeline.Options) string { return fmt.Sprint(o.Proportion.PanelCount) },
			adjust: func(o *pipeline.Options, dir int) {
				n := o.Proportion.PanelCount + dir
				if n >= 1 && n <= errors.MaxPanelCount {
					o.Proportion.PanelCount = n
				}
			},
		},
		{
			label: "Proportion",
			value: func(o *pipeline.Options) string { return string(o.Proportion.Type) },
			adjust: func(o *pipeline.Options, dir int) {
				o.Proportion.Type = cycle(door.ProportionTypes, o.Proportion.Type, dir)
			},
		},
		boolField("Peephole", func(o *pipeline.Options) *bool { return &o.Peephole.Enabled }),
		numberField("Diameter", func(o *pipeline.Options) *float64 { return &o.Peephole.Diameter }, 0.5, 0.5),
		boolField("Auto center", func(o *pipeline.Options) *bool { return &o.Peephole.AutoCenter }),
		numberField("From top", func(o *pipeline.Options) *float64 { return &o.Peephole.DistanceFromTop }, 1, 0),
		boolField("Prefer gap", func(o *pipeline.Options) *bool { return &o.Peephole.PreferGap }),
		numberField("Min clearance", func(o *pipeline.Options) *float64 { return &o.Peephole.MinEdgeDistance }, 0.5, 0),
		{
			label: "Conflict model",
			value: func(o *pipeline.Options) string { return string(o.Peephole.Model) },
			adjust: func(o *pipeline.Options, dir int) {
				o.Peephole.Model = cycle(conflictModels, o.Peephole.Model, dir)
			},
		},
	}
}

// =============================================================================
// EditorModel - Interactive layout editor
// =============================================================================

// EditorModel is the bubbletea model for the interactive layout editor. Every
// change recomputes the layout.
type EditorModel struct {
	Options pipeline.Options
	Result  door.Result
	Err     error // validation error of the current options
	Cursor  int
	Path    string // save destination
	Status  string
	Height  int

	fields []field
	save   func(path string, opts pipeline.Options) error
}

// NewEditorModel creates an editor over opts that saves to path.
func NewEditorModel(opts pipeline.Options, path string) EditorModel {
	m := EditorModel{
		Options: opts,
		Path:    path,
		Height:  24,
		fields:  editorFields(),
		save:    pipeline.SaveOptions,
	}
	m.recompute()
	return m
}

func (m *EditorModel) recompute() {
	m.Err = m.Options.ValidateInput()
	m.Result = pipeline.ComputeLayout(m.Options)
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.fields)-1 {
				m.Cursor++
			}
		case "left", "h", "-":
			m.adjust(-1)
		case "right", "l", "+", "enter", " ":
			m.adjust(1)
		case "r":
			m.Options = pipeline.DefaultOptions()
			m.Status = "reset to defaults"
			m.recompute()
		case "s":
			if err := m.save(m.Path, m.Options); err != nil {
				m.Status = "save failed: " + errors.UserMessage(err)
			} else {
				m.Status = "saved " + m.Path
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 4
		if m.Height < 12 {
			m.Height = 12
		}
	}
	return m, nil
}

func (m *EditorModel) adjust(dir int) {
	m.fields[m.Cursor].adjust(&m.Options, dir)
	m.Status = ""
	m.recompute()
}

func (m EditorModel) View() string {
	var list strings.Builder
	list.WriteString(StyleTitle.Render("Door Panels"))
	list.WriteString("\n")
	list.WriteString(listDimStyle.Render("↑/↓ field  ←/→ adjust  s save  r reset  q quit"))
	list.WriteString("\n\n")
	for i, f := range m.fields {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		list.WriteString(style.Render(fmt.Sprintf("%s%-16s %s", cursor, f.label, f.value(&m.Options))))
		list.WriteString("\n")
	}

	list.WriteString("\n")
	list.WriteString(statusLine(pipeline.Summarize(m.Result), false))
	list.WriteString("\n")
	if m.Err != nil {
		list.WriteString(StyleWarning.Render(errors.UserMessage(m.Err)))
		list.WriteString("\n")
	}
	for _, w := range sink.Warnings(m.Result) {
		list.WriteString(StyleWarning.Render(w))
		list.WriteString("\n")
	}
	if m.Status != "" {
		list.WriteString(listDimStyle.Render(m.Status))
		list.WriteString("\n")
	}

	drawing := styleDoor(drawDoor(m.Result, m.Height), m.Result)
	return lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "   ", drawing)
}

// =============================================================================
// Door Drawing
// =============================================================================

const (
	runeFrame    = '#'
	runePanel    = '░'
	runePeephole = 'o'
)

// drawDoor draws res as rows lines of text. Terminal cells are about twice as
// tall as wide, so columns are doubled to keep the door's aspect.
func drawDoor(res door.Result, rows int) []string {
	d := res.Input.Door
	if !(d.Width > 0 && d.Height > 0) || rows < 4 || math.IsInf(d.Width, 0) || math.IsInf(d.Height, 0) {
		return nil
	}
	cols := cell(float64(rows)*d.Width/d.Height*2, 4, 80)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
		grid[r][0], grid[r][cols-1] = runeFrame, runeFrame
	}
	for c := 0; c < cols; c++ {
		grid[0][c], grid[rows-1][c] = runeFrame, runeFrame
	}

	sy := float64(rows-1) / d.Height
	sx := float64(cols-1) / d.Width
	c0 := cell(res.Spacing.Edge*sx, 1, cols-2)
	c1 := cell((d.Width-res.Spacing.Edge)*sx, 1, cols-2)
	for _, p := range res.Panels.Positions {
		r0 := cell(p.Top*sy, 1, rows-2)
		r1 := cell(p.Bottom*sy, 1, rows-2)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				grid[r][c] = runePanel
			}
		}
	}
	if ph := res.Peephole; ph != nil {
		r := cell(ph.Center*sy, 1, rows-2)
		c := cell(ph.Coordinates.X*sx, 1, cols-2)
		grid[r][c] = runePeephole
	}

	lines := make([]string, rows)
	for r, row := range grid {
		lines[r] = string(row)
	}
	return lines
}

// styleDoor colors a drawing; the peephole turns red when it conflicts.
func styleDoor(lines []string, res door.Result) string {
	peephole := doorPeepholeStyle
	if res.Peephole != nil && !res.Peephole.Safe() {
		peephole = doorConflictStyle
	}
	var b strings.Builder
	for _, line := range lines {
		for _, r := range line {
			s := string(r)
			switch r {
			case runeFrame:
				s = doorFrameStyle.Render(s)
			case runePanel:
				s = doorPanelStyle.Render(s)
			case runePeephole:
				s = peephole.Render(s)
			}
			b.WriteString(s)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// cell rounds v to a grid index within [lo, hi]; NaN maps to lo.
func cell(v float64, lo, hi int) int {
	switch {
	case math.IsNaN(v), v < float64(lo):
		return lo
	case v > float64(hi):
		return hi
	}
	return int(math.Round(v))
}
