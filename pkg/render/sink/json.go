package sink

import (
	"encoding/json"

	"github.com/matzehuels/doorpanels/pkg/door"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style  Style
	indent bool
}

// WithJSONStyle records the style name in the output so a consumer can draw
// the panels with the same palette.
func WithJSONStyle(s Style) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Style    Style        `json:"style,omitempty"`
	Result   door.Result  `json:"result"`
	Shapes   jsonShapes   `json:"shapes"`
	Warnings []string     `json:"warnings,omitempty"`
	Palette  *jsonPalette `json:"palette,omitempty"`
}

type jsonShapes struct {
	Door     jsonRect    `json:"door"`
	Panels   []jsonRect  `json:"panels"`
	Peephole *jsonCircle `json:"peephole,omitempty"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonCircle struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

type jsonPalette struct {
	Door     string `json:"door"`
	Panel    string `json:"panel"`
	Warn     string `json:"warn"`
	Peephole string `json:"peephole"`
}

// RenderJSON exports the layout result together with the rectangles the
// other sinks draw. Non-finite values in the result are replaced by zero so
// that degenerate inputs still encode.
func RenderJSON(res door.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	s := buildScene(res)
	out := jsonOutput{
		Style:    r.style,
		Result:   Sanitize(res),
		Shapes:   jsonShapes{Door: toJSONRect(s.Door)},
		Warnings: Warnings(res),
	}
	for _, p := range s.Panels {
		out.Shapes.Panels = append(out.Shapes.Panels, toJSONRect(p.rect))
	}
	if p := s.Peephole; p != nil {
		out.Shapes.Peephole = &jsonCircle{CX: p.CX, CY: p.CY, R: p.R}
	}
	if pal, ok := palettes[r.style]; ok {
		out.Palette = &jsonPalette{Door: pal.door, Panel: pal.panel, Warn: pal.warn, Peephole: pal.peephole}
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

func toJSONRect(r rect) jsonRect {
	return jsonRect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

// Sanitize returns a copy of res with every non-finite number replaced by 0,
// so that encoding/json accepts it. Overflowing inputs such as a 1e200 door
// produce infinite areas; callers encoding a Result should pass it through
// here first.
func Sanitize(res door.Result) door.Result {
	res.Input.Door.Width = finite(res.Input.Door.Width)
	res.Input.Door.Height = finite(res.Input.Door.Height)
	res.Input.Spacing.EdgeDistance = finite(res.Input.Spacing.EdgeDistance)
	res.Input.Spacing.PanelGap = finite(res.Input.Spacing.PanelGap)
	res.Input.Spacing.TargetRatio = finite(res.Input.Spacing.TargetRatio)
	res.Spacing.Edge = finite(res.Spacing.Edge)
	res.Spacing.Gap = finite(res.Spacing.Gap)

	res.Weights = append([]float64(nil), res.Weights...)
	for i := range res.Weights {
		res.Weights[i] = finite(res.Weights[i])
	}

	res.Panels.Width = finite(res.Panels.Width)
	res.Panels.AvailableHeight = finite(res.Panels.AvailableHeight)
	res.Panels.TotalUsedHeight = finite(res.Panels.TotalUsedHeight)
	res.Panels.Positions = append([]door.PanelPosition(nil), res.Panels.Positions...)
	for i := range res.Panels.Positions {
		p := &res.Panels.Positions[i]
		p.Top, p.Bottom, p.Height, p.Share = finite(p.Top), finite(p.Bottom), finite(p.Height), finite(p.Share)
	}

	if res.Input.Peephole != nil {
		ph := *res.Input.Peephole
		ph.Diameter = finite(ph.Diameter)
		ph.DistanceFromTop = finite(ph.DistanceFromTop)
		ph.MinEdgeDistance = finite(ph.MinEdgeDistance)
		res.Input.Peephole = &ph
	}
	if res.Peephole != nil {
		p := *res.Peephole
		p.Diameter, p.Top, p.Center, p.Ideal = finite(p.Diameter), finite(p.Top), finite(p.Center), finite(p.Ideal)
		p.Coordinates = door.Coordinates{
			X:          finite(p.Coordinates.X),
			FromTop:    finite(p.Coordinates.FromTop),
			FromBottom: finite(p.Coordinates.FromBottom),
		}
		p.Panels = append([]door.PanelConflict(nil), p.Panels...)
		for i := range p.Panels {
			p.Panels[i].Distance = finite(p.Panels[i].Distance)
		}
		p.Gap.Distance = finite(p.Gap.Distance)
		res.Peephole = &p
	}

	m := &res.Metrics
	m.TotalDoorArea, m.TotalPanelArea, m.NegativeSpaceArea = finite(m.TotalDoorArea), finite(m.TotalPanelArea), finite(m.NegativeSpaceArea)
	m.TargetRatio, m.ActualRatio, m.RatioErrorPct = finite(m.TargetRatio), finite(m.ActualRatio), finite(m.RatioErrorPct)
	m.EdgeArea, m.GapArea, m.Remainder = finite(m.EdgeArea), finite(m.GapArea), finite(m.Remainder)
	return res
}
