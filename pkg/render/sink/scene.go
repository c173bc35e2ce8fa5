package sink

import (
	"math"

	"github.com/matzehuels/doorpanels/pkg/door"
)

// dimensionMargin is the space in door units reserved around the door for
// measurement annotations.
const dimensionMargin = 16.0

type rect struct {
	X, Y, W, H float64
}

type panelShape struct {
	rect
	Index  int
	Height float64
	Share  float64
	Warn   bool
}

type peepholeShape struct {
	CX, CY, R float64
	FromTop   float64
	Safe      bool
}

// scene is a door layout flattened into drawable shapes, in door units with
// the origin at the door's top-left corner.
type scene struct {
	Door     rect
	Panels   []panelShape
	Peephole *peepholeShape
}

func buildScene(res door.Result) scene {
	s := scene{
		Door: rect{W: clampSize(res.Input.Door.Width), H: clampSize(res.Input.Door.Height)},
	}

	warn := make(map[int]bool)
	if p := res.Peephole; p != nil {
		for _, c := range p.Panels {
			if c.Kind == door.PanelTooCloseToEdge || c.Kind == door.PanelCrossesEdge {
				warn[c.Panel] = true
			}
		}
		s.Peephole = &peepholeShape{
			CX:      finite(p.Coordinates.X),
			CY:      finite(p.Center),
			R:       clampSize(p.Diameter / 2),
			FromTop: finite(p.Coordinates.FromTop),
			Safe:    p.Safe(),
		}
	}

	x := finite(res.Spacing.Edge)
	w := clampSize(res.Panels.Width)
	for _, pos := range res.Panels.Positions {
		s.Panels = append(s.Panels, panelShape{
			rect:   rect{X: x, Y: finite(pos.Top), W: w, H: clampSize(pos.Height)},
			Index:  pos.Index,
			Height: finite(pos.Height),
			Share:  finite(pos.Share),
			Warn:   warn[pos.Index],
		})
	}
	return s
}

// canvas returns the drawing size in door units and the offset of the door
// within it.
func (s scene) canvas(dimensions bool) (w, h, offset float64) {
	if dimensions {
		offset = dimensionMargin
	}
	return s.Door.W + 2*offset, s.Door.H + 2*offset, offset
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampSize(v float64) float64 {
	return math.Max(0, finite(v))
}
