package sink

import (
	"fmt"

	"github.com/matzehuels/doorpanels/pkg/door"
)

// Warnings lists the human-readable problems a drawing of res shows: panels
// that do not fit, and peephole conflicts. It is empty for a clean layout.
func Warnings(res door.Result) []string {
	var out []string
	if !res.Panels.Fits {
		out = append(out, fmt.Sprintf("panels do not fit: %.1f used of %.1f available",
			res.Panels.TotalUsedHeight, res.Panels.AvailableHeight))
	}
	if res.Panels.Width < 0 {
		out = append(out, fmt.Sprintf("panel width is negative (%.1f); edge distance exceeds half the door width",
			res.Panels.Width))
	}

	p := res.Peephole
	if p == nil {
		return out
	}
	for _, c := range p.Panels {
		switch c.Kind {
		case door.PanelTooCloseToEdge:
			out = append(out, fmt.Sprintf("peephole is %.2f from the edge of panel %d", c.Distance, c.Panel+1))
		case door.PanelCrossesEdge:
			out = append(out, fmt.Sprintf("peephole crosses the edge of panel %d", c.Panel+1))
		}
	}
	if p.Gap.Kind == door.GapTooClose {
		out = append(out, fmt.Sprintf("peephole is %.2f from a panel in gap %d", p.Gap.Distance, p.Gap.Gap+1))
	}
	return out
}
