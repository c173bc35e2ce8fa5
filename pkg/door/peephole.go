package door

import "math"

const (
	// ErgonomicLow and ErgonomicHigh bound the comfortable peephole height,
	// measured from the floor.
	ErgonomicLow  = 145.0
	ErgonomicHigh = 180.0

	// clearanceEps absorbs floating-point error when testing clearance
	// against the minimum edge distance.
	clearanceEps = 1e-9
)

// IdealCenter returns the ergonomic peephole center as a distance from the
// top of the door: the midpoint of the ergonomic band, measured from the floor.
func IdealCenter(d Door) float64 {
	return d.Height - (ErgonomicLow+ErgonomicHigh)/2
}

// candidate is a possible peephole center found by the auto-placement search.
type candidate struct {
	center float64
	score  float64
}

// PlacePeephole resolves the peephole position and classifies it against the
// panels and gaps of l.
//
// With p.AutoCenter unset the peephole top is p.DistanceFromTop. Otherwise
// every panel center and gap center that keeps the peephole at least
// p.MinEdgeDistance away from the bounding edges is a candidate, scored by its
// distance from [IdealCenter]. The best panel candidate wins, then the best gap
// candidate, then the ideal center itself; p.PreferGap swaps the first two.
//
// The peephole is always horizontally centered on the door.
func PlacePeephole(l PanelLayout, d Door, p Peephole) PeepholeResult {
	r := p.Radius()
	ideal := IdealCenter(d)

	top := p.DistanceFromTop
	placement := PlacementFixed
	if p.AutoCenter {
		var center float64
		center, placement = autoCenter(l, p, ideal)
		top = center - r
	}

	center := top + r
	res := PeepholeResult{
		Diameter:  p.Diameter,
		Top:       top,
		Center:    center,
		InGap:     placement == PlacementGap,
		Placement: placement,
		Ideal:     ideal,
		Panels:    ClassifyPanels(l.Positions, top, p),
		Gap:       ClassifyGap(l, top, p),
		Coordinates: Coordinates{
			X:          d.Width / 2,
			FromTop:    center,
			FromBottom: d.Height - center,
		},
	}
	if !p.AutoCenter {
		res.InGap = res.Gap.Kind != GapNone
	}
	return res
}

// autoCenter searches panel and gap centers for the best admissible
// peephole center.
func autoCenter(l PanelLayout, p Peephole, ideal float64) (float64, Placement) {
	panel, panelOK := bestCandidate(panelCandidates(l, p, ideal))
	gap, gapOK := bestCandidate(gapCandidates(l, p, ideal))

	first, second := PlacementPanel, PlacementGap
	firstC, secondC := panel, gap
	firstOK, secondOK := panelOK, gapOK
	if p.PreferGap {
		first, second = second, first
		firstC, secondC = secondC, firstC
		firstOK, secondOK = secondOK, firstOK
	}

	switch {
	case firstOK:
		return firstC.center, first
	case secondOK:
		return secondC.center, second
	default:
		return ideal, PlacementIdeal
	}
}

func panelCandidates(l PanelLayout, p Peephole, ideal float64) []candidate {
	var out []candidate
	for _, pos := range l.Positions {
		c := pos.Center()
		if admissible(c, p, pos.Top, pos.Bottom) {
			out = append(out, candidate{center: c, score: math.Abs(c - ideal)})
		}
	}
	return out
}

func gapCandidates(l PanelLayout, p Peephole, ideal float64) []candidate {
	var out []candidate
	for i := 0; i+1 < len(l.Positions); i++ {
		top, bottom := l.Gap(i)
		c := (top + bottom) / 2
		if admissible(c, p, top, bottom) {
			out = append(out, candidate{center: c, score: math.Abs(c - ideal)})
		}
	}
	return out
}

// admissible reports whether a peephole centered at c keeps the minimum edge
// distance to both top and bottom.
func admissible(c float64, p Peephole, top, bottom float64) bool {
	r := p.Radius()
	return c-r-top+clearanceEps >= p.MinEdgeDistance &&
		bottom-(c+r)+clearanceEps >= p.MinEdgeDistance
}

// bestCandidate returns the lowest-scoring candidate; ties keep the first.
func bestCandidate(cs []candidate) (candidate, bool) {
	if len(cs) == 0 {
		return candidate{}, false
	}
	best := cs[0]
	for _, c := range cs[1:] {
		if c.score < best.score {
			best = c
		}
	}
	return best, true
}

// ClassifyPanels assigns exactly one conflict kind to every panel for a
// peephole whose top is at top.
//
// Under [ConflictRadius] (the default) a peephole is inside a panel when its
// whole span lies between the panel edges. Under [ConflictLegacy] it is inside
// when its center lies between the panel edges, which can report a negative
// clearance for a peephole that pokes out of the panel. A peephole that is not
// inside but overlaps the panel crosses its edge.
//
// Inside distances are measured from the peephole rim, crossing distances
// from its center.
func ClassifyPanels(positions []PanelPosition, top float64, p Peephole) []PanelConflict {
	r := p.Radius()
	center := top + r
	bottom := top + p.Diameter

	out := make([]PanelConflict, len(positions))
	for i, pos := range positions {
		c := PanelConflict{Panel: i, Kind: PanelNone}

		var inside bool
		if p.Model == ConflictLegacy {
			inside = center >= pos.Top && center <= pos.Bottom
		} else {
			inside = top >= pos.Top && bottom <= pos.Bottom
		}

		switch {
		case inside:
			c.Distance = math.Min(top-pos.Top, pos.Bottom-bottom)
			c.Kind = PanelInsideSafe
			if c.Distance+clearanceEps < p.MinEdgeDistance {
				c.Kind = PanelTooCloseToEdge
			}
		case top < pos.Bottom && bottom > pos.Top:
			c.Kind = PanelCrossesEdge
			c.Distance = math.Min(math.Abs(center-pos.Top), math.Abs(pos.Bottom-center))
		}
		out[i] = c
	}
	return out
}

// ClassifyGap classifies a peephole whose top is at top against the gap its
// center lies strictly within, if any.
func ClassifyGap(l PanelLayout, top float64, p Peephole) GapConflict {
	center := top + p.Radius()
	bottom := top + p.Diameter

	for i := 0; i+1 < len(l.Positions); i++ {
		gTop, gBottom := l.Gap(i)
		if center <= gTop || center >= gBottom {
			continue
		}
		c := GapConflict{
			Gap:      i,
			Kind:     GapSafe,
			Distance: math.Min(top-gTop, gBottom-bottom),
		}
		if c.Distance+clearanceEps < p.MinEdgeDistance {
			c.Kind = GapTooClose
		}
		return c
	}
	return GapConflict{Gap: -1, Kind: GapNone}
}
