package door

import "math"

// Verify computes the area and ratio figures for a built layout.
//
// The negative space is split into the border frame around the panels
// (by inclusion-exclusion), the gaps between panels, and a remainder that
// holds any residue left by the spacing solver's fallback.
//
// A layout with no negative space reports an actual ratio of zero and a
// ratio error of 100%; a non-positive target reports no error.
func Verify(d Door, sp EffectiveSpacing, l PanelLayout, targetRatio float64) Metrics {
	m := Metrics{
		TotalDoorArea: d.Area(),
		TargetRatio:   targetRatio,
	}
	for _, p := range l.Positions {
		m.TotalPanelArea += p.Height * l.Width
	}
	m.NegativeSpaceArea = m.TotalDoorArea - m.TotalPanelArea

	if m.NegativeSpaceArea > 0 {
		m.ActualRatio = m.TotalPanelArea / m.NegativeSpaceArea
	}
	if targetRatio > 0 {
		m.RatioErrorPct = math.Abs(m.ActualRatio-targetRatio) / targetRatio * 100
	}

	e := sp.Edge
	m.EdgeArea = 2*e*d.Width + 2*e*d.Height - 4*e*e
	totalGaps := float64(max(len(l.Positions)-1, 0)) * sp.Gap
	m.GapArea = totalGaps * l.Width
	m.Remainder = m.NegativeSpaceArea - m.EdgeArea - m.GapArea
	return m
}
