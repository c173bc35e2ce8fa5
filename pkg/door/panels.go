package door

// fitTolerance absorbs floating-point error in the manual fit check.
const fitTolerance = 0.01

// BuildPanels lays the panels out top to bottom, starting at the edge
// distance, with one gap after each panel. shares must sum to one; its length
// is the panel count.
//
// All panels share the width door.Width − 2·edge. The height available to the
// panels is clamped at zero, so oversized spacing collapses panels rather than
// inverting them. For manual spacing the layout fits when the used height is
// within the inner door height (plus a small tolerance); auto-solved spacing
// always fits.
func BuildPanels(d Door, sp EffectiveSpacing, shares []float64) PanelLayout {
	n := len(shares)
	gaps := float64(max(n-1, 0)) * sp.Gap
	inner := d.Height - 2*sp.Edge
	available := max(0, inner-gaps)

	positions := make([]PanelPosition, n)
	y := sp.Edge
	var used float64
	for i, share := range shares {
		h := share * available
		positions[i] = PanelPosition{
			Index:  i,
			Top:    y,
			Bottom: y + h,
			Height: h,
			Share:  share,
		}
		used += h
		y = positions[i].Bottom + sp.Gap
	}
	used += gaps

	fits := sp.Auto || used <= inner+fitTolerance
	return PanelLayout{
		Positions:       positions,
		Width:           d.Width - 2*sp.Edge,
		AvailableHeight: available,
		TotalUsedHeight: used,
		Fits:            fits,
	}
}
