package door

import "math"

const (
	// fallbackEdgeFraction is the share of the door height used as edge
	// distance when the spacing quadratic has no usable root.
	fallbackEdgeFraction = 0.05

	// minSolvedEdge is the smallest edge distance accepted from the solver.
	minSolvedEdge = 1.0
)

// ResolveSpacing returns the edge distance and panel gap to lay out with.
//
// With s.Auto unset the configured values are returned unchanged, even when
// they will not fit. With s.Auto set, the edge distance e is solved so that
// the panel area over the negative space equals s.TargetRatio, with the gap
// fixed at e / TargetRatio:
//
//	2k·e² − (k·W + 2·H)·e + W·H/(1+r) = 0,  k = 2 + (n−1)/r
//
// The smaller-magnitude root is used. If there is no real root, or the root
// lies outside [1, H/3], e falls back to H × 0.05. A non-positive target
// ratio is replaced with [Phi]; a non-positive panel count counts as one.
func ResolveSpacing(d Door, panelCount int, s Spacing) EffectiveSpacing {
	if !s.Auto {
		return EffectiveSpacing{Edge: s.EdgeDistance, Gap: s.PanelGap}
	}

	r := s.TargetRatio
	if !(r > 0) {
		r = Phi
	}
	n := max(panelCount, 1)

	edge, ok := solveEdge(d, n, r)
	if !ok {
		edge = d.Height * fallbackEdgeFraction
	}
	return EffectiveSpacing{
		Edge:     edge,
		Gap:      edge / r,
		Auto:     true,
		Fallback: !ok,
	}
}

// solveEdge solves the spacing quadratic and reports whether the chosen root
// is real and within the sane range.
func solveEdge(d Door, n int, r float64) (float64, bool) {
	k := 2 + float64(n-1)/r
	a := 2 * k
	b := -(k*d.Width + 2*d.Height)
	c := d.Width * d.Height / (1 + r)

	disc := b*b - 4*a*c
	if disc < 0 || math.IsNaN(disc) {
		return 0, false
	}

	sq := math.Sqrt(disc)
	r1 := (-b - sq) / (2 * a)
	r2 := (-b + sq) / (2 * a)
	e := r1
	if math.Abs(r2) < math.Abs(r1) {
		e = r2
	}

	if e < minSolvedEdge || e > d.Height/3 || math.IsNaN(e) {
		return 0, false
	}
	return e, true
}
