package door

// ComputeLayout runs the full pipeline for one input snapshot: spacing,
// proportions, panel positions, verification metrics and, when in.Peephole is
// set, peephole placement. It never fails; degenerate inputs produce
// degenerate results.
func ComputeLayout(in Input) Result {
	weights := Weights(in.Proportion.PanelCount, in.Proportion.Type)
	shares := Normalize(weights)

	sp := ResolveSpacing(in.Door, len(weights), in.Spacing)
	panels := BuildPanels(in.Door, sp, shares)

	target := in.Spacing.TargetRatio
	if sp.Auto && !(target > 0) {
		target = Phi
	}

	res := Result{
		Input:   in,
		Spacing: sp,
		Weights: weights,
		Panels:  panels,
		Metrics: Verify(in.Door, sp, panels, target),
	}
	if in.Peephole != nil {
		p := *in.Peephole
		res.Input.Peephole = &p
		ph := PlacePeephole(panels, in.Door, p)
		res.Peephole = &ph
	}
	return res
}
