package door

import (
	"math"
	"slices"
	"testing"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// referenceInput is a 103×201 door with two golden panels and manual spacing.
func referenceInput() Input {
	return Input{
		Door:       Door{Width: 103, Height: 201},
		Spacing:    Spacing{EdgeDistance: 15, PanelGap: 10, TargetRatio: Phi},
		Proportion: Proportion{PanelCount: 2, Type: ProportionGolden},
	}
}

func TestWeightsShape(t *testing.T) {
	for _, typ := range ProportionTypes {
		for count := 1; count <= 50; count++ {
			w := Weights(count, typ)
			if len(w) != count {
				t.Fatalf("Weights(%d, %s) length = %d, want %d", count, typ, len(w), count)
			}
			for i, v := range w {
				if !(v > 0) {
					t.Errorf("Weights(%d, %s)[%d] = %v, want > 0", count, typ, i, v)
				}
			}
			if again := Weights(count, typ); !slices.Equal(w, again) {
				t.Errorf("Weights(%d, %s) not deterministic", count, typ)
			}
		}
	}
}

func TestWeightsSequences(t *testing.T) {
	tests := []struct {
		name  string
		count int
		typ   ProportionType
		want  []float64
	}{
		{"equal", 3, ProportionEqual, []float64{1, 1, 1}},
		{"classic single", 1, ProportionClassic, []float64{1}},
		{"classic pair is asymmetric", 2, ProportionClassic, []float64{1, 2}},
		{"classic odd", 5, ProportionClassic, []float64{1, 2, 3, 2, 1}},
		{"classic even", 4, ProportionClassic, []float64{1, 2, 2, 1}},
		{"fibonacci", 7, ProportionFibonacci, []float64{1, 1, 2, 3, 5, 8, 13}},
		{"unknown is equal", 2, ProportionType("spiral"), []float64{1, 1}},
		{"zero count", 0, ProportionGolden, []float64{1}},
		{"negative count", -4, ProportionClassic, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Weights(tt.count, tt.typ); !slices.Equal(got, tt.want) {
				t.Errorf("Weights(%d, %s) = %v, want %v", tt.count, tt.typ, got, tt.want)
			}
		})
	}
}

func TestWeightsGolden(t *testing.T) {
	golden := Weights(4, ProportionGolden)
	reverse := Weights(4, ProportionReverse)
	for i := range golden {
		if want := math.Pow(Phi, float64(i)); !approx(golden[i], want, 1e-12) {
			t.Errorf("golden[%d] = %v, want %v", i, golden[i], want)
		}
		if reverse[i] != golden[len(golden)-1-i] {
			t.Errorf("reverse[%d] = %v, want %v", i, reverse[i], golden[len(golden)-1-i])
		}
	}
}

func TestNormalizeSumsToOne(t *testing.T) {
	for _, typ := range ProportionTypes {
		for count := 1; count <= 50; count++ {
			var sum float64
			for _, v := range Normalize(Weights(count, typ)) {
				sum += v
			}
			if !approx(sum, 1, 1e-9) {
				t.Errorf("Normalize(Weights(%d, %s)) sum = %v, want 1", count, typ, sum)
			}
		}
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	got := Normalize([]float64{0, 0})
	if !slices.Equal(got, []float64{0.5, 0.5}) {
		t.Errorf("Normalize(zero weights) = %v, want equal shares", got)
	}
	if got := Normalize(nil); len(got) != 0 {
		t.Errorf("Normalize(nil) = %v, want empty", got)
	}
}

func TestResolveSpacingManual(t *testing.T) {
	s := Spacing{EdgeDistance: 400, PanelGap: 300, TargetRatio: Phi}
	got := ResolveSpacing(Door{Width: 103, Height: 201}, 2, s)
	if got.Edge != 400 || got.Gap != 300 || got.Auto || got.Fallback {
		t.Errorf("ResolveSpacing(manual) = %+v, want values passed through", got)
	}
}

func TestResolveSpacingAuto(t *testing.T) {
	in := referenceInput()
	in.Spacing.Auto = true
	res := ComputeLayout(in)

	if res.Spacing.Fallback {
		t.Fatalf("expected the quadratic to be solvable, got fallback %+v", res.Spacing)
	}
	if !approx(res.Spacing.Gap, res.Spacing.Edge/Phi, 1e-12) {
		t.Errorf("Gap = %v, want Edge/φ = %v", res.Spacing.Gap, res.Spacing.Edge/Phi)
	}
	if res.Spacing.Edge < 1 || res.Spacing.Edge > 201.0/3 {
		t.Errorf("Edge = %v, want within [1, H/3]", res.Spacing.Edge)
	}
	if res.Metrics.RatioErrorPct >= 5 {
		t.Errorf("RatioErrorPct = %v, want < 5", res.Metrics.RatioErrorPct)
	}
	if !res.Panels.Fits {
		t.Error("auto spacing should always fit")
	}
}

func TestResolveSpacingFallback(t *testing.T) {
	tests := []struct {
		name  string
		door  Door
		count int
		ratio float64
	}{
		{"root below one", Door{Width: 10, Height: 10}, 2, Phi},
		{"tiny door", Door{Width: 2, Height: 3}, 5, 1},
		{"nan width", Door{Width: math.NaN(), Height: 200}, 2, Phi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := ResolveSpacing(tt.door, tt.count, Spacing{Auto: true, TargetRatio: tt.ratio})
			if !sp.Fallback {
				t.Fatalf("expected fallback, got %+v", sp)
			}
			if want := tt.door.Height * 0.05; sp.Edge != want {
				t.Errorf("Edge = %v, want %v", sp.Edge, want)
			}
			if want := sp.Edge / tt.ratio; sp.Gap != want {
				t.Errorf("Gap = %v, want %v", sp.Gap, want)
			}

			res := ComputeLayout(Input{
				Door:       tt.door,
				Spacing:    Spacing{Auto: true, TargetRatio: tt.ratio},
				Proportion: Proportion{PanelCount: tt.count, Type: ProportionEqual},
			})
			if !res.Panels.Fits {
				t.Error("fallback spacing should still fit")
			}
		})
	}
}

func TestResolveSpacingNonPositiveRatio(t *testing.T) {
	sp := ResolveSpacing(Door{Width: 103, Height: 201}, 2, Spacing{Auto: true})
	want := ResolveSpacing(Door{Width: 103, Height: 201}, 2, Spacing{Auto: true, TargetRatio: Phi})
	if sp != want {
		t.Errorf("ResolveSpacing(ratio 0) = %+v, want %+v", sp, want)
	}
}

func TestComputeLayoutReference(t *testing.T) {
	res := ComputeLayout(referenceInput())
	l := res.Panels

	if len(l.Positions) != 2 {
		t.Fatalf("len(Positions) = %d, want 2", len(l.Positions))
	}
	if !approx(l.AvailableHeight, 161, 1e-9) {
		t.Errorf("AvailableHeight = %v, want 161", l.AvailableHeight)
	}
	if !approx(l.Positions[0].Share, 1/(1+Phi), 1e-12) {
		t.Errorf("share[0] = %v, want %v", l.Positions[0].Share, 1/(1+Phi))
	}
	wantHeights := []float64{61.5, 99.5}
	for i, want := range wantHeights {
		if !approx(l.Positions[i].Height, want, 0.01) {
			t.Errorf("height[%d] = %v, want ≈ %v", i, l.Positions[i].Height, want)
		}
	}
	if l.Positions[0].Top != 15 {
		t.Errorf("first panel top = %v, want 15", l.Positions[0].Top)
	}
	if !approx(l.TotalUsedHeight, 171, 1e-9) {
		t.Errorf("TotalUsedHeight = %v, want 171", l.TotalUsedHeight)
	}
	if l.Width != 73 {
		t.Errorf("Width = %v, want 73", l.Width)
	}
	if !l.Fits {
		t.Error("Fits = false, want true")
	}
	if res.Peephole != nil {
		t.Error("Peephole should be nil without peephole input")
	}
}

func TestBuildPanelsContiguous(t *testing.T) {
	for _, typ := range ProportionTypes {
		for count := 1; count <= 12; count++ {
			sp := EffectiveSpacing{Edge: 7.3, Gap: 3.7}
			l := BuildPanels(Door{Width: 90, Height: 210}, sp, Normalize(Weights(count, typ)))
			for i := 0; i+1 < len(l.Positions); i++ {
				if l.Positions[i+1].Top != l.Positions[i].Bottom+sp.Gap {
					t.Errorf("%s/%d: panel %d top = %v, want %v", typ, count, i+1,
						l.Positions[i+1].Top, l.Positions[i].Bottom+sp.Gap)
				}
			}
		}
	}
}

func TestBuildPanelsOverflow(t *testing.T) {
	sp := EffectiveSpacing{Edge: 50, Gap: 60}
	l := BuildPanels(Door{Width: 103, Height: 201}, sp, Normalize(Weights(3, ProportionEqual)))

	if l.Fits {
		t.Error("Fits = true, want false for oversized spacing")
	}
	if l.AvailableHeight != 0 {
		t.Errorf("AvailableHeight = %v, want clamped to 0", l.AvailableHeight)
	}
	for i, p := range l.Positions {
		if p.Height != 0 {
			t.Errorf("panel %d height = %v, want 0", i, p.Height)
		}
	}
}

func TestFitMonotonic(t *testing.T) {
	d := Door{Width: 103, Height: 201}
	shares := Normalize(Weights(4, ProportionFibonacci))

	for edge := 0.0; edge <= 120; edge += 5 {
		prev := true
		for gap := 0.0; gap <= 80; gap += 2.5 {
			fits := BuildPanels(d, EffectiveSpacing{Edge: edge, Gap: gap}, shares).Fits
			if fits && !prev {
				t.Fatalf("edge %v: fits went false → true at gap %v", edge, gap)
			}
			prev = fits
		}
	}
	for gap := 0.0; gap <= 80; gap += 5 {
		prev := true
		for edge := 0.0; edge <= 120; edge += 2.5 {
			fits := BuildPanels(d, EffectiveSpacing{Edge: edge, Gap: gap}, shares).Fits
			if fits && !prev {
				t.Fatalf("gap %v: fits went false → true at edge %v", gap, edge)
			}
			prev = fits
		}
	}
}

func TestComputeLayoutDegenerateInputs(t *testing.T) {
	inputs := []Input{
		{},
		{Door: Door{Width: -10, Height: -20}, Proportion: Proportion{PanelCount: -3}},
		{Door: Door{Width: 1e12, Height: 1e12}, Spacing: Spacing{Auto: true, TargetRatio: 1e-9}, Proportion: Proportion{PanelCount: 50, Type: ProportionGolden}},
		{Door: Door{Width: 100, Height: 200}, Spacing: Spacing{EdgeDistance: 500}, Peephole: &Peephole{Diameter: 6, AutoCenter: true}},
	}
	for i, in := range inputs {
		res := ComputeLayout(in)
		if len(res.Weights) == 0 || len(res.Panels.Positions) != len(res.Weights) {
			t.Errorf("input %d: weights/positions mismatch: %d/%d", i, len(res.Weights), len(res.Panels.Positions))
		}
	}
}

func TestVerifyDecomposition(t *testing.T) {
	res := ComputeLayout(referenceInput())
	m := res.Metrics

	if m.TotalDoorArea != 103*201 {
		t.Errorf("TotalDoorArea = %v, want %v", m.TotalDoorArea, 103*201)
	}
	if !approx(m.TotalPanelArea, 161*73, 1e-6) {
		t.Errorf("TotalPanelArea = %v, want %v", m.TotalPanelArea, 161*73)
	}
	if !approx(m.EdgeArea, 8220, 1e-9) {
		t.Errorf("EdgeArea = %v, want 8220", m.EdgeArea)
	}
	if !approx(m.GapArea, 730, 1e-9) {
		t.Errorf("GapArea = %v, want 730", m.GapArea)
	}
	if !approx(m.Remainder, 0, 1e-6) {
		t.Errorf("Remainder = %v, want 0", m.Remainder)
	}
	wantRatio := 11753.0 / 8950.0
	if !approx(m.ActualRatio, wantRatio, 1e-9) {
		t.Errorf("ActualRatio = %v, want %v", m.ActualRatio, wantRatio)
	}
	if want := math.Abs(wantRatio-Phi) / Phi * 100; !approx(m.RatioErrorPct, want, 1e-9) {
		t.Errorf("RatioErrorPct = %v, want %v", m.RatioErrorPct, want)
	}
}

func TestVerifyNoNegativeSpace(t *testing.T) {
	res := ComputeLayout(Input{
		Door:       Door{Width: 100, Height: 100},
		Spacing:    Spacing{TargetRatio: 2},
		Proportion: Proportion{PanelCount: 1},
	})
	if res.Metrics.ActualRatio != 0 || res.Metrics.RatioErrorPct != 100 {
		t.Errorf("metrics = %+v, want ratio 0 and error 100", res.Metrics)
	}
}
