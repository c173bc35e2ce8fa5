// Package door computes decorative panel layouts for rectangular doors.
//
// # Overview
//
// A door of a given width and height is divided into a vertical stack of
// full-width panels. The engine derives the spacing around and between the
// panels, distributes the remaining height according to a proportional
// sequence, checks that the result fits, and validates (or searches for) the
// position of a circular peephole against panel and gap boundaries.
//
// The computation runs in four stages, each exposed as its own function:
//
//  1. [ResolveSpacing]: edge distance and panel gap, optionally solved so
//     that panel area / negative space equals a target ratio
//  2. [Weights] and [Normalize]: relative panel heights for a [ProportionType]
//  3. [BuildPanels]: absolute panel positions, panel width and the fit verdict
//  4. [PlacePeephole]: peephole position and per-panel/gap conflicts
//
// [Verify] attaches area and ratio figures to the result. [ComputeLayout] runs
// the whole pipeline and is the entry point for callers.
//
// # Units
//
// The engine is unit-agnostic: every length shares one linear unit. The
// ergonomic peephole band (145-180 from the floor) assumes centimetres.
//
// # Totality
//
// No function in this package returns an error or panics on numeric input.
// Zero, negative or oversized values yield degenerate layouts: panels collapse
// to zero height, the spacing solver falls back to a fixed fraction of the
// door height, and overflow is reported through [PanelLayout.Fits]. Every
// function is pure, so results may be cached by input equality.
//
// # Example
//
//	res := door.ComputeLayout(door.Input{
//	    Door:       door.Door{Width: 103, Height: 201},
//	    Spacing:    door.Spacing{EdgeDistance: 15, PanelGap: 10, TargetRatio: door.Phi},
//	    Proportion: door.Proportion{PanelCount: 2, Type: door.ProportionGolden},
//	})
//	fmt.Println(res.Panels.Fits) // true
package door
