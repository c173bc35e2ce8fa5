package door

import "math"

// Phi is the golden ratio (1+√5)/2.
var Phi = (1 + math.Sqrt(5)) / 2

// ProportionType selects the sequence used to weight panel heights.
type ProportionType string

// Supported proportion types. Unknown values behave like ProportionEqual.
const (
	ProportionEqual     ProportionType = "equal"
	ProportionGolden    ProportionType = "golden"
	ProportionReverse   ProportionType = "reverse"
	ProportionClassic   ProportionType = "classic"
	ProportionFibonacci ProportionType = "fibonacci"
)

// ProportionTypes lists every supported proportion type in display order.
var ProportionTypes = []ProportionType{
	ProportionEqual,
	ProportionGolden,
	ProportionReverse,
	ProportionClassic,
	ProportionFibonacci,
}

// Valid reports whether t is one of the supported proportion types.
func (t ProportionType) Valid() bool {
	for _, v := range ProportionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ConflictModel selects how a peephole is judged to lie inside a panel.
type ConflictModel string

const (
	// ConflictRadius treats the peephole as contained only when its whole
	// vertical span lies within the panel.
	ConflictRadius ConflictModel = "radius"

	// ConflictLegacy treats the peephole as contained when its center lies
	// within the panel; clearance may then be negative.
	ConflictLegacy ConflictModel = "legacy"
)

// Door holds the outer dimensions of the door.
type Door struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Area returns width × height.
func (d Door) Area() float64 { return d.Width * d.Height }

// Spacing is the user's spacing configuration. When Auto is false the edge
// distance and panel gap are used verbatim; when true they are solved from
// TargetRatio.
type Spacing struct {
	EdgeDistance float64 `json:"edge_distance" toml:"edge_distance"`
	PanelGap     float64 `json:"panel_gap" toml:"panel_gap"`
	Auto         bool    `json:"auto" toml:"auto"`
	TargetRatio  float64 `json:"target_ratio" toml:"target_ratio"`
}

// Proportion selects the number of panels and their height sequence.
type Proportion struct {
	PanelCount int            `json:"panel_count" toml:"panel_count"`
	Type       ProportionType `json:"type" toml:"type"`
}

// Peephole describes the peephole cutout. DistanceFromTop is the top of the
// peephole and is only used when AutoCenter is false.
type Peephole struct {
	Diameter        float64       `json:"diameter" toml:"diameter"`
	DistanceFromTop float64       `json:"distance_from_top" toml:"distance_from_top"`
	AutoCenter      bool          `json:"auto_center" toml:"auto_center"`
	PreferGap       bool          `json:"prefer_gap" toml:"prefer_gap"`
	MinEdgeDistance float64       `json:"min_edge_distance" toml:"min_edge_distance"`
	Model           ConflictModel `json:"conflict_model,omitempty" toml:"conflict_model"`
}

// Radius returns half the diameter.
func (p Peephole) Radius() float64 { return p.Diameter / 2 }

// Input is the immutable snapshot handed to [ComputeLayout].
// A nil Peephole disables peephole placement and conflict analysis.
type Input struct {
	Door       Door       `json:"door"`
	Spacing    Spacing    `json:"spacing"`
	Proportion Proportion `json:"proportion"`
	Peephole   *Peephole  `json:"peephole,omitempty"`
}

// EffectiveSpacing is the spacing actually used for the layout.
type EffectiveSpacing struct {
	Edge     float64 `json:"edge"`
	Gap      float64 `json:"gap"`
	Auto     bool    `json:"auto"`
	Fallback bool    `json:"fallback,omitempty"` // solver used the height × 0.05 fallback
}

// PanelPosition is one panel's vertical extent, measured from the top of the door.
type PanelPosition struct {
	Index  int     `json:"index"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Height float64 `json:"height"`
	Share  float64 `json:"share"`
}

// Center returns the vertical center of the panel.
func (p PanelPosition) Center() float64 { return (p.Top + p.Bottom) / 2 }

// PanelLayout is the output of [BuildPanels].
type PanelLayout struct {
	Positions       []PanelPosition `json:"positions"`
	Width           float64         `json:"width"`
	AvailableHeight float64         `json:"available_height"` // height shared by the panels, clamped at 0
	TotalUsedHeight float64         `json:"total_used_height"`
	Fits            bool            `json:"fits"`
}

// Gap returns the vertical extent between panel i and panel i+1.
func (l PanelLayout) Gap(i int) (top, bottom float64) {
	return l.Positions[i].Bottom, l.Positions[i+1].Top
}

// PanelConflictKind classifies a peephole against one panel.
type PanelConflictKind string

const (
	PanelNone           PanelConflictKind = "none"
	PanelInsideSafe     PanelConflictKind = "inside_safe"
	PanelTooCloseToEdge PanelConflictKind = "too_close_to_edge"
	PanelCrossesEdge    PanelConflictKind = "crosses_edge"
)

// PanelConflict is the classification of a peephole against one panel.
// For PanelInsideSafe and PanelTooCloseToEdge, Distance is the clearance
// between the peephole rim and the nearer panel edge. For PanelCrossesEdge it
// is the distance from the peephole center to the nearer panel edge. It is
// zero for PanelNone.
type PanelConflict struct {
	Panel    int               `json:"panel"`
	Kind     PanelConflictKind `json:"kind"`
	Distance float64           `json:"distance"`
}

// GapConflictKind classifies a peephole against the gaps between panels.
type GapConflictKind string

const (
	GapNone     GapConflictKind = "none"
	GapSafe     GapConflictKind = "gap_safe"
	GapTooClose GapConflictKind = "gap_too_close"
)

// GapConflict is the classification of a peephole against the gap its center
// falls in. Gap is the index of the panel above the gap, or -1 for GapNone.
type GapConflict struct {
	Gap      int             `json:"gap"`
	Kind     GapConflictKind `json:"kind"`
	Distance float64         `json:"distance"`
}

// Placement records where a resolved peephole position came from.
type Placement string

const (
	PlacementFixed Placement = "fixed" // user-supplied distance from top
	PlacementPanel Placement = "panel" // center of a panel
	PlacementGap   Placement = "gap"   // center of a gap
	PlacementIdeal Placement = "ideal" // no admissible candidate; ergonomic ideal
)

// Coordinates locate the peephole center for reporting.
type Coordinates struct {
	X          float64 `json:"x"`
	FromTop    float64 `json:"from_top"`
	FromBottom float64 `json:"from_bottom"`
}

// PeepholeResult is the output of [PlacePeephole].
type PeepholeResult struct {
	Diameter    float64         `json:"diameter"`
	Top         float64         `json:"top"`
	Center      float64         `json:"center"`
	InGap       bool            `json:"in_gap"`
	Placement   Placement       `json:"placement"`
	Ideal       float64         `json:"ideal"`
	Panels      []PanelConflict `json:"panels"`
	Gap         GapConflict     `json:"gap"`
	Coordinates Coordinates     `json:"coordinates"`
}

// Safe reports whether no panel or gap conflict is a warning.
func (r PeepholeResult) Safe() bool {
	for _, c := range r.Panels {
		if c.Kind == PanelTooCloseToEdge || c.Kind == PanelCrossesEdge {
			return false
		}
	}
	return r.Gap.Kind != GapTooClose
}

// Metrics are the area and ratio verification figures.
type Metrics struct {
	TotalDoorArea     float64 `json:"total_door_area"`
	TotalPanelArea    float64 `json:"total_panel_area"`
	NegativeSpaceArea float64 `json:"negative_space_area"`
	TargetRatio       float64 `json:"target_ratio"`
	ActualRatio       float64 `json:"actual_ratio"`
	RatioErrorPct     float64 `json:"ratio_error_pct"`
	EdgeArea          float64 `json:"edge_area"`
	GapArea           float64 `json:"gap_area"`
	Remainder         float64 `json:"remainder"`
}

// Result is the complete output of one [ComputeLayout] pass.
type Result struct {
	Input    Input            `json:"input"`
	Spacing  EffectiveSpacing `json:"spacing"`
	Weights  []float64        `json:"weights"`
	Panels   PanelLayout      `json:"panels"`
	Peephole *PeepholeResult  `json:"peephole,omitempty"`
	Metrics  Metrics          `json:"metrics"`
}
