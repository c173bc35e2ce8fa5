// Package pipeline provides the layout → render pipeline for doorpanels.
//
// This package is shared by the CLI commands and the HTTP preview server so
// that both validate input, cache results and render artifacts the same way.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: run [door.ComputeLayout] on the input described by [Options]
//  2. Render: draw the result in one or more formats (SVG, PNG, JSON)
//
// Each stage is cached by content hash: the layout by the hash of its input,
// artifacts by the hash of the layout and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Proportion.PanelCount = 3
//	opts.Formats = []string{"svg"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [door.ComputeLayout]: github.com/matzehuels/doorpanels/pkg/door.ComputeLayout
package pipeline

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/doorpanels/pkg/cache"
	"github.com/matzehuels/doorpanels/pkg/door"
	"github.com/matzehuels/doorpanels/pkg/errors"
	"github.com/matzehuels/doorpanels/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	DefaultDoorWidth       = 103.0
	DefaultDoorHeight      = 201.0
	DefaultEdgeDistance    = 15.0
	DefaultPanelGap        = 10.0
	DefaultPanelCount      = 2
	DefaultProportion      = door.ProportionGolden
	DefaultPeepholeDiam    = 6.0
	DefaultPeepholeTop     = 40.0
	DefaultMinEdgeDistance = 2.0
	DefaultStyle           = sink.StyleSimple
)

// DefaultTargetRatio is the golden ratio.
var DefaultTargetRatio = door.Phi

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// PeepholeOptions adds an on/off switch to the engine's peephole settings.
type PeepholeOptions struct {
	Enabled bool `json:"enabled" toml:"enabled"`
	door.Peephole
}

// Options contains all configuration for one pipeline run. It is the TOML
// input file format and the JSON request body of the preview server.
type Options struct {
	Door       door.Door       `json:"door" toml:"door"`
	Spacing    door.Spacing    `json:"spacing" toml:"spacing"`
	Proportion door.Proportion `json:"proportion" toml:"proportion"`
	Peephole   PeepholeOptions `json:"peephole" toml:"peephole"`

	// Render options
	Formats    []string   `json:"formats,omitempty" toml:"formats,omitempty"`
	Style      sink.Style `json:"style,omitempty" toml:"style,omitempty"`
	Scale      float64    `json:"scale,omitempty" toml:"scale,omitempty"`
	Dimensions bool       `json:"dimensions,omitempty" toml:"dimensions,omitempty"`

	// Runtime options (not serialized)
	NoValidate bool        `json:"-" toml:"-"` // pass raw values to the engine
	Refresh    bool        `json:"-" toml:"-"` // bypass cached layouts
	Logger     *log.Logger `json:"-" toml:"-"`
}

// DefaultOptions returns options describing a 103×201 door with two golden
// panels and an auto-centered peephole.
func DefaultOptions() Options {
	return Options{
		Door: door.Door{Width: DefaultDoorWidth, Height: DefaultDoorHeight},
		Spacing: door.Spacing{
			EdgeDistance: DefaultEdgeDistance,
			PanelGap:     DefaultPanelGap,
			TargetRatio:  DefaultTargetRatio,
		},
		Proportion: door.Proportion{PanelCount: DefaultPanelCount, Type: DefaultProportion},
		Peephole: PeepholeOptions{
			Enabled: true,
			Peephole: door.Peephole{
				Diameter:        DefaultPeepholeDiam,
				DistanceFromTop: DefaultPeepholeTop,
				AutoCenter:      true,
				MinEdgeDistance: DefaultMinEdgeDistance,
				Model:           door.ConflictRadius,
			},
		},
		Formats: []string{FormatSVG},
		Style:   DefaultStyle,
		Scale:   sink.DefaultScale,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the engine output.
	Layout door.Result

	// InputHash is the content hash of the engine input.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.Field(errors.ErrCodeInvalidFormat, "formats", "must be one of svg, png, json, got %q", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style sink.Style) error {
	if !style.Valid() {
		return errors.Field(errors.ErrCodeInvalidStyle, "style", "must be simple or wood, got %q", style)
	}
	return nil
}

// ValidateProportion checks that t is a known proportion type.
func ValidateProportion(t door.ProportionType) error {
	if !t.Valid() {
		names := make([]string, len(door.ProportionTypes))
		for i, p := range door.ProportionTypes {
			names[i] = string(p)
		}
		return errors.Field(errors.ErrCodeInvalidProportion, "proportion.type", "must be one of %s, got %q",
			strings.Join(names, ", "), t)
	}
	return nil
}

// ValidateConflictModel checks that m is empty or a known conflict model.
func ValidateConflictModel(m door.ConflictModel) error {
	switch m {
	case "", door.ConflictRadius, door.ConflictLegacy:
		return nil
	}
	return errors.Field(errors.ErrCodeInvalidPeephole, "peephole.conflict_model", "must be radius or legacy, got %q", m)
}

// =============================================================================
// Options Methods
// =============================================================================

// Validate checks the engine input and, always, the render options. With
// NoValidate set the engine input is passed through unchecked.
func (o *Options) Validate() error {
	if !o.NoValidate {
		if err := o.ValidateInput(); err != nil {
			return err
		}
	}
	return o.ValidateForRender()
}

// ValidateInput checks the values handed to the layout engine.
func (o *Options) ValidateInput() error {
	checks := []error{
		errors.ValidatePositive(errors.ErrCodeInvalidDoor, "door.width", o.Door.Width),
		errors.ValidatePositive(errors.ErrCodeInvalidDoor, "door.height", o.Door.Height),
		errors.ValidateNonNegative(errors.ErrCodeInvalidSpacing, "spacing.edge_distance", o.Spacing.EdgeDistance),
		errors.ValidateNonNegative(errors.ErrCodeInvalidSpacing, "spacing.panel_gap", o.Spacing.PanelGap),
		errors.ValidatePanelCount(o.Proportion.PanelCount),
		ValidateProportion(o.Proportion.Type),
	}
	if o.Spacing.Auto {
		checks = append(checks, errors.ValidatePositive(errors.ErrCodeInvalidSpacing, "spacing.target_ratio", o.Spacing.TargetRatio))
	}
	if p := o.Peephole; p.Enabled {
		checks = append(checks,
			errors.ValidatePositive(errors.ErrCodeInvalidPeephole, "peephole.diameter", p.Diameter),
			errors.ValidateNonNegative(errors.ErrCodeInvalidPeephole, "peephole.min_edge_distance", p.MinEdgeDistance),
			ValidateConflictModel(p.Model),
		)
		if !p.AutoCenter {
			checks = append(checks, errors.ValidateNonNegative(errors.ErrCodeInvalidPeephole, "peephole.distance_from_top", p.DistanceFromTop))
		}
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = sink.DefaultScale
	}
}

// ValidateForRender sets render defaults and validates render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	return errors.ValidatePositive(errors.ErrCodeInvalidInput, "scale", o.Scale)
}

// Input returns the immutable engine input described by o.
func (o *Options) Input() door.Input {
	in := door.Input{
		Door:       o.Door,
		Spacing:    o.Spacing,
		Proportion: o.Proportion,
	}
	if o.Peephole.Enabled {
		p := o.Peephole.Peephole
		in.Peephole = &p
	}
	return in
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      string(o.Style),
		Scale:      o.Scale,
		Dimensions: o.Dimensions,
	}
}
