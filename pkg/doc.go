// Package pkg provides the libraries behind doorpanels, a layout engine for
// the decorative panels of a door.
//
// # Overview
//
// Given a door's outer dimensions, a spacing configuration, a panel count
// with a proportion sequence and an optional peephole, doorpanels computes
// where each panel sits, how the negative space around the panels is
// distributed, and whether the peephole clears every panel edge.
//
// # Architecture
//
// The typical data flow:
//
//	TOML input file / flags / JSON request
//	         ↓
//	    [pipeline] package (options, validation, caching)
//	         ↓
//	    [door] package (spacing → proportions → panels → peephole → metrics)
//	         ↓
//	    [render/sink] package (SVG, PNG, JSON)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/doorpanels/pkg/door"
//	    "github.com/matzehuels/doorpanels/pkg/render/sink"
//	)
//
//	res := door.ComputeLayout(door.Input{
//	    Door:       door.Door{Width: 103, Height: 201},
//	    Spacing:    door.Spacing{EdgeDistance: 15, PanelGap: 10},
//	    Proportion: door.Proportion{PanelCount: 2, Type: door.ProportionGolden},
//	})
//	svg := sink.RenderSVG(res, sink.WithDimensions())
//
// # Main Packages
//
// [door] - The layout engine. Pure and total: every input, however
// degenerate, produces a Result; problems are reported in its fields.
//
// [render/sink] - Drawing a Result as SVG, PNG (via fogleman/gg) or JSON,
// plus the human-readable warnings shared by every front end.
//
// [pipeline] - Options with defaults and coded validation, TOML input files,
// and a Runner that caches layouts and rendered artifacts.
//
// [cache] - Cache interface with file, Redis and no-op backends, and the
// content-hash keys used by the Runner.
//
// [errors] - Coded errors for validation and I/O failures outside the engine.
//
// [observability] - Hooks for layout, render, cache and HTTP request events.
//
// [buildinfo] - Version information injected at build time.
//
// [door]: github.com/matzehuels/doorpanels/pkg/door
// [render/sink]: github.com/matzehuels/doorpanels/pkg/render/sink
// [pipeline]: github.com/matzehuels/doorpanels/pkg/pipeline
// [cache]: github.com/matzehuels/doorpanels/pkg/cache
// [errors]: github.com/matzehuels/doorpanels/pkg/errors
// [observability]: github.com/matzehuels/doorpanels/pkg/observability
// [buildinfo]: github.com/matzehuels/doorpanels/pkg/buildinfo
package pkg
