package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/doorpanels/pkg/door"
	"github.com/matzehuels/doorpanels/pkg/pipeline"
)

// inputFlags describe the door on the command line. Values come from the
// built-in defaults, then the --input file, then any flag the user set.
type inputFlags struct {
	input string

	width, height float64

	edge, gap float64
	auto      bool
	ratio     float64

	panels     int
	proportion string

	peephole      bool
	diameter      float64
	peepholeTop   float64
	autoCenter    bool
	preferGap     bool
	minEdge       float64
	conflictModel string

	noValidate bool
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	d := pipeline.DefaultOptions()

	fs.StringVarP(&f.input, "input", "i", "", "TOML input file (default: built-in 103×201 door)")

	fs.Float64Var(&f.width, "width", d.Door.Width, "door width")
	fs.Float64Var(&f.height, "height", d.Door.Height, "door height")

	fs.Float64Var(&f.edge, "edge", d.Spacing.EdgeDistance, "distance from the door edge to the panels")
	fs.Float64Var(&f.gap, "gap", d.Spacing.PanelGap, "vertical gap between panels")
	fs.BoolVar(&f.auto, "auto", d.Spacing.Auto, "solve edge and gap from --ratio")
	fs.Float64Var(&f.ratio, "ratio", d.Spacing.TargetRatio, "target panel area to negative space ratio (with --auto)")

	fs.IntVarP(&f.panels, "panels", "n", d.Proportion.PanelCount, "number of panels")
	fs.StringVarP(&f.proportion, "proportion", "p", string(d.Proportion.Type), "panel proportion: equal, golden, reverse, classic, fibonacci")

	fs.BoolVar(&f.peephole, "peephole", d.Peephole.Enabled, "place a peephole")
	fs.Float64Var(&f.diameter, "diameter", d.Peephole.Diameter, "peephole diameter")
	fs.Float64Var(&f.peepholeTop, "peephole-top", d.Peephole.DistanceFromTop, "distance from the door top to the peephole (disables --auto-center)")
	fs.BoolVar(&f.autoCenter, "auto-center", d.Peephole.AutoCenter, "center the peephole on a panel or gap")
	fs.BoolVar(&f.preferGap, "prefer-gap", d.Peephole.PreferGap, "prefer gap centers over panel centers")
	fs.Float64Var(&f.minEdge, "min-edge", d.Peephole.MinEdgeDistance, "minimum clearance between the peephole and a panel edge")
	fs.StringVar(&f.conflictModel, "conflict-model", string(d.Peephole.Model), "conflict model: radius, legacy")

	fs.BoolVar(&f.noValidate, "no-validate", false, "pass values to the engine without validation")
}

// options builds pipeline options from the input file and the flags that
// were set explicitly.
func (f *inputFlags) options(fs *pflag.FlagSet) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if f.input != "" {
		loaded, err := pipeline.LoadOptions(f.input)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts = loaded
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("width", func() { opts.Door.Width = f.width })
	set("height", func() { opts.Door.Height = f.height })
	set("edge", func() { opts.Spacing.EdgeDistance = f.edge })
	set("gap", func() { opts.Spacing.PanelGap = f.gap })
	set("auto", func() { opts.Spacing.Auto = f.auto })
	set("ratio", func() { opts.Spacing.TargetRatio = f.ratio })
	set("panels", func() { opts.Proportion.PanelCount = f.panels })
	set("proportion", func() { opts.Proportion.Type = door.ProportionType(f.proportion) })
	set("peephole", func() { opts.Peephole.Enabled = f.peephole })
	set("diameter", func() { opts.Peephole.Diameter = f.diameter })
	set("peephole-top", func() {
		opts.Peephole.DistanceFromTop = f.peepholeTop
		opts.Peephole.AutoCenter = false
	})
	set("auto-center", func() { opts.Peephole.AutoCenter = f.autoCenter })
	set("prefer-gap", func() { opts.Peephole.PreferGap = f.preferGap })
	set("min-edge", func() { opts.Peephole.MinEdgeDistance = f.minEdge })
	set("conflict-model", func() { opts.Peephole.Model = door.ConflictModel(f.conflictModel) })

	opts.NoValidate = f.noValidate
	return opts, nil
}
