package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/matzehuels/doorpanels/pkg/door"
	"github.com/matzehuels/doorpanels/pkg/errors"
	"github.com/matzehuels/doorpanels/pkg/pipeline"
)

func parseInputFlags(t *testing.T, args ...string) (pipeline.Options, error) {
	t.Helper()
	var in inputFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	in.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return in.options(fs)
}

func TestInputFlagsDefaults(t *testing.T) {
	opts, err := parseInputFlags(t)
	if err != nil {
		t.Fatal(err)
	}
	want := pipeline.DefaultOptions()
	if opts.Door != want.Door || opts.Spacing != want.Spacing || opts.Proportion != want.Proportion || opts.Peephole != want.Peephole {
		t.Errorf("options without flags = %+v, want defaults", opts)
	}
}

func TestInputFlagsOverride(t *testing.T) {
	opts, err := parseInputFlags(t,
		"--width", "90", "--height", "210",
		"--auto", "--ratio", "1.5",
		"-n", "3", "-p", "fibonacci",
		"--peephole-top", "50", "--conflict-model", "legacy",
		"--no-validate",
	)
	if err != nil {
		t.Fatal(err)
	}

	if opts.Door != (door.Door{Width: 90, Height: 210}) {
		t.Errorf("Door = %+v", opts.Door)
	}
	if !opts.Spacing.Auto || opts.Spacing.TargetRatio != 1.5 {
		t.Errorf("Spacing = %+v", opts.Spacing)
	}
	if opts.Proportion != (door.Proportion{PanelCount: 3, Type: door.ProportionFibonacci}) {
		t.Errorf("Proportion = %+v", opts.Proportion)
	}
	if opts.Peephole.AutoCenter || opts.Peephole.DistanceFromTop != 50 {
		t.Errorf("--peephole-top should fix the peephole, got %+v", opts.Peephole)
	}
	if opts.Peephole.Model != door.ConflictLegacy {
		t.Errorf("Model = %q", opts.Peephole.Model)
	}
	if !opts.NoValidate {
		t.Error("NoValidate not set")
	}
}

func TestInputFlagsFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "door.toml")
	doc := "[door]\nwidth = 80\nheight = 190\n\n[proportion]\npanel_count = 4\ntype = \"equal\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := parseInputFlags(t, "-i", path, "--height", "200")
	if err != nil {
		t.Fatal(err)
	}
	if opts.Door.Width != 80 {
		t.Errorf("width from file = %v, want 80", opts.Door.Width)
	}
	if opts.Door.Height != 200 {
		t.Errorf("height flag should override file, got %v", opts.Door.Height)
	}
	if opts.Proportion.PanelCount != 4 {
		t.Errorf("panel count from file = %d, want 4", opts.Proportion.PanelCount)
	}
	if opts.Spacing.EdgeDistance != pipeline.DefaultEdgeDistance {
		t.Errorf("edge distance absent from file should keep default, got %v", opts.Spacing.EdgeDistance)
	}
}

func TestInputFlagsMissingFile(t *testing.T) {
	_, err := parseInputFlags(t, "-i", filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}
