package pipeline

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/doorpanels/pkg/cache"
	"github.com/matzehuels/doorpanels/pkg/door"
	"github.com/matzehuels/doorpanels/pkg/errors"
	"github.com/matzehuels/doorpanels/pkg/render/sink"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	for _, s := range []string{"simple", "wood"} {
		if err := ValidateStyle(sink.Style(s)); err != nil {
			t.Errorf("ValidateStyle(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"handdrawn", ""} {
		if err := ValidateStyle(sink.Style(s)); !errors.Is(err, errors.ErrCodeInvalidStyle) {
			t.Errorf("ValidateStyle(%q) = %v, want INVALID_STYLE", s, err)
		}
	}
}

func TestValidateProportion(t *testing.T) {
	for _, p := range door.ProportionTypes {
		if err := ValidateProportion(p); err != nil {
			t.Errorf("ValidateProportion(%q) = %v", p, err)
		}
	}
	err := ValidateProportion("spiral")
	if !errors.Is(err, errors.ErrCodeInvalidProportion) {
		t.Fatalf("ValidateProportion(spiral) = %v", err)
	}
	if !strings.Contains(err.Error(), "equal, golden, reverse, classic, fibonacci") {
		t.Errorf("message should list types: %v", err)
	}
}

func TestDefaultOptionsValid(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("DefaultOptions should validate: %v", err)
	}
	if opts.Spacing.TargetRatio != door.Phi {
		t.Errorf("TargetRatio = %v, want Phi", opts.Spacing.TargetRatio)
	}
}

func TestOptionsValidateInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"zero width", func(o *Options) { o.Door.Width = 0 }, errors.ErrCodeInvalidDoor},
		{"nan height", func(o *Options) { o.Door.Height = math.NaN() }, errors.ErrCodeInvalidDoor},
		{"negative edge", func(o *Options) { o.Spacing.EdgeDistance = -1 }, errors.ErrCodeInvalidSpacing},
		{"negative gap", func(o *Options) { o.Spacing.PanelGap = -1 }, errors.ErrCodeInvalidSpacing},
		{"zero ratio auto", func(o *Options) { o.Spacing.Auto = true; o.Spacing.TargetRatio = 0 }, errors.ErrCodeInvalidSpacing},
		{"zero panels", func(o *Options) { o.Proportion.PanelCount = 0 }, errors.ErrCodeInvalidProportion},
		{"too many panels", func(o *Options) { o.Proportion.PanelCount = 51 }, errors.ErrCodeInvalidProportion},
		{"unknown type", func(o *Options) { o.Proportion.Type = "spiral" }, errors.ErrCodeInvalidProportion},
		{"zero diameter", func(o *Options) { o.Peephole.Diameter = 0 }, errors.ErrCodeInvalidPeephole},
		{"negative min edge", func(o *Options) { o.Peephole.MinEdgeDistance = -1 }, errors.ErrCodeInvalidPeephole},
		{"unknown model", func(o *Options) { o.Peephole.Model = "strict" }, errors.ErrCodeInvalidPeephole},
		{"negative fixed top", func(o *Options) {
			o.Peephole.AutoCenter = false
			o.Peephole.DistanceFromTop = -5
		}, errors.ErrCodeInvalidPeephole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}

			opts.NoValidate = true
			if err := opts.Validate(); err != nil {
				t.Errorf("NoValidate should skip input checks: %v", err)
			}
		})
	}
}

func TestOptionsValidateSkipsDisabledPeephole(t *testing.T) {
	opts := DefaultOptions()
	opts.Peephole.Enabled = false
	opts.Peephole.Diameter = 0
	if err := opts.Validate(); err != nil {
		t.Errorf("disabled peephole should not be validated: %v", err)
	}
}

func TestValidateForRenderDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Style != DefaultStyle || opts.Scale <= 0 {
		t.Errorf("Style = %q, Scale = %v", opts.Style, opts.Scale)
	}

	opts.Scale = -1
	if err := opts.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative scale = %v", err)
	}
}

func TestOptionsInput(t *testing.T) {
	opts := DefaultOptions()
	in := opts.Input()
	if in.Peephole == nil || in.Peephole.Diameter != 6 {
		t.Fatalf("Peephole = %+v", in.Peephole)
	}

	in.Peephole.Diameter = 9
	if opts.Peephole.Diameter != 6 {
		t.Error("Input should copy the peephole")
	}

	opts.Peephole.Enabled = false
	if opts.Input().Peephole != nil {
		t.Error("disabled peephole should produce a nil input peephole")
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "door.toml")
	data := `
formats = ["svg", "json"]
style = "wood"

[door]
width = 90
height = 210

[spacing]
auto = true
target_ratio = 2.0

[proportion]
panel_count = 3
type = "classic"

[peephole]
enabled = true
diameter = 5
auto_center = false
distance_from_top = 50
conflict_model = "legacy"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.Door != (door.Door{Width: 90, Height: 210}) {
		t.Errorf("Door = %+v", opts.Door)
	}
	if !opts.Spacing.Auto || opts.Spacing.TargetRatio != 2 {
		t.Errorf("Spacing = %+v", opts.Spacing)
	}
	if opts.Spacing.EdgeDistance != DefaultEdgeDistance {
		t.Errorf("unset edge distance should keep its default, got %v", opts.Spacing.EdgeDistance)
	}
	if opts.Proportion.PanelCount != 3 || opts.Proportion.Type != door.ProportionClassic {
		t.Errorf("Proportion = %+v", opts.Proportion)
	}
	if opts.Peephole.AutoCenter || opts.Peephole.DistanceFromTop != 50 || opts.Peephole.Model != door.ConflictLegacy {
		t.Errorf("Peephole = %+v", opts.Peephole)
	}
	if opts.Peephole.MinEdgeDistance != DefaultMinEdgeDistance {
		t.Errorf("MinEdgeDistance = %v", opts.Peephole.MinEdgeDistance)
	}
	if len(opts.Formats) != 2 || opts.Style != "wood" {
		t.Errorf("Formats = %v, Style = %q", opts.Formats, opts.Style)
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadOptions(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file = %v", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	os.WriteFile(bad, []byte("[door\nwidth = "), 0o644)
	if _, err := LoadOptions(bad); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("malformed file = %v", err)
	}

	unknown := filepath.Join(dir, "unknown.toml")
	os.WriteFile(unknown, []byte("[door]\nwidht = 90\n"), 0o644)
	_, err := LoadOptions(unknown)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) || !strings.Contains(err.Error(), "door.widht") {
		t.Errorf("unknown key = %v", err)
	}
}

func TestSaveOptionsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.toml")
	want := DefaultOptions()
	want.Proportion.PanelCount = 4
	want.Peephole.PreferGap = true

	if err := SaveOptions(path, want); err != nil {
		t.Fatalf("SaveOptions: %v", err)
	}
	got, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if got.Door != want.Door || got.Spacing != want.Spacing || got.Proportion != want.Proportion || got.Peephole != want.Peephole {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestRender(t *testing.T) {
	opts := DefaultOptions()
	opts.Formats = []string{FormatSVG, FormatPNG, FormatJSON}
	res := ComputeLayout(opts)

	artifacts, err := Render(res, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact missing")
	}
	if !bytes.HasPrefix(artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact missing")
	}
	if !bytes.HasPrefix(artifacts[FormatJSON], []byte("{")) {
		t.Error("json artifact missing")
	}

	opts.Formats = []string{"pdf"}
	if _, err := Render(res, opts); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Render(pdf) = %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(ComputeLayout(DefaultOptions()))
	if s.Panels != 2 || !s.Fits || s.Placement != door.PlacementPanel || !s.Safe {
		t.Errorf("Summarize = %+v", s)
	}

	opts := DefaultOptions()
	opts.Peephole.Enabled = false
	if s := Summarize(ComputeLayout(opts)); s.Placement != "" || !s.Safe {
		t.Errorf("Summarize without peephole = %+v", s)
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestRunnerExecuteCaches(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	defer r.Close()

	opts := DefaultOptions()
	opts.Formats = []string{FormatSVG, FormatJSON}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}
	if first.InputHash == "" {
		t.Error("InputHash should be set")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}
	if second.Layout.Panels.Positions[0].Bottom != first.Layout.Panels.Positions[0].Bottom {
		t.Error("cached layout differs")
	}

	opts.Refresh = true
	third, _ := r.Execute(ctx, opts)
	if third.CacheInfo.LayoutHit {
		t.Error("Refresh should bypass the layout cache")
	}
}

func TestRunnerExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, log.New(io.Discard))
	opts := DefaultOptions()
	opts.Door.Width = -1
	if _, err := r.Execute(context.Background(), opts); !errors.Is(err, errors.ErrCodeInvalidDoor) {
		t.Errorf("Execute = %v, want INVALID_DOOR", err)
	}
}

func TestRunnerNonFiniteBypassesCache(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	opts := DefaultOptions()
	opts.NoValidate = true
	opts.Door.Height = math.NaN()
	opts.Formats = []string{FormatJSON}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.InputHash != "" || res.CacheInfo.LayoutHit {
		t.Errorf("non-finite input should bypass the cache: %+v", res.CacheInfo)
	}
	if len(res.Artifacts[FormatJSON]) == 0 {
		t.Error("json artifact missing")
	}
}

func TestRunnerComputeLayout(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)

	opts := DefaultOptions()
	res, hit, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil || hit {
		t.Fatalf("first call: hit %v, err %v", hit, err)
	}
	if !res.Panels.Fits {
		t.Error("default layout should fit")
	}
	if _, hit, _ = r.ComputeLayoutWithCacheInfo(ctx, opts); !hit {
		t.Error("second call should hit")
	}

	opts.Proportion.PanelCount = 0
	if _, err := r.ComputeLayout(ctx, opts); !errors.Is(err, errors.ErrCodeInvalidProportion) {
		t.Errorf("ComputeLayout = %v", err)
	}
}

func TestExampleInputs(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example inputs")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			opts, err := LoadOptions(path)
			if err != nil {
				t.Fatalf("LoadOptions: %v", err)
			}
			if err := opts.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if res := ComputeLayout(opts); !res.Panels.Fits {
				t.Errorf("example layout does not fit")
			}
		})
	}
}
