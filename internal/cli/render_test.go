package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/doorpanels/pkg/pipeline"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name, output, input, want string
	}{
		{"defaults to door", "", "", "door"},
		{"from input", "", "designs/front.toml", "designs/front"},
		{"strips format extension", "out/front.svg", "", "out/front"},
		{"keeps unknown extension", "out/front.v2", "", "out/front.v2"},
		{"output wins over input", "out/x", "front.toml", "out/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	single := outputPaths([]string{"png"}, "preview.image", "")
	if single["png"] != "preview.image" {
		t.Errorf("single format should use --output verbatim, got %q", single["png"])
	}

	multi := outputPaths([]string{"svg", "json"}, "out/front.svg", "")
	if multi["svg"] != "out/front.svg" || multi["json"] != "out/front.json" {
		t.Errorf("multi = %v", multi)
	}
}

func TestRunRender(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	dir := t.TempDir()

	opts := pipeline.DefaultOptions()
	opts.Formats = []string{"svg", "png", "json"}
	opts.Dimensions = true

	base := filepath.Join(dir, "nested", "front")
	if err := c.runRender(context.Background(), opts, cacheFlags{}, base, ""); err != nil {
		t.Fatal(err)
	}

	prefixes := map[string][]byte{
		"svg":  []byte("<svg"),
		"png":  []byte("\x89PNG"),
		"json": []byte("{"),
	}
	for format, prefix := range prefixes {
		data, err := os.ReadFile(base + "." + format)
		if err != nil {
			t.Errorf("%s not written: %v", format, err)
			continue
		}
		if !bytes.HasPrefix(data, prefix) {
			t.Errorf("%s starts with %q", format, data[:min(8, len(data))])
		}
	}

	// A second run is served from the file cache and writes the same bytes.
	first, _ := os.ReadFile(base + ".svg")
	if err := c.runRender(context.Background(), opts, cacheFlags{}, base, ""); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(base + ".svg")
	if !bytes.Equal(first, second) {
		t.Error("cached render differs from the first render")
	}
}

func TestRunRenderInvalid(t *testing.T) {
	c := New(io.Discard, LogInfo)
	opts := pipeline.DefaultOptions()
	opts.Proportion.PanelCount = 0

	err := c.runRender(context.Background(), opts, cacheFlags{noCache: true}, filepath.Join(t.TempDir(), "x.svg"), "")
	if err == nil {
		t.Fatal("zero panels should fail validation")
	}
}

func TestRenderCommandRejectsMultipleFormatsToStdout(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"render", "--no-cache", "-f", "svg,png", "-o", "-"})
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("expected an error for several formats on stdout")
	}
}
