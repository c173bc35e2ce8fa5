package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/doorpanels/pkg/pipeline"
	"github.com/matzehuels/doorpanels/pkg/render/sink"
)

// stdoutPath selects standard output as the render destination.
const stdoutPath = "-"

// renderOpts holds the output flags of the render command.
type renderOpts struct {
	output     string
	formats    string
	style      string
	scale      float64
	dimensions bool
	refresh    bool
}

// renderCommand creates the render command for drawing a layout to files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in inputFlags
		cf cacheFlags
	)
	flags := renderOpts{
		style: string(pipeline.DefaultStyle),
		scale: sink.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a panel layout to SVG, PNG or JSON",
		Long: `Render a panel layout to SVG, PNG or JSON.

The layout is computed from the same input file and flags as 'layout'. With a
single format, --output names the file ("-" writes to stdout); with several
formats it is a base path and each format gets its own extension.

Layouts and rendered artifacts are cached locally, or in Redis with --cache-url.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.options(cmd.Flags())
			if err != nil {
				return err
			}
			opts.Formats = parseFormats(flags.formats)
			opts.Style = sink.Style(flags.style)
			opts.Scale = flags.scale
			opts.Dimensions = flags.dimensions
			opts.Refresh = flags.refresh
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			if flags.output == stdoutPath && len(opts.Formats) > 1 {
				return fmt.Errorf("cannot write %d formats to stdout", len(opts.Formats))
			}
			return c.runRender(cmd.Context(), opts, cf, flags.output, in.input)
		},
	}

	in.register(cmd.Flags())
	cf.register(cmd.Flags())
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&flags.style, "style", flags.style, "visual style: simple (default), wood")
	cmd.Flags().Float64Var(&flags.scale, "scale", flags.scale, "pixels per door unit (png)")
	cmd.Flags().BoolVar(&flags.dimensions, "dimensions", false, "draw dimension labels")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even if the layout is cached")

	return cmd
}

// runRender executes the pipeline and writes one artifact per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, cf cacheFlags, output, input string) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	done := stopwatch(c.Logger, "render")
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	done("Rendered", "formats", strings.Join(opts.Formats, ","), "cached", result.CacheInfo.RenderHit)

	if output == stdoutPath {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.Formats, output, input)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStatus(pipeline.Summarize(result.Layout), result.CacheInfo.LayoutHit)
	printWarnings(sink.Warnings(result.Layout))
	if input != "" {
		printNewline()
		printNextStep("Tune interactively", appName+" edit -i "+input)
	}
	return nil
}

// outputPaths maps each format to its destination file.
func outputPaths(formats []string, output, input string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path. Without --output it is the input
// file name without extension, or "door" when there is no input file. A
// known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "door"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// openOutput creates path and any missing parent directories.
func openOutput(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
