package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/doorpanels/pkg/pipeline"
	"github.com/matzehuels/doorpanels/pkg/render/sink"
)

// layoutOpts holds the output flags of the layout command.
type layoutOpts struct {
	json       bool
	saveConfig string
	refresh    bool
}

// layoutCommand creates the layout command for computing and reporting a layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in    inputFlags
		cf    cacheFlags
		flags layoutOpts
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute a panel layout and print a report",
		Long: `Compute a panel layout and print a report.

The door is described by an optional TOML input file (--input) and flags;
flags override values from the file. The report lists the effective spacing,
each panel's position, the peephole placement with any edge conflicts, and the
area metrics.

Use --json to print the full layout result instead, and --save-config to
write the effective options as a TOML input file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := in.options(cmd.Flags())
			if err != nil {
				return err
			}
			opts.Refresh = flags.refresh
			return c.runLayout(cmd.Context(), opts, cf, flags, os.Stdout)
		},
	}

	in.register(cmd.Flags())
	cf.register(cmd.Flags())
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the layout result as JSON")
	cmd.Flags().StringVar(&flags.saveConfig, "save-config", "", "write the effective options to a TOML file")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even if the layout is cached")

	return cmd
}

// runLayout computes the layout and writes the report or JSON to w.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, cf cacheFlags, flags layoutOpts, w io.Writer) error {
	runner, err := c.newRunner(ctx, cf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	done := stopwatch(c.Logger, "layout")
	res, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	done("Computed layout", "panels", len(res.Panels.Positions), "cached", cacheHit)

	if flags.saveConfig != "" {
		if err := pipeline.SaveOptions(flags.saveConfig, opts); err != nil {
			return err
		}
		c.Logger.Infof("Saved options to %s", flags.saveConfig)
	}

	if flags.json {
		data, err := sink.RenderJSON(res, sink.WithJSONIndent())
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	fmt.Fprint(w, renderReport(res))
	fmt.Fprintln(w)
	fmt.Fprintln(w, statusLine(pipeline.Summarize(res), cacheHit))
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleDim.Render("Render:")+" "+styleCommand.Render(appName+" render "+renderHint(flags)))
	return nil
}

func renderHint(flags layoutOpts) string {
	if flags.saveConfig != "" {
		return "-i " + flags.saveConfig
	}
	return "-f svg,png"
}
