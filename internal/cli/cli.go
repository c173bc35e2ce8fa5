// Package cli implements the doorpanels command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/doorpanels/pkg/buildinfo"
	"github.com/matzehuels/doorpanels/pkg/cache"
	"github.com/matzehuels/doorpanels/pkg/pipeline"
)

const (
	appName     = "doorpanels"
	cacheURLEnv = "DOORPANELS_CACHE_URL" // default for --cache-url
)

// Log levels selectable from main.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// CLI carries the state shared by all subcommands.
type CLI struct {
	Logger *log.Logger
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the level of the CLI logger.
func (c *CLI) SetLogLevel(level log.Level) { c.Logger.SetLevel(level) }

// Execute builds the command tree and runs it with os.Args. Errors are
// returned unprinted.
func (c *CLI) Execute(ctx context.Context) error {
	return c.RootCommand().ExecuteContext(ctx)
}

// RootCommand returns the doorpanels command with every subcommand and the
// global --verbose and --quiet flags.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose, quiet bool

	root := &cobra.Command{
		Use:   appName,
		Short: "Lay out decorative panels on a door",
		Long: `doorpanels computes the decorative panels of a door: the margins
around and between panels, the height of each panel from a proportion sequence,
and a peephole position that stays clear of panel edges.

Print a report with 'layout', draw SVG, PNG or JSON with 'render', tune the
options live with 'edit', or answer HTTP requests with 'serve'.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			switch {
			case verbose:
				c.SetLogLevel(LogDebug)
			case quiet:
				c.SetLogLevel(LogWarn)
			}
			return nil
		},
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug detail")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log warnings and errors only")

	root.AddCommand(
		c.layoutCommand(),
		c.renderCommand(),
		c.editCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)
	return root
}

// cacheFlags selects the cache backing a runner.
type cacheFlags struct {
	noCache bool
	url     string
}

func (f *cacheFlags) register(fs *pflag.FlagSet) {
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.StringVar(&f.url, "cache-url", os.Getenv(cacheURLEnv), "Redis URL for a shared cache (default: local file cache)")
}

// newRunner returns a runner backed by the cache the flags select.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if _, shared := cc.(*cache.RedisCache); shared {
		// Builds sharing one Redis instance must not read each other's layouts.
		keyer = cache.Namespace(nil, appName, buildinfo.Get().Version)
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil
	case f.url != "":
		rc, err := cache.NewRedisCache(ctx, f.url)
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		c.Logger.Debug("Using Redis cache", "url", redactURL(f.url))
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("No cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// redactURL drops any credentials from a cache URL before it is logged.
func redactURL(u string) string {
	scheme, rest, ok := strings.Cut(u, "://")
	if !ok {
		return u
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	return scheme + "://" + rest
}

// cacheDir returns $XDG_CACHE_HOME/doorpanels, or ~/.cache/doorpanels.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats splits a comma-separated --format value. Empty means svg.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
