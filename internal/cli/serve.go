package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/doorpanels/internal/server"
	"github.com/matzehuels/doorpanels/pkg/observability"
)

// serveCommand creates the preview server command.
func (c *CLI) serveCommand() *cobra.Command {
	var cf cacheFlags
	cfg := server.Config{Bind: "127.0.0.1", Port: 8080}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and renders over HTTP",
		Long: `Serve layouts and renders over HTTP.

Endpoints:
  GET  /healthz               build information
  POST /api/layout            options (JSON) → layout result
  POST /api/render/{format}   options (JSON) → svg, png or json

Request bodies use the same fields as a TOML input file; missing fields take
the defaults. Use --cache-url to share a Redis cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), cf)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			observability.Register(observability.NewLogHooks(c.Logger))
			defer observability.Reset()

			srv := server.New(cfg, runner, c.Logger)
			err = srv.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				printInfo("Server stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&cfg.Bind, "bind", cfg.Bind, "address to bind")
	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "port to listen on (0 picks a free port)")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", 0, "per-request timeout (default 30s)")
	cf.register(cmd.Flags())

	return cmd
}
