package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwielgus/postgraph/internal/server"
	"github.com/mwielgus/postgraph/pkg/cache"
	"github.com/mwielgus/postgraph/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configFile string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve the post graph over HTTP",
		Long: `Serve the post graph over HTTP.

Endpoints:
  GET /api/graph   graph model as JSON
  GET /graph.svg   rendered SVG (query: style, view, labels, refresh)
  GET /graph.png   rendered PNG (requires librsvg)
  GET /graph.dot   Graphviz DOT source
  GET /healthz     health check

Posts are re-read per request, so edits show up on reload; the cache
keys include the post content, making stale responses impossible. With
a shared backend (redis, mongo) keys are additionally scoped by the
source directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				opts.Source = args[0]
			}
			applyConfig(&opts, cfg)
			if addr == "" {
				addr = cfg.Server.Addr
			}

			ctx := cmd.Context()
			backend, err := newCache(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize cache: %w", err)
			}

			// Scope keys by source so several instances can share one
			// backend without colliding.
			keyer := cache.NewScopedKeyer(nil, "src:"+cache.Hash([]byte(opts.Source))[:12]+":")
			runner := pipeline.NewRunner(backend, keyer, c.Logger)
			defer runner.Close()

			srv := server.New(runner, server.Config{
				Addr:   addr,
				Opts:   opts,
				Logger: c.Logger,
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default ~/.config/postgraph/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Today, "today", "", "treat this date as the current date (e.g. 2025-06-15)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "default visual style: simple, dark")
	addLayoutFlags(cmd, &opts)

	return cmd
}
