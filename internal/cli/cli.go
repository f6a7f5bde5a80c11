// Package cli implements the postgraph command-line interface.
//
// This package provides commands for building the post graph from a
// directory of markdown posts, rendering it as SVG, PNG, PDF, or DOT,
// serving it over HTTP, and browsing posts in the terminal. The CLI is
// built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - graph: Build the graph model and write it as JSON
//   - render: Generate SVG, PNG, PDF, or DOT visualizations
//   - serve: Serve the graph over HTTP
//   - browse: Browse posts interactively in the terminal
//   - cache: Manage the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mwielgus/postgraph/pkg/buildinfo"
	"github.com/mwielgus/postgraph/pkg/cache"
	"github.com/mwielgus/postgraph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "postgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Postgraph renders markdown posts as a commit graph",
		Long:         `Postgraph turns a directory of dated markdown posts into a git-style commit graph: posts become commits, tags become branches, and time flows down the page.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.graphCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use. The cache backend comes
// from the config file unless disabled with --no-cache.
func (c *CLI) newRunner(ctx context.Context, cfg Config, noCache bool) (*pipeline.Runner, error) {
	backend, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(backend, nil, c.Logger), nil
}

// newCache builds the configured cache backend. A missing home directory
// for the local file cache degrades to a null cache rather than failing
// the command.
func newCache(ctx context.Context, cfg Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case "", CacheBackendFile:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case CacheBackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	case CacheBackendMongo:
		return cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      cfg.Cache.MongoURI,
			Database: cfg.Cache.MongoDatabase,
		})
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		return nil, invalidBackendError(cfg.Cache.Backend)
	}
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/postgraph/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
