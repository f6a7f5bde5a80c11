package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwielgus/postgraph/pkg/graph"
	"github.com/mwielgus/postgraph/pkg/pipeline"
	"github.com/mwielgus/postgraph/pkg/post"
)

// graphCommand creates the graph command for exporting the model as JSON.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output     string
		configFile string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "graph [dir]",
		Short: "Build the post graph and write it as JSON",
		Long: `Build the post graph and write it as JSON.

The graph command loads all markdown posts from the directory, derives
branches from primary tags, and writes the positioned graph model to a
JSON file. The output can be rendered later with 'render' or consumed by
a web frontend.`,
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
			return c.runGraph(cmd.Context(), opts, cfg, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "graph.json", "output file")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default ~/.config/postgraph/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Today, "today", "", "treat this date as the current date (e.g. 2025-06-15)")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runGraph loads posts, builds the model, and writes it.
func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, cfg Config, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Building graph...")
	spinner.Start()

	posts, err := runner.Load(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return err
	}

	g, cacheHit, err := runner.BuildWithCacheInfo(ctx, post.Records(posts), opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if err := graph.WriteGraphFile(g, output); err != nil {
		return err
	}

	printSuccess("Built graph from %d posts", len(posts))
	printStats(len(g.Nodes), len(g.Edges), cacheHit)
	printFile(output)
	return nil
}

// addLayoutFlags registers the shared layout override flags.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.RowHeight, "row-height", 0, "vertical pitch between commit rows")
	cmd.Flags().Float64Var(&opts.PaddingTop, "padding-top", 0, "y coordinate of the first row")
	cmd.Flags().Float64Var(&opts.PaddingBottom, "padding-bottom", 0, "space below the last row")
	cmd.Flags().Float64Var(&opts.MainX, "main-x", 0, "x coordinate of the main lane")
	cmd.Flags().Float64Var(&opts.BranchSpacing, "branch-spacing", 0, "distance between tag lanes")
	cmd.Flags().Float64Var(&opts.LabelWidth, "label-width", 0, "space reserved for labels")
}
