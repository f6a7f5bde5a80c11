package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwielgus/postgraph/pkg/pipeline"
)

// renderCommand creates the render command for generating visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		configFile string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [dir]",
		Short: "Render the post graph to SVG, PNG, PDF, or DOT",
		Long: `Render the post graph to SVG, PNG, PDF, or DOT.

The render command runs the full pipeline: it loads posts, builds the
graph, and renders the requested formats. Results are cached locally for
faster subsequent runs.

PNG and PDF output require librsvg (rsvg-convert) to be installed.`,
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
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, cfg, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file (default ~/.config/postgraph/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: simple (default), dark")
	cmd.Flags().StringVar(&opts.View, "view", "", "view: timeline (default), nodelink")
	cmd.Flags().BoolVar(&opts.NoLabels, "no-labels", false, "omit commit and lane labels")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "verbose node labels (nodelink)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "raster scale for PNG (default 2.0)")
	cmd.Flags().StringVar(&opts.Today, "today", "", "treat this date as the current date (e.g. 2025-06-15)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "rebuild the model even if cached")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, cfg Config, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering graph...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %d posts", result.Stats.PostCount)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	return writeArtifacts(result.Artifacts, opts.Formats, opts.Source, output)
}

// writeArtifacts writes one file per requested format. With a single
// format the output path is used as-is; with several, it is treated as a
// base path and the format extension is appended.
func writeArtifacts(artifacts map[string][]byte, formats []string, source, output string) error {
	base := basePath(output, source)

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path. If output is empty, the source
// directory name is used; a known format extension on output is stripped.
func basePath(output, source string) string {
	if output == "" {
		name := filepath.Base(filepath.Clean(source))
		if name == "." || name == string(filepath.Separator) {
			name = "graph"
		}
		return name
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
