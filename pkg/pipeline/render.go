package pipeline

import (
	"github.com/mwielgus/postgraph/pkg/errors"
	"github.com/mwielgus/postgraph/pkg/graph"
	"github.com/mwielgus/postgraph/pkg/render"
	"github.com/mwielgus/postgraph/pkg/render/dot"
	"github.com/mwielgus/postgraph/pkg/render/svg"
	"github.com/mwielgus/postgraph/pkg/timeline"
)

// Render generates output artifacts in the requested formats.
func Render(g timeline.Graph, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if opts.IsNodelink() {
		return renderNodelink(g, opts)
	}
	return renderTimeline(g, opts)
}

// renderTimeline generates outputs of the positioned lane view.
func renderTimeline(g timeline.Graph, opts Options) (map[string][]byte, error) {
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg.Render(g, opts.Config(), svgOpts...)
		case FormatPNG:
			data, err = render.ToPNG(svg.Render(g, opts.Config(), svgOpts...), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(svg.Render(g, opts.Config(), svgOpts...))
		case FormatDOT:
			data = []byte(dot.ToDOT(g, dot.Options{Detailed: opts.Detailed}))
		case FormatJSON:
			data, err = graph.MarshalGraph(g)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates outputs of the Graphviz debug view.
func renderNodelink(g timeline.Graph, opts Options) (map[string][]byte, error) {
	src := dot.ToDOT(g, dot.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = dot.RenderSVG(src)
		case FormatPNG:
			data, err = dot.RenderPNG(src, opts.Scale)
		case FormatPDF:
			var rendered []byte
			if rendered, err = dot.RenderSVG(src); err == nil {
				data, err = render.ToPDF(rendered)
			}
		case FormatDOT:
			data = []byte(src)
		case FormatJSON:
			data, err = graph.MarshalGraph(g)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions maps the pipeline options onto the SVG renderer's.
func buildSVGOptions(opts Options) ([]svg.Option, error) {
	style, ok := svg.StyleByName(opts.Style)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q", opts.Style)
	}
	svgOpts := []svg.Option{svg.WithStyle(style)}
	if opts.NoLabels {
		svgOpts = append(svgOpts, svg.WithoutLabels())
	}
	return svgOpts, nil
}
