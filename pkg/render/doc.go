// Package render provides format conversion shared by the output sinks.
//
// The [ToPNG] and [ToPDF] functions convert any SVG to raster or print
// formats using the external rsvg-convert tool (from librsvg). They are
// used by both the timeline SVG renderer and the DOT debug view:
//
//	out := svg.Render(g, cfg)
//	png, err := render.ToPNG(out, 2.0) // 2x scale
//
// The timeline SVG renderer itself lives in [svg]; the Graphviz node-link
// debug view lives in [dot].
//
// [svg]: github.com/mwielgus/postgraph/pkg/render/svg
// [dot]: github.com/mwielgus/postgraph/pkg/render/dot
package render
