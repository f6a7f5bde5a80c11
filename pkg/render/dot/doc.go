// Package dot exports a timeline graph as a Graphviz node-link diagram.
//
// This is the debug view of the model: every commit and merge becomes a
// node, lanes become color-coded chains, and merge connectors become
// edges. It makes the graph's structure inspectable independently of the
// positioned SVG rendering.
//
//	src := dot.ToDOT(g, dot.Options{})
//	svg, err := dot.RenderSVG(src)
package dot
