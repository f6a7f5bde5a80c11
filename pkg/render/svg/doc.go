// Package svg renders a timeline graph as a standalone SVG document.
//
// The renderer walks the graph's branches, nodes, and edges and delegates
// every visual primitive to a [Style]. Two styles ship with the package:
//
//   - [Simple]: light background, flat colors
//   - [Dark]: GitHub-dark inspired palette
//
// Usage:
//
//	g, _ := timeline.Build(records, today, cfg)
//	out := svg.Render(g, cfg, svg.WithStyle(svg.Dark{}))
//
// Output is deterministic: the same graph and options always produce the
// same bytes.
package svg
