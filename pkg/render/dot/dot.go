package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mwielgus/postgraph/pkg/render"
	"github.com/mwielgus/postgraph/pkg/timeline"
)

// Options configures node-link diagram export.
type Options struct {
	// Detailed includes slugs and dates in node labels.
	// When false, only the title is shown.
	Detailed bool
}

// ToDOT converts a timeline graph to Graphviz DOT format. The resulting
// string can be rendered using [RenderSVG] or [RenderPNG].
//
// Merge nodes are rendered as points in their source lane's color; lane
// membership is expressed as dashed chain edges in row order.
func ToDOT(g timeline.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph timeline {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		switch n := n.(type) {
		case timeline.Commit:
			label := commitLabel(n, opts.Detailed)
			fmt.Fprintf(&buf, "  %q [label=%q, color=%q];\n",
				n.ID, label, laneColor(g, n.Branch))
		case timeline.Merge:
			fmt.Fprintf(&buf, "  %q [shape=point, width=0.15, color=%q];\n",
				n.ID, mergeColor(g, n))
		}
	}

	buf.WriteString("\n")
	for _, chain := range laneChains(g) {
		for i := 1; i < len(chain.ids); i++ {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=%q, arrowhead=none];\n",
				chain.ids[i-1], chain.ids[i], chain.color)
		}
	}
	for _, e := range g.Edges {
		if e.Kind != timeline.EdgeMergeConnector {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func commitLabel(n timeline.Commit, detailed bool) string {
	if !detailed {
		return n.Title
	}
	parts := []string{
		n.Title,
		"slug: " + n.Slug,
		"date: " + n.Date.Format("2006-01-02"),
	}
	return strings.Join(parts, "\n")
}

type chain struct {
	ids   []string
	color string
}

// laneChains collects each branch's node IDs in row order. Merge nodes
// participate in the main chain at their row.
func laneChains(g timeline.Graph) []chain {
	chains := make([]chain, 0, len(g.Branches))
	for _, b := range g.Branches {
		c := chain{color: b.Color}
		for _, n := range g.Nodes {
			switch n := n.(type) {
			case timeline.Commit:
				if n.Branch == b.ID {
					c.ids = append(c.ids, n.ID)
				}
			case timeline.Merge:
				if n.Branch == b.ID {
					c.ids = append(c.ids, n.ID)
				}
			}
		}
		chains = append(chains, c)
	}
	return chains
}

func laneColor(g timeline.Graph, branchID string) string {
	if b, ok := g.Branch(branchID); ok {
		return b.Color
	}
	return "#6e7781"
}

func mergeColor(g timeline.Graph, m timeline.Merge) string {
	for _, n := range g.Nodes {
		if c, ok := n.(timeline.Commit); ok && c.Slug == m.Slug {
			return laneColor(g, c.Branch)
		}
	}
	return laneColor(g, m.Branch)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns SVG bytes ready for display or conversion with [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg element so the document scales
// in browsers (Graphviz emits fixed pt sizes).
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
