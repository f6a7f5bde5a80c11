package svg

import (
	"bytes"
	"fmt"

	"github.com/mwielgus/postgraph/pkg/timeline"
)

// Option configures the SVG renderer.
type Option func(*renderer)

type renderer struct {
	style      Style
	withLabels bool
}

// WithStyle selects the visual style. Default is [Simple].
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithoutLabels suppresses commit title and lane name text, leaving only
// the geometry. Used where the host page supplies its own labels.
func WithoutLabels() Option { return func(r *renderer) { r.withLabels = false } }

// StyleByName resolves a style identifier to its implementation.
func StyleByName(name string) (Style, bool) {
	switch name {
	case "", Simple{}.Name():
		return Simple{}, true
	case Dark{}.Name():
		return Dark{}, true
	}
	return nil, false
}

// Render produces a standalone SVG document for the graph. The same graph,
// configuration, and options always yield identical bytes.
func Render(g timeline.Graph, cfg timeline.Config, opts ...Option) []byte {
	r := renderer{style: Simple{}, withLabels: true}
	for _, opt := range opts {
		opt(&r)
	}

	width := cfg.MainX + cfg.LabelWidth
	height := cfg.Height(g.Rows())

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect class="background" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		width, height, r.style.Background())

	lanes := buildLanes(g, cfg)
	for _, l := range lanes {
		r.style.RenderLane(&buf, l)
	}

	// Separators go under the dots, today on top of everything.
	var today *Rule
	for _, n := range g.Nodes {
		switch n := n.(type) {
		case timeline.Separator:
			r.style.RenderSeparator(&buf, Rule{
				ID:    n.ID,
				Label: n.Label,
				Y:     n.Y,
				Width: width,
				Year:  n.Boundary == timeline.BoundaryYear,
			})
		case timeline.Today:
			today = &Rule{ID: n.ID, Y: n.Y, Width: width}
		}
	}

	for _, c := range buildConnectors(g) {
		r.style.RenderConnector(&buf, c)
	}

	for _, n := range g.Nodes {
		switch n := n.(type) {
		case timeline.Commit:
			r.style.RenderCommit(&buf, Dot{
				ID:    n.ID,
				Slug:  n.Slug,
				Color: laneColor(g, n.Branch),
				X:     n.X,
				Y:     n.Y,
			})
		case timeline.Merge:
			// Merge dots take the source lane's color so the reader can
			// trace where the branch lands on main.
			r.style.RenderMerge(&buf, Dot{
				ID:    n.ID,
				Slug:  n.Slug,
				Color: mergeColor(g, n),
				X:     n.X,
				Y:     n.Y,
			})
		}
	}

	if today != nil {
		r.style.RenderToday(&buf, *today)
	}

	if r.withLabels {
		for _, l := range lanes {
			if !l.Main {
				r.style.RenderLaneLabel(&buf, l)
			}
		}
		for _, c := range g.Commits() {
			r.style.RenderCommitLabel(&buf, Label{
				Title: c.Title,
				Date:  c.Date.Format("Jan 2, 2006"),
				X:     cfg.MainX + 24,
				Y:     c.Y,
			})
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// buildLanes computes the rail extents. A lane spans half a row beyond its
// first and last occupied row; branches with no nodes produce no rail.
func buildLanes(g timeline.Graph, cfg timeline.Config) []Lane {
	lanes := make([]Lane, 0, len(g.Branches))
	for _, b := range g.Branches {
		y1, y2, ok := laneExtent(g, b.ID)
		if !ok {
			continue
		}
		lanes = append(lanes, Lane{
			ID:    b.ID,
			Name:  b.Name,
			Color: b.Color,
			X:     b.X,
			Y1:    y1 - cfg.RowHeight/2,
			Y2:    y2 + cfg.RowHeight/2,
			Main:  b.IsMain(),
		})
	}
	return lanes
}

func laneExtent(g timeline.Graph, branchID string) (y1, y2 float64, ok bool) {
	for _, n := range g.Nodes {
		var y float64
		switch n := n.(type) {
		case timeline.Commit:
			if n.Branch != branchID {
				continue
			}
			y = n.Y
		case timeline.Merge:
			if n.Branch != branchID {
				continue
			}
			y = n.Y
		default:
			continue
		}
		if !ok || y < y1 {
			y1 = y
		}
		if !ok || y > y2 {
			y2 = y
		}
		ok = true
	}
	return y1, y2, ok
}

func buildConnectors(g timeline.Graph) []Connector {
	var out []Connector
	for _, e := range g.Edges {
		if e.Kind != timeline.EdgeMergeConnector {
			continue
		}
		from, okF := g.Node(e.From)
		to, okT := g.Node(e.To)
		if !okF || !okT {
			continue
		}
		x1, y1 := from.At()
		x2, y2 := to.At()
		color := "#6e7781"
		if c, ok := from.(timeline.Commit); ok {
			color = laneColor(g, c.Branch)
		}
		out = append(out, Connector{
			ID:    e.ID,
			Color: color,
			X1:    x1, Y1: y1,
			X2: x2, Y2: y2,
		})
	}
	return out
}

func laneColor(g timeline.Graph, branchID string) string {
	if b, ok := g.Branch(branchID); ok {
		return b.Color
	}
	return "#6e7781"
}

// mergeColor resolves a merge dot's color from its paired commit's lane.
func mergeColor(g timeline.Graph, m timeline.Merge) string {
	for _, c := range g.Commits() {
		if c.Slug == m.Slug {
			return laneColor(g, c.Branch)
		}
	}
	return laneColor(g, m.Branch)
}
