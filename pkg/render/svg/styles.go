package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Style defines the visual appearance for timeline rendering.
// Implementations control how lanes, dots, connectors, and rules are drawn.
type Style interface {
	// Name returns the style identifier used in cache keys and CLI flags.
	Name() string
	// Background returns the frame background color.
	Background() string
	// RenderDefs writes SVG <defs> content (filters, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderLane writes the vertical rail for one branch.
	RenderLane(buf *bytes.Buffer, l Lane)
	// RenderLaneLabel writes the branch name above its rail.
	RenderLaneLabel(buf *bytes.Buffer, l Lane)
	// RenderCommit writes a commit dot.
	RenderCommit(buf *bytes.Buffer, d Dot)
	// RenderMerge writes a merge dot on the main lane.
	RenderMerge(buf *bytes.Buffer, d Dot)
	// RenderConnector writes the curve joining a commit to its merge dot.
	RenderConnector(buf *bytes.Buffer, c Connector)
	// RenderSeparator writes a full-width boundary rule with its label.
	RenderSeparator(buf *bytes.Buffer, r Rule)
	// RenderToday writes the current-date marker rule.
	RenderToday(buf *bytes.Buffer, r Rule)
	// RenderCommitLabel writes the title and date text beside a commit row.
	RenderCommitLabel(buf *bytes.Buffer, lb Label)
}

// Lane contains positioning data for one branch rail.
type Lane struct {
	ID     string  // Branch identifier
	Name   string  // Display name (original tag casing)
	Color  string  // Lane color
	X      float64 // Rail x coordinate
	Y1, Y2 float64 // Rail vertical extent
	Main   bool    // Whether this is the main lane
}

// Dot contains positioning data for a commit or merge node.
type Dot struct {
	ID    string  // Node identifier
	Slug  string  // Record slug (for hit-testing hooks)
	Color string  // Owning lane color
	X, Y  float64 // Center coordinates
}

// Connector contains endpoint data for a merge connector curve.
type Connector struct {
	ID             string  // Edge identifier
	Color          string  // Source lane color
	X1, Y1, X2, Y2 float64 // Curve endpoints
}

// Rule contains positioning data for a separator or today marker.
type Rule struct {
	ID    string  // Node identifier
	Label string  // Display text (empty for the today marker)
	Y     float64 // Rule y coordinate
	Width float64 // Frame width
	Year  bool    // Year boundary (heavier than month)
}

// Label contains the text placed beside a commit row.
type Label struct {
	Title string
	Date  string  // Formatted date line under the title
	X, Y  float64 // Anchor (left edge, commit center line)
}

// EscapeXML escapes a string for safe embedding in SVG text and attributes.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// =============================================================================
// Simple Style
// =============================================================================

// Simple is a clean light style with flat colors.
type Simple struct{}

func (Simple) Name() string       { return "simple" }
func (Simple) Background() string { return "#ffffff" }

// RenderDefs writes nothing; the simple style needs no defs.
func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderLane(buf *bytes.Buffer, l Lane) {
	width := 2.0
	if l.Main {
		width = 3.0
	}
	fmt.Fprintf(buf,
		`  <line id="lane-%s" class="lane" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" stroke-opacity="0.35"/>`+"\n",
		EscapeXML(l.ID), l.X, l.Y1, l.X, l.Y2, l.Color, width)
}

func (Simple) RenderLaneLabel(buf *bytes.Buffer, l Lane) {
	fmt.Fprintf(buf,
		`  <text class="lane-label" x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="11" fill="%s">%s</text>`+"\n",
		l.X, l.Y1-8, l.Color, EscapeXML(l.Name))
}

func (Simple) RenderCommit(buf *bytes.Buffer, d Dot) {
	fmt.Fprintf(buf,
		`  <circle id="%s" class="commit" data-slug="%s" cx="%.2f" cy="%.2f" r="6" fill="%s" stroke="#ffffff" stroke-width="2"/>`+"\n",
		EscapeXML(d.ID), EscapeXML(d.Slug), d.X, d.Y, d.Color)
}

func (Simple) RenderMerge(buf *bytes.Buffer, d Dot) {
	fmt.Fprintf(buf,
		`  <circle id="%s" class="merge" data-slug="%s" cx="%.2f" cy="%.2f" r="4" fill="%s"/>`+"\n",
		EscapeXML(d.ID), EscapeXML(d.Slug), d.X, d.Y, d.Color)
}

func (Simple) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf,
		`  <path id="%s" class="connector" d="%s" fill="none" stroke="%s" stroke-width="2" stroke-opacity="0.6"/>`+"\n",
		EscapeXML(c.ID), connectorPath(c), c.Color)
}

func (Simple) RenderSeparator(buf *bytes.Buffer, r Rule) {
	dash, color := "4 4", "#d0d7de"
	if r.Year {
		dash, color = "8 4", "#8c959f"
	}
	fmt.Fprintf(buf,
		`  <line id="%s" class="separator" x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1" stroke-dasharray="%s"/>`+"\n",
		EscapeXML(r.ID), r.Y, r.Width, r.Y, color, dash)
	fmt.Fprintf(buf,
		`  <text class="separator-label" x="8" y="%.2f" font-family="sans-serif" font-size="11" fill="#57606a">%s</text>`+"\n",
		r.Y-4, EscapeXML(r.Label))
}

func (Simple) RenderToday(buf *bytes.Buffer, r Rule) {
	fmt.Fprintf(buf,
		`  <line id="%s" class="today" x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#cf222e" stroke-width="1.5" stroke-dasharray="2 3"/>`+"\n",
		EscapeXML(r.ID), r.Y, r.Width, r.Y)
	fmt.Fprintf(buf,
		`  <text class="today-label" x="8" y="%.2f" font-family="sans-serif" font-size="10" fill="#cf222e">today</text>`+"\n",
		r.Y-4)
}

func (Simple) RenderCommitLabel(buf *bytes.Buffer, lb Label) {
	fmt.Fprintf(buf,
		`  <text class="commit-title" x="%.2f" y="%.2f" font-family="sans-serif" font-size="13" fill="#1f2328">%s</text>`+"\n",
		lb.X, lb.Y-2, EscapeXML(lb.Title))
	fmt.Fprintf(buf,
		`  <text class="commit-date" x="%.2f" y="%.2f" font-family="sans-serif" font-size="10" fill="#57606a">%s</text>`+"\n",
		lb.X, lb.Y+12, EscapeXML(lb.Date))
}

// =============================================================================
// Dark Style
// =============================================================================

// Dark is a dark style matching GitHub's dark theme palette.
type Dark struct{}

func (Dark) Name() string       { return "dark" }
func (Dark) Background() string { return "#0d1117" }

// RenderDefs writes nothing; the dark style needs no defs.
func (Dark) RenderDefs(buf *bytes.Buffer) {}

func (Dark) RenderLane(buf *bytes.Buffer, l Lane) {
	width := 2.0
	if l.Main {
		width = 3.0
	}
	fmt.Fprintf(buf,
		`  <line id="lane-%s" class="lane" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f" stroke-opacity="0.5"/>`+"\n",
		EscapeXML(l.ID), l.X, l.Y1, l.X, l.Y2, l.Color, width)
}

func (Dark) RenderLaneLabel(buf *bytes.Buffer, l Lane) {
	fmt.Fprintf(buf,
		`  <text class="lane-label" x="%.2f" y="%.2f" text-anchor="middle" font-family="sans-serif" font-size="11" fill="%s">%s</text>`+"\n",
		l.X, l.Y1-8, l.Color, EscapeXML(l.Name))
}

func (Dark) RenderCommit(buf *bytes.Buffer, d Dot) {
	fmt.Fprintf(buf,
		`  <circle id="%s" class="commit" data-slug="%s" cx="%.2f" cy="%.2f" r="6" fill="%s" stroke="#0d1117" stroke-width="2"/>`+"\n",
		EscapeXML(d.ID), EscapeXML(d.Slug), d.X, d.Y, d.Color)
}

func (Dark) RenderMerge(buf *bytes.Buffer, d Dot) {
	fmt.Fprintf(buf,
		`  <circle id="%s" class="merge" data-slug="%s" cx="%.2f" cy="%.2f" r="4" fill="%s"/>`+"\n",
		EscapeXML(d.ID), EscapeXML(d.Slug), d.X, d.Y, d.Color)
}

func (Dark) RenderConnector(buf *bytes.Buffer, c Connector) {
	fmt.Fprintf(buf,
		`  <path id="%s" class="connector" d="%s" fill="none" stroke="%s" stroke-width="2" stroke-opacity="0.75"/>`+"\n",
		EscapeXML(c.ID), connectorPath(c), c.Color)
}

func (Dark) RenderSeparator(buf *bytes.Buffer, r Rule) {
	dash, color := "4 4", "#30363d"
	if r.Year {
		dash, color = "8 4", "#484f58"
	}
	fmt.Fprintf(buf,
		`  <line id="%s" class="separator" x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1" stroke-dasharray="%s"/>`+"\n",
		EscapeXML(r.ID), r.Y, r.Width, r.Y, color, dash)
	fmt.Fprintf(buf,
		`  <text class="separator-label" x="8" y="%.2f" font-family="sans-serif" font-size="11" fill="#8b949e">%s</text>`+"\n",
		r.Y-4, EscapeXML(r.Label))
}

func (Dark) RenderToday(buf *bytes.Buffer, r Rule) {
	fmt.Fprintf(buf,
		`  <line id="%s" class="today" x1="0" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#f85149" stroke-width="1.5" stroke-dasharray="2 3"/>`+"\n",
		EscapeXML(r.ID), r.Y, r.Width, r.Y)
	fmt.Fprintf(buf,
		`  <text class="today-label" x="8" y="%.2f" font-family="sans-serif" font-size="10" fill="#f85149">today</text>`+"\n",
		r.Y-4)
}

func (Dark) RenderCommitLabel(buf *bytes.Buffer, lb Label) {
	fmt.Fprintf(buf,
		`  <text class="commit-title" x="%.2f" y="%.2f" font-family="sans-serif" font-size="13" fill="#e6edf3">%s</text>`+"\n",
		lb.X, lb.Y-2, EscapeXML(lb.Title))
	fmt.Fprintf(buf,
		`  <text class="commit-date" x="%.2f" y="%.2f" font-family="sans-serif" font-size="10" fill="#8b949e">%s</text>`+"\n",
		lb.X, lb.Y+12, EscapeXML(lb.Date))
}

// connectorPath builds the cubic curve joining a lane commit to its merge
// dot. Control points are pulled horizontal so the curve leaves the lane
// flat and lands flat on the main lane.
func connectorPath(c Connector) string {
	midX := (c.X1 + c.X2) / 2
	return fmt.Sprintf("M %.2f %.2f C %.2f %.2f, %.2f %.2f, %.2f %.2f",
		c.X1, c.Y1, midX, c.Y1, midX, c.Y2, c.X2, c.Y2)
}

// Ensure both styles implement Style.
var (
	_ Style = Simple{}
	_ Style = Dark{}
)
