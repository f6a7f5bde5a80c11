// Package graph is the canonical serialization format for timeline graph
// models. It is used for API responses, caching, and the `postgraph graph`
// command output.
//
// The format flattens the node sum type into a single struct with a kind
// discriminant, so downstream consumers (renderers, the web frontend) can
// index nodes and edges by ID and switch on kind. Import → export →
// re-import produces an identical model.
package graph

import (
	"encoding/json"
	"time"

	"github.com/mwielgus/postgraph/pkg/errors"
	"github.com/mwielgus/postgraph/pkg/timeline"
)

// Graph is the serialized form of a [timeline.Graph].
type Graph struct {
	Branches []Branch `json:"branches" bson:"branches"`
	Nodes    []Node   `json:"nodes" bson:"nodes"`
	Edges    []Edge   `json:"edges" bson:"edges"`
}

// Branch is the serialized form of a lane.
type Branch struct {
	ID    string  `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	Color string  `json:"color" bson:"color"`
	X     float64 `json:"x" bson:"x"`
}

// Node is the unified node type for all serialization contexts.
// Kind discriminates the variant; fields not used by a variant are omitted.
type Node struct {
	ID   string  `json:"id" bson:"id"`
	Kind string  `json:"kind" bson:"kind"`
	X    float64 `json:"x" bson:"x"`
	Y    float64 `json:"y" bson:"y"`

	// Commit and merge fields
	Branch  string `json:"branch,omitempty" bson:"branch,omitempty"`
	Slug    string `json:"slug,omitempty" bson:"slug,omitempty"`
	Title   string `json:"title,omitempty" bson:"title,omitempty"`
	Summary string `json:"summary,omitempty" bson:"summary,omitempty"`
	Date    string `json:"date,omitempty" bson:"date,omitempty"` // RFC 3339

	// Separator fields
	Label    string `json:"label,omitempty" bson:"label,omitempty"`
	Boundary string `json:"boundary,omitempty" bson:"boundary,omitempty"`
}

// Edge is the serialized form of a connector.
type Edge struct {
	ID   string `json:"id" bson:"id"`
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Kind string `json:"kind" bson:"kind"`
}

// FromModel converts a timeline graph to its serialization format.
// Node and edge order is preserved, so output for a fixed model is
// byte-for-byte reproducible.
func FromModel(m timeline.Graph) Graph {
	out := Graph{
		Branches: make([]Branch, len(m.Branches)),
		Nodes:    make([]Node, len(m.Nodes)),
		Edges:    make([]Edge, len(m.Edges)),
	}

	for i, b := range m.Branches {
		out.Branches[i] = Branch{ID: b.ID, Name: b.Name, Color: b.Color, X: b.X}
	}
	for i, n := range m.Nodes {
		out.Nodes[i] = nodeFromModel(n)
	}
	for i, e := range m.Edges {
		out.Edges[i] = Edge{ID: e.ID, From: e.From, To: e.To, Kind: string(e.Kind)}
	}

	return out
}

// ToModel converts a serialized graph back into a timeline graph.
// Returns an error for unknown node kinds or malformed dates.
func ToModel(g Graph) (timeline.Graph, error) {
	m := timeline.Graph{
		Branches: make([]timeline.Branch, len(g.Branches)),
		Nodes:    make([]timeline.Node, len(g.Nodes)),
		Edges:    make([]timeline.Edge, len(g.Edges)),
	}

	for i, b := range g.Branches {
		m.Branches[i] = timeline.Branch{ID: b.ID, Name: b.Name, Color: b.Color, X: b.X}
	}
	for i, n := range g.Nodes {
		node, err := nodeToModel(n)
		if err != nil {
			return timeline.Graph{}, err
		}
		m.Nodes[i] = node
	}
	for i, e := range g.Edges {
		m.Edges[i] = timeline.Edge{ID: e.ID, From: e.From, To: e.To, Kind: timeline.EdgeKind(e.Kind)}
	}

	return m, nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// =============================================================================
// Internal Helpers
// =============================================================================

func nodeFromModel(n timeline.Node) Node {
	x, y := n.At()
	out := Node{ID: n.NodeID(), Kind: string(n.Kind()), X: x, Y: y}

	switch v := n.(type) {
	case timeline.Commit:
		out.Branch = v.Branch
		out.Slug = v.Slug
		out.Title = v.Title
		out.Summary = v.Summary
		out.Date = v.Date.Format(time.RFC3339)
	case timeline.Merge:
		out.Branch = v.Branch
		out.Slug = v.Slug
		out.Date = v.Date.Format(time.RFC3339)
	case timeline.Separator:
		out.Label = v.Label
		out.Boundary = string(v.Boundary)
	case timeline.Today:
		out.Date = v.Date.Format(time.RFC3339)
	}

	return out
}

func nodeToModel(n Node) (timeline.Node, error) {
	parse := func(raw string) (time.Time, error) {
		if raw == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, errors.Wrap(errors.ErrCodeInvalidDate, err, "node %s", n.ID)
		}
		return t, nil
	}

	switch timeline.NodeKind(n.Kind) {
	case timeline.NodeCommit:
		d, err := parse(n.Date)
		if err != nil {
			return nil, err
		}
		return timeline.Commit{
			ID: n.ID, Branch: n.Branch, Slug: n.Slug,
			Title: n.Title, Summary: n.Summary, Date: d,
			X: n.X, Y: n.Y,
		}, nil
	case timeline.NodeMerge:
		d, err := parse(n.Date)
		if err != nil {
			return nil, err
		}
		return timeline.Merge{
			ID: n.ID, Branch: n.Branch, Slug: n.Slug, Date: d,
			X: n.X, Y: n.Y,
		}, nil
	case timeline.NodeSeparator:
		return timeline.Separator{
			ID: n.ID, Label: n.Label, Boundary: timeline.Boundary(n.Boundary),
			X: n.X, Y: n.Y,
		}, nil
	case timeline.NodeToday:
		d, err := parse(n.Date)
		if err != nil {
			return nil, err
		}
		return timeline.Today{ID: n.ID, Date: d, X: n.X, Y: n.Y}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown node kind %q", n.Kind)
	}
}
