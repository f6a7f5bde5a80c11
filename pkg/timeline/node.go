package timeline

import "time"

// =============================================================================
// Node Variants
// =============================================================================

// NodeKind discriminates the node variants of the graph model.
type NodeKind string

// Node kinds.
const (
	NodeCommit    NodeKind = "commit"
	NodeMerge     NodeKind = "merge"
	NodeSeparator NodeKind = "separator"
	NodeToday     NodeKind = "today"
)

// Boundary identifies the calendar boundary a separator marks.
type Boundary string

// Separator boundaries.
const (
	BoundaryYear  Boundary = "year"
	BoundaryMonth Boundary = "month"
)

// Node is the sum type over the four graph node variants: [Commit],
// [Merge], [Separator], and [Today]. Renderers switch on the concrete type
// (or on Kind) and can rely on the set of variants being closed.
type Node interface {
	// NodeID returns the node's identifier, unique within a graph.
	NodeID() string
	// Kind returns the variant discriminant.
	Kind() NodeKind
	// At returns the node's layout coordinates.
	At() (x, y float64)
}

// Commit is one published record placed on its lane. Untagged records sit
// on the main lane; tagged records sit on their primary tag's lane.
type Commit struct {
	ID      string
	Branch  string // owning branch ID
	Slug    string // record slug, for external correlation (hit-testing)
	Title   string
	Summary string
	Date    time.Time
	X, Y    float64
}

func (n Commit) NodeID() string        { return n.ID }
func (n Commit) Kind() NodeKind        { return NodeCommit }
func (n Commit) At() (float64, float64) { return n.X, n.Y }

// Merge is the synthetic main-lane counterpart of a tagged commit. It
// exists if and only if its paired commit's branch is not main, and it
// shares that commit's vertical position.
type Merge struct {
	ID     string
	Branch string // always MainBranchID
	Slug   string // paired record slug
	Date   time.Time
	X, Y   float64
}

func (n Merge) NodeID() string        { return n.ID }
func (n Merge) Kind() NodeKind        { return NodeMerge }
func (n Merge) At() (float64, float64) { return n.X, n.Y }

// Separator is a full-width structural marker at a year or month boundary
// between two adjacent records. It carries no lane association.
type Separator struct {
	ID       string
	Label    string
	Boundary Boundary
	X, Y     float64
}

func (n Separator) NodeID() string        { return n.ID }
func (n Separator) Kind() NodeKind        { return NodeSeparator }
func (n Separator) At() (float64, float64) { return n.X, n.Y }

// Today marks the current date's position in the timeline. A graph holds
// at most one.
type Today struct {
	ID   string
	Date time.Time
	X, Y float64
}

func (n Today) NodeID() string        { return n.ID }
func (n Today) Kind() NodeKind        { return NodeToday }
func (n Today) At() (float64, float64) { return n.X, n.Y }

// =============================================================================
// Edges
// =============================================================================

// EdgeKind discriminates edge variants. Merge connectors are currently the
// only kind.
type EdgeKind string

// EdgeMergeConnector connects a tagged commit to its merge node.
const EdgeMergeConnector EdgeKind = "merge-connector"

// Edge is a directed connector between two nodes.
type Edge struct {
	ID   string
	From string // source node ID
	To   string // target node ID
	Kind EdgeKind
}

// =============================================================================
// Graph
// =============================================================================

// Graph is the complete output of one [Build] pass. It is constructed once
// per input list and never mutated; recomputation means a full rebuild.
type Graph struct {
	Branches []Branch
	Nodes    []Node
	Edges    []Edge
}

// Branch returns the branch with the given ID.
func (g Graph) Branch(id string) (Branch, bool) {
	for _, b := range g.Branches {
		if b.ID == id {
			return b, true
		}
	}
	return Branch{}, false
}

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.NodeID() == id {
			return n, true
		}
	}
	return nil, false
}

// Commits returns the commit nodes in row order.
func (g Graph) Commits() []Commit {
	var out []Commit
	for _, n := range g.Nodes {
		if c, ok := n.(Commit); ok {
			out = append(out, c)
		}
	}
	return out
}

// Rows returns the number of commit rows in the graph.
func (g Graph) Rows() int {
	rows := 0
	for _, n := range g.Nodes {
		if n.Kind() == NodeCommit {
			rows++
		}
	}
	return rows
}
