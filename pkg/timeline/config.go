package timeline

// =============================================================================
// Layout Configuration
// =============================================================================

// Config holds the layout constants for graph construction.
// All values affect only absolute coordinates; the set of branches, nodes,
// and edges produced for a given input is independent of the configuration.
type Config struct {
	// RowHeight is the vertical pitch between adjacent commit rows.
	RowHeight float64
	// PaddingTop is the y coordinate of the first commit row.
	PaddingTop float64
	// PaddingBottom is the empty space kept below the last row.
	PaddingBottom float64
	// MainX is the x coordinate of the main lane.
	MainX float64
	// BranchSpacing is the horizontal distance between adjacent tag lanes.
	BranchSpacing float64
	// LabelWidth is the horizontal space reserved for lane labels.
	LabelWidth float64
}

// DefaultConfig returns the standard layout configuration.
func DefaultConfig() Config {
	return Config{
		RowHeight:     64,
		PaddingTop:    48,
		PaddingBottom: 48,
		MainX:         620,
		BranchSpacing: 56,
		LabelWidth:    200,
	}
}

// Height returns the total frame height needed for the given number of
// commit rows.
func (c Config) Height(rows int) float64 {
	if rows == 0 {
		return c.PaddingTop + c.PaddingBottom
	}
	return c.PaddingTop + float64(rows-1)*c.RowHeight + c.PaddingBottom
}

// rowY returns the y coordinate of the i-th surviving record.
// This is the single vertical placement rule; every other component
// positions itself relative to these values.
func (c Config) rowY(i int) float64 {
	return c.PaddingTop + float64(i)*c.RowHeight
}

// =============================================================================
// Colors
// =============================================================================

// MainBranchID is the reserved identifier of the main lane.
const MainBranchID = "main"

// mainColor is the neutral color of the main lane.
const mainColor = "#6e7781"

// palette holds the tag lane colors, indexed by sort rank modulo its size.
// Rank-based assignment keeps a tag's color stable across rebuilds for the
// same tag ordering.
var palette = [8]string{
	"#d73a49", // red
	"#f66a0a", // orange
	"#dbab09", // yellow
	"#28a745", // green
	"#0366d6", // blue
	"#6f42c1", // purple
	"#ea4aaa", // pink
	"#1b7c83", // teal
}
