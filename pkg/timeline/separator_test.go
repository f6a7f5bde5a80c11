package timeline

import "testing"

func TestSeparatorScenario(t *testing.T) {
	// Month boundary between rows 0 and 1, year boundary between rows 1
	// and 2. The year boundary must not also produce a month separator.
	records := []Record{
		{Slug: "a", Date: "2024-12-20"},
		{Slug: "b", Date: "2024-11-15"},
		{Slug: "c", Date: "2023-11-01"},
	}
	g := mustBuild(t, records)
	cfg := DefaultConfig()

	var seps []Separator
	for _, n := range g.Nodes {
		if s, ok := n.(Separator); ok {
			seps = append(seps, s)
		}
	}
	if len(seps) != 2 {
		t.Fatalf("separator count = %d, want 2", len(seps))
	}

	month := seps[0]
	if month.Boundary != BoundaryMonth || month.Label != "Nov 2024" {
		t.Errorf("first separator = %q (%s), want %q (month)", month.Label, month.Boundary, "Nov 2024")
	}
	if want := cfg.rowY(1) - cfg.RowHeight/2; month.Y != want {
		t.Errorf("month separator y = %v, want %v", month.Y, want)
	}

	year := seps[1]
	if year.Boundary != BoundaryYear || year.Label != "2023" {
		t.Errorf("second separator = %q (%s), want %q (year)", year.Label, year.Boundary, "2023")
	}
	if want := cfg.rowY(2) - cfg.RowHeight/2; year.Y != want {
		t.Errorf("year separator y = %v, want %v", year.Y, want)
	}
}

func TestSeparatorCounts(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    int
	}{
		{name: "empty", records: nil, want: 0},
		{name: "single record", records: []Record{
			{Slug: "a", Date: "2024-12-20"},
		}, want: 0},
		{name: "same month", records: []Record{
			{Slug: "a", Date: "2024-12-20"},
			{Slug: "b", Date: "2024-12-01"},
		}, want: 0},
		{name: "every pair a boundary", records: []Record{
			{Slug: "a", Date: "2024-03-10"},
			{Slug: "b", Date: "2024-02-10"},
			{Slug: "c", Date: "2023-12-31"},
		}, want: 2},
		{name: "same month different year", records: []Record{
			{Slug: "a", Date: "2024-06-10"},
			{Slug: "b", Date: "2023-06-10"},
		}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustBuild(t, tt.records)
			got := 0
			for _, n := range g.Nodes {
				if n.Kind() == NodeSeparator {
					got++
				}
			}
			if got != tt.want {
				t.Errorf("separator count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSeparatorYearSuppressesMonth(t *testing.T) {
	// Dec 2024 → Nov 2023 changes both year and month; only the year
	// separator may appear.
	records := []Record{
		{Slug: "a", Date: "2024-12-20"},
		{Slug: "b", Date: "2023-11-15"},
	}
	g := mustBuild(t, records)

	for _, n := range g.Nodes {
		if s, ok := n.(Separator); ok {
			if s.Boundary != BoundaryYear {
				t.Errorf("got %s separator %q, want only a year separator", s.Boundary, s.Label)
			}
		}
	}
}
