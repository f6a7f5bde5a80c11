package timeline

import (
	"testing"
	"time"
)

func todayNode(t *testing.T, g Graph) (Today, bool) {
	t.Helper()
	var found []Today
	for _, n := range g.Nodes {
		if today, ok := n.(Today); ok {
			found = append(found, today)
		}
	}
	if len(found) > 1 {
		t.Fatalf("today marker count = %d, want at most 1", len(found))
	}
	if len(found) == 0 {
		return Today{}, false
	}
	return found[0], true
}

func TestTodayAfterAllRecords(t *testing.T) {
	records := []Record{
		{Slug: "a", Date: "2024-12-20"},
		{Slug: "b", Date: "2024-11-15"},
	}
	today := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	g, err := Build(records, today, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	marker, ok := todayNode(t, g)
	if !ok {
		t.Fatal("expected a today marker")
	}
	// Newest record dated on-or-before today is row 0.
	if marker.Y != DefaultConfig().PaddingTop {
		t.Errorf("today y = %v, want %v", marker.Y, DefaultConfig().PaddingTop)
	}
	// Time of day is discarded.
	if want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC); !marker.Date.Equal(want) {
		t.Errorf("today date = %v, want day-normalized %v", marker.Date, want)
	}
}

func TestTodayOnNewestRecord(t *testing.T) {
	records := []Record{
		{Slug: "a", Date: "2024-12-20"},
		{Slug: "b", Date: "2024-11-15"},
	}
	today := time.Date(2024, 12, 20, 23, 59, 0, 0, time.UTC)

	g, err := Build(records, today, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	marker, ok := todayNode(t, g)
	if !ok {
		t.Fatal("expected a today marker")
	}
	if marker.Y != DefaultConfig().PaddingTop {
		t.Errorf("today y = %v, want newest row %v", marker.Y, DefaultConfig().PaddingTop)
	}
}

func TestTodayBeforeAllRecords(t *testing.T) {
	records := []Record{
		{Slug: "a", Date: "2024-12-20"},
	}
	today := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	g, err := Build(records, today, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	// With a positive top padding the marker sits at the top row; it must
	// never land at or below zero.
	if marker, ok := todayNode(t, g); ok && marker.Y <= 0 {
		t.Errorf("today marker placed at y = %v", marker.Y)
	}
}

func TestTodaySuppressedAtZeroPadding(t *testing.T) {
	// PaddingTop of zero makes the top-row position indistinguishable from
	// the "no position" sentinel; the marker is suppressed.
	cfg := DefaultConfig()
	cfg.PaddingTop = 0

	g, err := Build(nil, testToday, cfg)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if _, ok := todayNode(t, g); ok {
		t.Error("today marker should be suppressed when its position is not strictly positive")
	}
}

func TestTodayMidTimeline(t *testing.T) {
	records := []Record{
		{Slug: "future", Date: "2025-06-01"},
		{Slug: "past", Date: "2024-01-15"},
		{Slug: "older", Date: "2023-01-15"},
	}
	today := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

	g, err := Build(records, today, DefaultConfig())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	marker, ok := todayNode(t, g)
	if !ok {
		t.Fatal("expected a today marker")
	}
	// Newest record is in the future, so today is on-or-before it: the
	// marker sits at the newest record's row.
	if marker.Y != DefaultConfig().PaddingTop {
		t.Errorf("today y = %v, want %v", marker.Y, DefaultConfig().PaddingTop)
	}
}
