// Package post loads timestamped markdown posts from disk and prepares
// them as input records for graph construction.
//
// Posts are markdown files with YAML ("---") or TOML ("+++") front matter
// carrying title, date, summary, tags, and draft fields. [LoadDir] walks a
// directory, parses every post, and returns them sorted newest-first, the
// ordering the timeline core requires.
package post

import (
	"cmp"
	"slices"
	"time"

	"github.com/mwielgus/postgraph/pkg/timeline"
)

// Post is one parsed markdown post.
type Post struct {
	// Slug identifies the post, derived from the filename unless the front
	// matter overrides it.
	Slug string
	// Title is the post title; falls back to the filename stem.
	Title string
	// Summary is an optional short description.
	Summary string
	// Date is the parsed publication date.
	Date time.Time
	// Tags is the ordered tag list from the front matter.
	Tags []string
	// Draft marks unpublished posts.
	Draft bool
	// Path is the file the post was loaded from.
	Path string
}

// SortNewestFirst orders posts by date descending, breaking ties by slug
// ascending for determinism.
func SortNewestFirst(posts []Post) {
	slices.SortFunc(posts, func(a, b Post) int {
		if a.Date.After(b.Date) {
			return -1
		}
		if b.Date.After(a.Date) {
			return 1
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
}

// Records converts posts to timeline input records, preserving order.
// Dates are rendered as RFC 3339 so the core re-parses them losslessly.
func Records(posts []Post) []timeline.Record {
	records := make([]timeline.Record, len(posts))
	for i, p := range posts {
		records[i] = timeline.Record{
			Slug:    p.Slug,
			Title:   p.Title,
			Summary: p.Summary,
			Date:    p.Date.Format(time.RFC3339),
			Tags:    p.Tags,
			Draft:   p.Draft,
		}
	}
	return records
}
