package timeline

import (
	"strings"
	"time"

	"github.com/mwielgus/postgraph/pkg/errors"
)

// Record is one timestamped input entry, typically a published post.
// Records handed to [Build] must already be ordered newest-first.
type Record struct {
	// Slug uniquely identifies the record. It becomes the commit node's
	// identity and must be unique across the input list.
	Slug string
	// Title is the display title of the record.
	Title string
	// Summary is an optional short description.
	Summary string
	// Date is the publication date. It must parse as RFC 3339, as an ISO
	// datetime without offset, or as a plain calendar date.
	Date string
	// Tags is the ordered tag list. Only the first entry (the primary tag)
	// participates in lane assignment; the rest are ignored here.
	Tags []string
	// Draft excludes the record from the graph entirely when true.
	Draft bool
}

// PrimaryTag returns the record's first tag, trimmed, or "" when untagged.
func (r Record) PrimaryTag() string {
	if len(r.Tags) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Tags[0])
}

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a record date string, trying each accepted layout in
// order.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "unparseable date: %q", raw)
}

// dayOf truncates a timestamp to day granularity, discarding time of day
// and offset. Comparisons between "today" and record dates happen at this
// granularity only.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
