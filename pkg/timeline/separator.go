package timeline

import (
	"strconv"
	"time"
)

// separators scans the surviving records' dates, newest-first, and emits a
// marker between every adjacent pair that crosses a calendar boundary. A
// year change yields a year separator; a month change within the same year
// yields a month separator. At most one separator per pair: a year change
// suppresses the month check entirely.
//
// The marker sits halfway between the two rows it divides. With a
// newest-first input, each year or month appears as one contiguous run, so
// boundary labels (and therefore separator IDs) are unique.
func separators(dates []time.Time, cfg Config) []Node {
	var out []Node
	for i := 1; i < len(dates); i++ {
		prev, cur := dates[i-1], dates[i]
		y := cfg.rowY(i) - cfg.RowHeight/2

		switch {
		case cur.Year() != prev.Year():
			label := strconv.Itoa(cur.Year())
			out = append(out, Separator{
				ID:       "sep-year-" + label,
				Label:    label,
				Boundary: BoundaryYear,
				X:        0,
				Y:        y,
			})
		case cur.Month() != prev.Month():
			label := cur.Format("Jan 2006")
			out = append(out, Separator{
				ID:       "sep-month-" + Slugify(label),
				Label:    label,
				Boundary: BoundaryMonth,
				X:        0,
				Y:        y,
			})
		}
	}
	return out
}
