package timeline

import "time"

// todayMarker computes the position of the current-date marker against the
// surviving records' dates. "today" is compared at day granularity.
//
// With no records the marker sits at the top padding. When today falls
// after the newest record, the marker lands on the row of the first
// (newest) record dated on or before today. Otherwise it lands on the
// newest record's row.
//
// The zero y value doubles as the "no position" sentinel: a marker whose
// computed position is not strictly positive is suppressed. A PaddingTop of
// zero therefore suppresses a marker that would sit exactly at the top
// boundary.
func todayMarker(dates []time.Time, today time.Time, cfg Config) (Today, bool) {
	day := dayOf(today)

	var y float64
	switch {
	case len(dates) == 0:
		y = cfg.PaddingTop
	case day.After(dayOf(dates[0])):
		for i, d := range dates {
			if !dayOf(d).After(day) {
				y = cfg.rowY(i)
				break
			}
		}
	default:
		y = cfg.PaddingTop
	}

	if y <= 0 {
		return Today{}, false
	}
	return Today{ID: "today", Date: day, X: 0, Y: y}, true
}
