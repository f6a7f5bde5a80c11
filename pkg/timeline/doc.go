// Package timeline builds a positioned commit-graph model from a
// chronological list of posts.
//
// The model uses a version-control metaphor: a fixed "main" lane plus one
// lane per distinct primary tag. Every published post becomes a commit node
// on its lane; tagged commits are additionally paired with a synthetic merge
// node on the main lane, connected by a merge-connector edge. Year and month
// boundaries between adjacent posts become full-width separator nodes, and a
// single today node marks the current date's position in the timeline.
//
// # Construction
//
// [Build] is the sole entry point:
//
//	g, err := timeline.Build(records, time.Now(), timeline.DefaultConfig())
//
// It is a pure function: given the same records, the same "today" value and
// the same [Config], it produces an identical [Graph] (same IDs, same
// coordinates, same ordering). There is no hidden clock read; callers inject
// "today" explicitly. The function is safe to call concurrently for
// different inputs.
//
// # Preconditions
//
// Records must be ordered newest-first. Build does not re-sort; separator
// and today placement are only correct under that ordering. Draft records
// are excluded from the model entirely. Unparseable dates, duplicate slugs,
// and tags whose slug collides with the reserved "main" lane are rejected
// with structured errors; no partial model is returned.
//
// # Coordinates
//
// All coordinates are device-independent units ready for rendering. The
// vertical axis is a fixed row pitch: the i-th surviving record sits at
// y = PaddingTop + i*RowHeight. Separators sit halfway between the two rows
// they divide. Lanes fan out to the left of main, the alphabetically last
// tag closest to it. [Config] only moves coordinates; it never changes which
// nodes or edges exist.
package timeline
