package timeline

import (
	"time"

	"github.com/mwielgus/postgraph/pkg/errors"
)

// Build constructs the complete graph model for a newest-first record list.
//
// The transformation runs as a fixed sequence of sweeps over the surviving
// (non-draft) records: branch derivation, commit and merge placement,
// separator insertion, and today-marker placement. Each sweep appends to
// the model; none reads a later sweep's output. The result is deterministic
// for a fixed (records, today, cfg) triple.
//
// Build rejects unparseable dates, duplicate slugs, and tags whose slug
// collides with the reserved main lane. On error no partial model is
// returned.
func Build(records []Record, today time.Time, cfg Config) (Graph, error) {
	survivors := make([]Record, 0, len(records))
	for _, r := range records {
		if !r.Draft {
			survivors = append(survivors, r)
		}
	}

	dates := make([]time.Time, len(survivors))
	slugs := make(map[string]bool, len(survivors))
	for i, r := range survivors {
		d, err := ParseDate(r.Date)
		if err != nil {
			return Graph{}, errors.Wrap(errors.GetCode(err), err, "record %q", r.Slug)
		}
		dates[i] = d
		if slugs[r.Slug] {
			return Graph{}, errors.New(errors.ErrCodeDuplicateSlug, "duplicate slug: %q", r.Slug)
		}
		slugs[r.Slug] = true
	}

	branches, byID, err := buildBranches(survivors, cfg)
	if err != nil {
		return Graph{}, err
	}

	nodes, edges := buildCommits(survivors, dates, byID, cfg)
	nodes = append(nodes, separators(dates, cfg)...)
	if marker, ok := todayMarker(dates, today, cfg); ok {
		nodes = append(nodes, marker)
	}

	return Graph{Branches: branches, Nodes: nodes, Edges: edges}, nil
}

// buildCommits emits exactly one commit node per surviving record, in input
// order, at the record's fixed row. A commit placed on a tag lane is
// immediately paired with a merge node on the main lane at the same row,
// plus the connector edge between them. Main-lane commits get no pairing.
func buildCommits(records []Record, dates []time.Time, byID map[string]Branch, cfg Config) ([]Node, []Edge) {
	nodes := make([]Node, 0, len(records)*2)
	var edges []Edge

	for i, r := range records {
		y := cfg.rowY(i)

		branch := byID[MainBranchID]
		if tag := r.PrimaryTag(); tag != "" {
			if b, ok := byID[Slugify(tag)]; ok {
				branch = b
			}
		}

		commit := Commit{
			ID:      "commit-" + r.Slug,
			Branch:  branch.ID,
			Slug:    r.Slug,
			Title:   r.Title,
			Summary: r.Summary,
			Date:    dates[i],
			X:       branch.X,
			Y:       y,
		}
		nodes = append(nodes, commit)

		if branch.IsMain() {
			continue
		}

		merge := Merge{
			ID:     "merge-" + r.Slug,
			Branch: MainBranchID,
			Slug:   r.Slug,
			Date:   dates[i],
			X:      cfg.MainX,
			Y:      y,
		}
		nodes = append(nodes, merge)
		edges = append(edges, Edge{
			ID:   "connector-" + r.Slug,
			From: commit.ID,
			To:   merge.ID,
			Kind: EdgeMergeConnector,
		})
	}

	return nodes, edges
}
