package timeline

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mwielgus/postgraph/pkg/errors"
)

// Branch is one vertical lane of the graph: either the main timeline or a
// single primary tag's lane. The branch set is derived during [Build] and
// never mutated afterwards.
type Branch struct {
	// ID is the URL-safe slug of the tag, or "main" for the main lane.
	ID string
	// Name is the original tag text with casing preserved, or "main".
	Name string
	// Color is the lane's display color.
	Color string
	// X is the lane's horizontal coordinate.
	X float64
}

// IsMain reports whether this is the reserved main lane.
func (b Branch) IsMain() bool { return b.ID == MainBranchID }

// buildBranches derives the ordered branch list from the surviving records:
// main first, then one branch per distinct primary tag, sorted
// case-insensitively ascending. Lanes fan out to the left of main with the
// alphabetically last tag adjacent to it.
//
// A tag whose slug collides with the reserved "main" ID is rejected: it
// would silently fold a tag lane into the main timeline. Two tags that
// slugify to the same ID share a branch; the name of the sort-first tag
// wins.
func buildBranches(records []Record, cfg Config) ([]Branch, map[string]Branch, error) {
	seen := make(map[string]bool)
	var tags []string
	for _, r := range records {
		if t := r.PrimaryTag(); t != "" && !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}

	slices.SortFunc(tags, func(a, b string) int {
		if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	// Collapse slug duplicates before assigning ranks so coordinates and
	// colors depend only on the final branch list.
	slugs := make([]string, 0, len(tags))
	names := make([]string, 0, len(tags))
	haveSlug := make(map[string]bool, len(tags))
	for _, tag := range tags {
		id := Slugify(tag)
		if id == MainBranchID {
			return nil, nil, errors.New(errors.ErrCodeReservedTag,
				"tag %q collides with the reserved main lane", tag)
		}
		if haveSlug[id] {
			continue
		}
		haveSlug[id] = true
		slugs = append(slugs, id)
		names = append(names, tag)
	}

	branches := make([]Branch, 0, len(slugs)+1)
	branches = append(branches, Branch{
		ID:    MainBranchID,
		Name:  MainBranchID,
		Color: mainColor,
		X:     cfg.MainX,
	})

	byID := make(map[string]Branch, len(slugs)+1)
	byID[MainBranchID] = branches[0]

	n := len(slugs)
	for i, id := range slugs {
		b := Branch{
			ID:    id,
			Name:  names[i],
			Color: palette[i%len(palette)],
			X:     cfg.MainX - float64(n-i)*cfg.BranchSpacing,
		}
		branches = append(branches, b)
		byID[id] = b
	}

	return branches, byID, nil
}
