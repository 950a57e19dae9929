package search

import (
	"github.com/maktaba-cloud/matndex/internal/domain/search/criteria"
)

// ResolveEligible computes the text IDs surviving the filter criteria by
// intersecting predicates over the catalog snapshot. An empty slice is a
// real answer (nothing matches); callers must not confuse it with "no
// filtering requested".
func ResolveEligible(c criteria.Criteria, meta MetadataReader) []int {
	ids := meta.TextIDs()
	if c.IsZero() {
		return ids
	}

	if c.GenreCount() > 0 {
		ids = filterIDs(ids, func(id int) bool {
			t, ok := meta.Text(id)
			if !ok {
				return false
			}
			for _, tag := range t.Tags {
				if c.HasGenre(tag) {
					return true
				}
			}
			return false
		})
	}

	if c.AuthorCount() > 0 {
		ids = filterIDs(ids, func(id int) bool {
			t, ok := meta.Text(id)
			return ok && c.HasAuthor(t.AuthorID)
		})
	}

	if dr := c.DeathRange(); dr != nil && !coversObserved(*dr, meta) {
		// Authors with no recorded death date fail any active range.
		eligible := make(map[int]struct{})
		for _, aid := range meta.AuthorIDs() {
			a, ok := meta.Author(aid)
			if !ok || a.DeathDateAH == nil {
				continue
			}
			if *a.DeathDateAH >= dr.Min && *a.DeathDateAH <= dr.Max {
				eligible[aid] = struct{}{}
			}
		}
		ids = filterIDs(ids, func(id int) bool {
			t, ok := meta.Text(id)
			if !ok {
				return false
			}
			_, in := eligible[t.AuthorID]
			return in
		})
	}

	return ids
}

// coversObserved reports whether the range spans every recorded death date,
// which makes the predicate a no-op. UI sliders submit the full span when the
// user never touched them.
func coversObserved(dr criteria.DeathRange, meta MetadataReader) bool {
	min, max := meta.ObservedDeathRange()
	return dr.Min <= min && dr.Max >= max
}

func filterIDs(ids []int, keep func(int) bool) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if keep(id) {
			out = append(out, id)
		}
	}
	return out
}
