// Package criteria holds the filter criteria narrowing a search to a subset
// of the corpus.
package criteria

import "fmt"

// DeathRange is an inclusive hijri death-date range.
type DeathRange struct {
	Min int
	Max int
}

// Criteria narrows a search by genre tags, author IDs, and author death-date
// range. The zero value applies no filtering.
type Criteria struct {
	genres     map[string]struct{}
	authorIDs  map[int]struct{}
	deathRange *DeathRange
}

// New validates and creates filter criteria. A nil deathRange means the
// death-date predicate is unset.
func New(genres []string, authorIDs []int, deathRange *DeathRange) (Criteria, error) {
	if deathRange != nil && deathRange.Min > deathRange.Max {
		return Criteria{}, fmt.Errorf("death date range: min %d greater than max %d", deathRange.Min, deathRange.Max)
	}

	c := Criteria{}
	for _, g := range genres {
		if g == "" {
			continue
		}
		if c.genres == nil {
			c.genres = make(map[string]struct{})
		}
		c.genres[g] = struct{}{}
	}
	for _, id := range authorIDs {
		if c.authorIDs == nil {
			c.authorIDs = make(map[int]struct{})
		}
		c.authorIDs[id] = struct{}{}
	}
	if deathRange != nil {
		r := *deathRange
		c.deathRange = &r
	}
	return c, nil
}

// HasGenre reports whether the genre predicate includes tag.
func (c Criteria) HasGenre(tag string) bool {
	_, ok := c.genres[tag]
	return ok
}

// HasAuthor reports whether the author predicate includes id.
func (c Criteria) HasAuthor(id int) bool {
	_, ok := c.authorIDs[id]
	return ok
}

// GenreCount returns the number of genre tags in the predicate.
func (c Criteria) GenreCount() int { return len(c.genres) }

// AuthorCount returns the number of author IDs in the predicate.
func (c Criteria) AuthorCount() int { return len(c.authorIDs) }

// DeathRange returns the requested death-date range, or nil when unset.
func (c Criteria) DeathRange() *DeathRange {
	if c.deathRange == nil {
		return nil
	}
	r := *c.deathRange
	return &r
}

// IsZero reports whether no predicate is set at all.
func (c Criteria) IsZero() bool {
	return len(c.genres) == 0 && len(c.authorIDs) == 0 && c.deathRange == nil
}
