// Package metadata loads the text/author catalog into an immutable
// in-memory snapshot with O(1) keyed lookup.
package metadata

import (
	"context"
	"fmt"
	"sort"

	"github.com/maktaba-cloud/matndex/internal/domain"
)

// Source supplies the raw catalog once per session.
type Source interface {
	Load(ctx context.Context) ([]domain.Text, []domain.Author, error)
}

// Snapshot is the read-only catalog for a session. Safe for concurrent
// reads; never mutated after construction.
type Snapshot struct {
	texts    map[int]domain.Text
	authors  map[int]domain.Author
	textIDs  []int
	authIDs  []int
	minDeath int
	maxDeath int
}

// Load reads the catalog from src and builds a snapshot.
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	texts, authors, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMetadataUnavailable, err)
	}
	return NewSnapshot(texts, authors)
}

// NewSnapshot validates and indexes the catalog. Non-positive and duplicate
// IDs are rejected outright: a silent overwrite would make one record
// shadow another.
func NewSnapshot(texts []domain.Text, authors []domain.Author) (*Snapshot, error) {
	s := &Snapshot{
		texts:   make(map[int]domain.Text, len(texts)),
		authors: make(map[int]domain.Author, len(authors)),
	}

	for _, t := range texts {
		if t.ID <= 0 {
			return nil, fmt.Errorf("text %q: id must be positive, got %d", t.Title, t.ID)
		}
		if _, dup := s.texts[t.ID]; dup {
			return nil, fmt.Errorf("duplicate text id %d", t.ID)
		}
		s.texts[t.ID] = t
		s.textIDs = append(s.textIDs, t.ID)
	}

	first := true
	for _, a := range authors {
		if _, dup := s.authors[a.ID]; dup {
			return nil, fmt.Errorf("duplicate author id %d", a.ID)
		}
		s.authors[a.ID] = a
		s.authIDs = append(s.authIDs, a.ID)

		if a.DeathDateAH == nil {
			continue
		}
		d := *a.DeathDateAH
		if first {
			s.minDeath, s.maxDeath = d, d
			first = false
			continue
		}
		if d < s.minDeath {
			s.minDeath = d
		}
		if d > s.maxDeath {
			s.maxDeath = d
		}
	}

	sort.Ints(s.textIDs)
	sort.Ints(s.authIDs)
	return s, nil
}

// Text returns the text with the given ID.
func (s *Snapshot) Text(id int) (domain.Text, bool) {
	t, ok := s.texts[id]
	return t, ok
}

// Author returns the author with the given ID.
func (s *Snapshot) Author(id int) (domain.Author, bool) {
	a, ok := s.authors[id]
	return a, ok
}

// TextIDs returns all text IDs in ascending order.
func (s *Snapshot) TextIDs() []int {
	ids := make([]int, len(s.textIDs))
	copy(ids, s.textIDs)
	return ids
}

// AuthorIDs returns all author IDs in ascending order.
func (s *Snapshot) AuthorIDs() []int {
	ids := make([]int, len(s.authIDs))
	copy(ids, s.authIDs)
	return ids
}

// TextCount returns the number of texts in the catalog.
func (s *Snapshot) TextCount() int { return len(s.texts) }

// AuthorCount returns the number of authors in the catalog.
func (s *Snapshot) AuthorCount() int { return len(s.authors) }

// ObservedDeathRange returns the min and max recorded death dates across
// the catalog. Authors without a death date do not contribute.
func (s *Snapshot) ObservedDeathRange() (min, max int) {
	return s.minDeath, s.maxDeath
}
