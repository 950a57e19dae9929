package search

import (
	"context"

	"github.com/maktaba-cloud/matndex/internal/domain"
	"github.com/maktaba-cloud/matndex/internal/domain/search/request"
	"github.com/maktaba-cloud/matndex/internal/domain/search/result"
)

// Repository defines the engine contract for search operations.
type Repository interface {
	Search(ctx context.Context, req request.Request) ([]result.RawHit, int64, error)
}

// MetadataReader reads the loaded catalog snapshot.
type MetadataReader interface {
	Text(id int) (domain.Text, bool)
	Author(id int) (domain.Author, bool)
	TextIDs() []int
	AuthorIDs() []int
	ObservedDeathRange() (min, max int)
}

// Highlighter turns tagged fragments into structured snippets.
type Highlighter interface {
	ProcessAll(fragments []string) []result.Snippet
}
