package matndex

import (
	"context"
	"fmt"

	"github.com/maktaba-cloud/matndex/internal/domain/search/criteria"
	"github.com/maktaba-cloud/matndex/internal/domain/search/result"
	searchuc "github.com/maktaba-cloud/matndex/internal/usecase/search"
)

// Snippet is a cleaned highlight fragment split around the matched span.
type Snippet struct {
	Pre   string
	Match string
	Post  string
}

// Hit is one enriched search result.
type Hit struct {
	TextID      int
	Title       string
	Author      string
	DeathDateAH *int
	VolumeLabel string
	PageID      int
	PageNumber  int
	Score       float64
	SourceURI   string
	Snippets    []Snippet
}

// Page is an ordered result window plus the engine-reported total.
type Page struct {
	Hits     []Hit
	Total    int64
	Page     int
	PageSize int
}

// SearchBuilder is a fluent builder for corpus search queries.
type SearchBuilder struct {
	client *Client

	query string
	exact bool

	genres    []string
	authorIDs []int
	deathMin  *int
	deathMax  *int

	page     int
	pageSize int
}

// Exact disables proclitic expansion: the term matches literally only.
func (b *SearchBuilder) Exact() *SearchBuilder {
	b.exact = true
	return b
}

// Genres restricts results to texts tagged with any of the given genres.
func (b *SearchBuilder) Genres(genres ...string) *SearchBuilder {
	b.genres = append(b.genres, genres...)
	return b
}

// Authors restricts results to texts by the given author IDs.
func (b *SearchBuilder) Authors(ids ...int) *SearchBuilder {
	b.authorIDs = append(b.authorIDs, ids...)
	return b
}

// DiedBetween restricts results to authors whose hijri death date falls in
// [min, max]. Authors without a recorded death date are excluded.
func (b *SearchBuilder) DiedBetween(min, max int) *SearchBuilder {
	b.deathMin = &min
	b.deathMax = &max
	return b
}

// Page sets the result page (1-based).
func (b *SearchBuilder) Page(n int) *SearchBuilder {
	b.page = n
	return b
}

// PageSize sets the page size, clamped to the configured maximum.
func (b *SearchBuilder) PageSize(n int) *SearchBuilder {
	b.pageSize = n
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (Page, error) {
	params, err := b.params()
	if err != nil {
		return Page{}, err
	}

	page, err := b.client.searchSvc.Search(ctx, params)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return toPage(page), nil
}

// Export executes the same pipeline with page pinned to 1 and the export cap.
func (b *SearchBuilder) Export(ctx context.Context) (Page, error) {
	params, err := b.params()
	if err != nil {
		return Page{}, err
	}

	page, err := b.client.searchSvc.Export(ctx, params)
	if err != nil {
		return Page{}, fmt.Errorf("export: %w", err)
	}
	return toPage(page), nil
}

func (b *SearchBuilder) params() (searchuc.Params, error) {
	var dr *criteria.DeathRange
	if b.deathMin != nil && b.deathMax != nil {
		dr = &criteria.DeathRange{Min: *b.deathMin, Max: *b.deathMax}
	}

	crit, err := criteria.New(b.genres, b.authorIDs, dr)
	if err != nil {
		return searchuc.Params{}, fmt.Errorf("build criteria: %w", err)
	}

	return searchuc.Params{
		Query:    b.query,
		Exact:    b.exact,
		Page:     b.page,
		PageSize: b.pageSize,
		Criteria: crit,
	}, nil
}

func toPage(p result.Page) Page {
	hits := make([]Hit, len(p.Hits))
	for i, h := range p.Hits {
		snippets := make([]Snippet, len(h.Snippets))
		for j, s := range h.Snippets {
			snippets[j] = Snippet{Pre: s.Pre, Match: s.Match, Post: s.Post}
		}
		hits[i] = Hit{
			TextID:      h.TextID,
			Title:       h.Title,
			Author:      h.Author,
			DeathDateAH: h.DeathDateAH,
			VolumeLabel: h.VolumeLabel,
			PageID:      h.PageID,
			PageNumber:  h.PageNumber,
			Score:       h.Score,
			SourceURI:   h.SourceURI,
			Snippets:    snippets,
		}
	}
	return Page{
		Hits:     hits,
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
}
