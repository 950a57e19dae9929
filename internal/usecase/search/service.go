// Package search orchestrates the corpus search pipeline: filter
// resolution, query normalization and validation, the engine call, and
// metadata enrichment of the returned hits.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/maktaba-cloud/matndex/internal/arabic"
	"github.com/maktaba-cloud/matndex/internal/domain"
	"github.com/maktaba-cloud/matndex/internal/domain/search/criteria"
	"github.com/maktaba-cloud/matndex/internal/domain/search/request"
	"github.com/maktaba-cloud/matndex/internal/domain/search/result"
	"github.com/maktaba-cloud/matndex/internal/metrics"
)

// Limits bounds page sizes for interactive and export searches.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
	// ExportPageSize is the export cap, deliberately larger than
	// MaxPageSize and used with page pinned to 1.
	ExportPageSize int
}

// Params is one search invocation. Criteria's zero value applies no
// filtering.
type Params struct {
	Query    string
	Exact    bool
	Page     int
	PageSize int
	Criteria criteria.Criteria
}

// Service runs searches against the engine and enriches hits from the
// catalog snapshot.
type Service struct {
	repo   Repository
	meta   MetadataReader
	hl     Highlighter
	limits Limits
}

// New creates a search service.
func New(repo Repository, meta MetadataReader, hl Highlighter, limits Limits) *Service {
	return &Service{repo: repo, meta: meta, hl: hl, limits: limits}
}

// Search executes an interactive search. Page size is clamped to the
// configured bounds; the page number is clamped to 1 when below it.
func (s *Service) Search(ctx context.Context, p Params) (result.Page, error) {
	size := p.PageSize
	if size <= 0 {
		size = s.limits.DefaultPageSize
	}
	if size > s.limits.MaxPageSize {
		size = s.limits.MaxPageSize
	}
	return s.run(ctx, p, p.Page, size)
}

// Export executes the same pipeline with page pinned to 1 and the export
// page size, for bulk retrieval of the top results.
func (s *Service) Export(ctx context.Context, p Params) (result.Page, error) {
	return s.run(ctx, p, 1, s.limits.ExportPageSize)
}

func (s *Service) run(ctx context.Context, p Params, page, pageSize int) (result.Page, error) {
	query := strings.TrimSpace(p.Query)
	if query == "" {
		metrics.RejectedQueriesTotal.Inc()
		return result.Page{}, domain.ErrEmptyQuery
	}

	query = arabic.Normalize(query)
	if err := arabic.Validate(query); err != nil {
		// Fail fast: a rejected query never reaches the engine.
		metrics.RejectedQueriesTotal.Inc()
		return result.Page{}, err
	}

	var eligible []int
	if !p.Criteria.IsZero() {
		eligible = ResolveEligible(p.Criteria, s.meta)
		if len(eligible) == 0 {
			// No text survives the filters. An empty ID set means
			// "unrestricted" to the query builder, so stop here instead.
			return result.Page{Hits: []result.Hit{}, Page: clampPage(page), PageSize: pageSize}, nil
		}
	}

	req, err := request.New(query, p.Exact, eligible, page, pageSize)
	if err != nil {
		return result.Page{}, fmt.Errorf("build request: %w", err)
	}

	raw, total, err := s.repo.Search(ctx, req)
	if err != nil {
		return result.Page{}, err
	}

	hits := make([]result.Hit, 0, len(raw))
	for _, h := range raw {
		hits = append(hits, s.enrich(h))
	}

	return result.Page{Hits: hits, Total: total, Page: req.Page(), PageSize: req.PageSize()}, nil
}

// enrich annotates a raw hit with catalog metadata. Lookup misses degrade
// to placeholder strings; a hit is never dropped for missing metadata.
func (s *Service) enrich(h result.RawHit) result.Hit {
	title := domain.PlaceholderTitle
	author := domain.PlaceholderAuthor
	var death *int

	if t, ok := s.meta.Text(h.TextID); ok {
		title = t.Title
		if a, ok := s.meta.Author(t.AuthorID); ok {
			author = a.Name
			death = a.DeathDateAH
		}
	}

	return result.Hit{
		TextID:      h.TextID,
		Title:       title,
		Author:      author,
		DeathDateAH: death,
		VolumeLabel: h.VolumeLabel,
		PageID:      h.PageID,
		PageNumber:  h.PageNumber,
		Score:       h.Score,
		SourceURI:   h.SourceURI,
		Snippets:    s.hl.ProcessAll(h.Fragments),
	}
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
