// Package search builds engine queries from validated requests and parses
// the raw hits coming back.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maktaba-cloud/matndex/internal/arabic"
	"github.com/maktaba-cloud/matndex/internal/domain"
	"github.com/maktaba-cloud/matndex/internal/domain/search/request"
	"github.com/maktaba-cloud/matndex/internal/domain/search/result"
	"github.com/maktaba-cloud/matndex/internal/engine"
	"github.com/maktaba-cloud/matndex/internal/metrics"
)

// store is the consumer interface for engine search (ISP).
type store interface {
	Search(ctx context.Context, index string, q *engine.Query) (*engine.Response, error)
}

// Config holds the query-construction constants.
type Config struct {
	// Index is the corpus page index name.
	Index string
	// ExactField is the field without clitic expansion.
	ExactField string
	// CliticField is the clitic-expanded field (usually a subfield of
	// ExactField).
	CliticField string
	// MaxResultWindow is the deepest from+size the engine may be asked for.
	MaxResultWindow int
	// FragmentCount and FragmentSize configure highlighting.
	FragmentCount int
	FragmentSize  int
	// PreTag and PostTag delimit highlighted spans in fragments.
	PreTag  string
	PostTag string
}

// Repo implements the search repository over an engine store.
type Repo struct {
	store store
	cfg   Config
}

// New creates a search repository.
func New(s store, cfg Config) *Repo {
	return &Repo{store: s, cfg: cfg}
}

// Search executes the request and returns raw hits in engine order plus the
// engine-reported total.
func (r *Repo) Search(ctx context.Context, req request.Request) ([]result.RawHit, int64, error) {
	field := r.field(req)
	q := r.buildQuery(req, field)

	kind := matchKind(req.Query())
	metrics.SearchesTotal.WithLabelValues(kind, fieldKind(req.Exact())).Inc()

	start := time.Now()
	resp, err := r.store.Search(ctx, r.cfg.Index, q)
	metrics.SearchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, engine.ErrUnavailable) {
			metrics.SearchErrorsTotal.WithLabelValues("unavailable").Inc()
			return nil, 0, fmt.Errorf("%w: %w", domain.ErrEngineUnavailable, err)
		}
		metrics.SearchErrorsTotal.WithLabelValues("bad_response").Inc()
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrEngineError, err)
	}

	hits := make([]result.RawHit, 0, len(resp.Hits.Hits))
	for _, h := range resp.Hits.Hits {
		hits = append(hits, parseHit(h, field))
	}
	return hits, resp.Hits.Total.Value, nil
}

// field selects the search field by exactness: the exact field matches only
// the literal term; the clitic-expanded field also matches the term behind
// any of the indexed one-letter proclitics.
func (r *Repo) field(req request.Request) string {
	if req.Exact() {
		return r.cfg.ExactField
	}
	return r.cfg.CliticField
}

// buildQuery assembles the engine query. The caller has already validated
// the request, so a wildcard here is guaranteed to be a single token.
func (r *Repo) buildQuery(req request.Request, field string) *engine.Query {
	from := (req.Page() - 1) * req.PageSize()
	if from+req.PageSize() > r.cfg.MaxResultWindow {
		// Never ask the engine to seek past the result window, whatever
		// page was requested.
		from = r.cfg.MaxResultWindow - req.PageSize()
		if from < 0 {
			from = 0
		}
	}

	match := r.matchClause(req.Query(), field)

	boolq := engine.BoolQuery{Must: []engine.Clause{match}}
	if ids := req.EligibleTextIDs(); len(ids) > 0 {
		boolq.Filter = []engine.Clause{
			{"terms": map[string]any{"text_id": ids}},
		}
	}

	return &engine.Query{
		From:           from,
		Size:           req.PageSize(),
		TrackTotalHits: true,
		Query:          engine.QueryWrapper{Bool: boolq},
		// uri is monotonic with canonical page order: ascending sort keeps
		// pagination stable across repeated identical requests.
		Sort: []map[string]string{{"uri": "asc"}},
		Highlight: &engine.Highlight{
			Type: "unified",
			Fields: map[string]engine.HighlightField{
				field: {
					NumberOfFragments: r.cfg.FragmentCount,
					FragmentSize:      r.cfg.FragmentSize,
					PreTags:           []string{r.cfg.PreTag},
					PostTags:          []string{r.cfg.PostTag},
					RequireFieldMatch: true,
				},
			},
			// Highlight with the retrieval clause itself so marked spans
			// always agree with what matched.
			HighlightQuery: match,
		},
	}
}

func (r *Repo) matchClause(query, field string) engine.Clause {
	if arabic.ContainsWildcard(query) {
		return engine.Clause{
			"wildcard": map[string]any{
				field: map[string]any{
					"value":            query,
					"case_insensitive": true,
				},
			},
		}
	}
	// match_phrase behaves identically for one-word and multi-word queries.
	return engine.Clause{
		"match_phrase": map[string]any{field: query},
	}
}

func parseHit(h engine.HitEnvelope, field string) result.RawHit {
	score := 0.0
	if h.Score != nil {
		score = *h.Score
	}
	return result.RawHit{
		TextID:      h.Source.TextID,
		VolumeLabel: h.Source.Vol,
		PageID:      h.Source.PageID,
		PageNumber:  h.Source.PageNum,
		Score:       score,
		SourceURI:   h.Source.URI,
		Fragments:   h.Highlight[field],
	}
}

func matchKind(query string) string {
	if arabic.ContainsWildcard(query) {
		return "wildcard"
	}
	return "phrase"
}

func fieldKind(exact bool) string {
	if exact {
		return "exact"
	}
	return "clitic"
}
