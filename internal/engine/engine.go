// Package engine defines the wire contract with the upstream full-text
// engine. Consumers depend on the narrow Store interface; the opensearch
// subpackage provides the HTTP implementation.
package engine

import (
	"context"
	"errors"
	"time"
)

// Store is the engine facade.
type Store interface {
	Searcher
	IndexManager
	Pinger
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Searcher executes structured queries against a corpus index.
type Searcher interface {
	Search(ctx context.Context, index string, q *Query) (*Response, error)
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, index string, body []byte) error
	IndexExists(ctx context.Context, index string) (bool, error)
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Sentinel errors for engine operations.
var (
	// ErrUnavailable signals a transport-level failure reaching the engine.
	ErrUnavailable = errors.New("engine: unavailable")
	// ErrBadResponse signals a non-success status or an unparsable body.
	ErrBadResponse = errors.New("engine: bad response")
	// ErrIndexExists signals that the index already exists.
	ErrIndexExists = errors.New("engine: index already exists")
	// ErrIndexNotFound signals a missing index.
	ErrIndexNotFound = errors.New("engine: index not found")
)

// Error wraps an underlying error with the operation and HTTP status for
// diagnostics.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Clause is a single leaf query clause (match_phrase, wildcard, terms).
type Clause map[string]any

// BoolQuery combines a required match clause with optional filter clauses.
type BoolQuery struct {
	Must   []Clause `json:"must"`
	Filter []Clause `json:"filter,omitempty"`
}

// QueryWrapper is the top-level query envelope.
type QueryWrapper struct {
	Bool BoolQuery `json:"bool"`
}

// HighlightField configures fragment extraction for one field.
type HighlightField struct {
	NumberOfFragments int      `json:"number_of_fragments"`
	FragmentSize      int      `json:"fragment_size"`
	PreTags           []string `json:"pre_tags"`
	PostTags          []string `json:"post_tags"`
	RequireFieldMatch bool     `json:"require_field_match"`
}

// Highlight configures fragment extraction. HighlightQuery pins the
// highlighter to the exact retrieval clause so highlighted spans always
// agree with what was matched.
type Highlight struct {
	Type           string                    `json:"type,omitempty"`
	Fields         map[string]HighlightField `json:"fields"`
	HighlightQuery Clause                    `json:"highlight_query,omitempty"`
}

// Query is the JSON body sent to the _search endpoint.
type Query struct {
	From           int                 `json:"from"`
	Size           int                 `json:"size"`
	TrackTotalHits bool                `json:"track_total_hits"`
	Query          QueryWrapper        `json:"query"`
	Sort           []map[string]string `json:"sort,omitempty"`
	Highlight      *Highlight          `json:"highlight,omitempty"`
}

// Response is the parsed _search response.
type Response struct {
	Took int          `json:"took"`
	Hits ResponseHits `json:"hits"`
}

// ResponseHits holds the hit list and the tracked total.
type ResponseHits struct {
	Total Total         `json:"total"`
	Hits  []HitEnvelope `json:"hits"`
}

// Total is the engine-reported hit count.
type Total struct {
	Value    int64  `json:"value"`
	Relation string `json:"relation"`
}

// HitEnvelope is a single raw hit. Score is a pointer because sorted
// searches report a null _score.
type HitEnvelope struct {
	ID        string              `json:"_id"`
	Score     *float64            `json:"_score"`
	Source    PageSource          `json:"_source"`
	Highlight map[string][]string `json:"highlight"`
}

// PageSource is the stored page document.
type PageSource struct {
	TextID  int    `json:"text_id"`
	URI     string `json:"uri"`
	Vol     string `json:"vol"`
	PageID  int    `json:"page_id"`
	PageNum int    `json:"page_num"`
	Content string `json:"page_content"`
}
