// Package request holds the validated engine query request.
package request

import (
	"fmt"

	"github.com/maktaba-cloud/matndex/internal/arabic"
	"github.com/maktaba-cloud/matndex/internal/domain"
)

// Request is a validated, normalized engine query request. An empty eligible
// set means "unrestricted", never "no results" — the orchestrator short
// circuits filtered-to-nothing searches before building a Request.
type Request struct {
	query    string
	exact    bool
	eligible []int
	page     int
	pageSize int
}

// New validates and creates a Request. query must already be normalized.
// page values below 1 are clamped to 1; pageSize must be positive.
func New(query string, exact bool, eligibleTextIDs []int, page, pageSize int) (Request, error) {
	if query == "" {
		return Request{}, domain.ErrEmptyQuery
	}
	if err := arabic.Validate(query); err != nil {
		return Request{}, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return Request{}, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	ids := make([]int, len(eligibleTextIDs))
	copy(ids, eligibleTextIDs)

	return Request{
		query:    query,
		exact:    exact,
		eligible: ids,
		page:     page,
		pageSize: pageSize,
	}, nil
}

// Query returns the normalized query text.
func (r *Request) Query() string { return r.query }

// Exact reports whether the exact field should be searched instead of the
// clitic-expanded one.
func (r *Request) Exact() bool { return r.exact }

// EligibleTextIDs returns the restriction set (empty = unrestricted).
func (r *Request) EligibleTextIDs() []int { return r.eligible }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the requested window size.
func (r *Request) PageSize() int { return r.pageSize }
