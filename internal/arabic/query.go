package arabic

import (
	"fmt"
	"strings"

	"github.com/maktaba-cloud/matndex/internal/domain"
)

// IsPhrase reports whether the query contains more than one whitespace
// separated token after trimming.
func IsPhrase(q string) bool {
	return len(strings.Fields(q)) > 1
}

// ContainsWildcard reports whether the wildcard marker appears anywhere in q.
func ContainsWildcard(q string) bool {
	return strings.ContainsRune(q, Wildcard)
}

// Validate rejects queries that combine a wildcard with a multi-word phrase.
// Wildcard expansion is only defined against a single token; the engine has
// no semantics for a wildcard inside a phrase, so such queries must fail
// before query construction. An empty query is valid here — rejecting blanks
// is the caller's job.
func Validate(q string) error {
	if IsPhrase(q) && ContainsWildcard(q) {
		return fmt.Errorf("%w: wildcard not allowed in a multi-word phrase", domain.ErrInvalidQuery)
	}
	return nil
}
