// Package highlight converts raw marked-up engine fragments into clean
// (pre, match, post) snippets.
//
// Corpus pages carry transcription noise: editorial parentheticals with page
// numbers, long numeric manuscript references, and stray percent signs. The
// processor strips those together with any markup so the caller gets plain
// text only. It never fails — malformed fragments degrade to "everything is
// context".
package highlight

import (
	"regexp"
	"strings"

	"github.com/maktaba-cloud/matndex/internal/domain/search/result"
)

var (
	markupRe     = regexp.MustCompile(`<[^>]*>`)
	parenDigitRe = regexp.MustCompile(`\([^()]*[0-9\x{0660}-\x{0669}\x{06F0}-\x{06F9}][^()]*\)`)
	percentRepl  = strings.NewReplacer("%", "", "٪", "")
)

// minStrippedRunLen is the shortest standalone digit run treated as a
// manuscript/page reference. Runs of 1-3 digits may be meaningful
// enumerations and are left alone.
const minStrippedRunLen = 4

// Processor splits fragments at a fixed open/close marker pair and cleans
// the resulting segments.
type Processor struct {
	openTag  string
	closeTag string
}

// New creates a Processor for the given highlight marker pair.
func New(openTag, closeTag string) *Processor {
	return &Processor{openTag: openTag, closeTag: closeTag}
}

// Process converts one fragment into a snippet. A fragment contains at most
// one highlighted span; if either marker is missing, the whole fragment is
// returned as unmatched context.
func (p *Processor) Process(fragment string) result.Snippet {
	open := strings.Index(fragment, p.openTag)
	if open < 0 {
		return result.Snippet{Pre: fragment}
	}
	rest := fragment[open+len(p.openTag):]
	closeAt := strings.Index(rest, p.closeTag)
	if closeAt < 0 {
		return result.Snippet{Pre: fragment}
	}

	return result.Snippet{
		Pre:   cleanSegment(fragment[:open]),
		Match: cleanSegment(rest[:closeAt]),
		Post:  cleanSegment(rest[closeAt+len(p.closeTag):]),
	}
}

// ProcessAll converts every fragment in order. The output always has the
// same length and order as the input; fragments are cleaned, never dropped.
func (p *Processor) ProcessAll(fragments []string) []result.Snippet {
	out := make([]result.Snippet, len(fragments))
	for i, f := range fragments {
		out[i] = p.Process(f)
	}
	return out
}

// cleanSegment applies the cleaning steps in their required order: markup
// must go before the digit patterns (tags can mask digit boundaries), and
// whitespace collapse runs last because the removals leave gaps.
func cleanSegment(s string) string {
	s = markupRe.ReplaceAllString(s, "")
	s = parenDigitRe.ReplaceAllString(s, " ")
	s = dropLongDigitRuns(s)
	s = percentRepl.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// dropLongDigitRuns removes whitespace-bounded tokens made entirely of
// digits (Western or Arabic-Indic) of length minStrippedRunLen or more.
func dropLongDigitRuns(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if !isLongDigitRun(f) {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

func isLongDigitRun(token string) bool {
	n := 0
	for _, r := range token {
		if !isDigit(r) {
			return false
		}
		n++
	}
	return n >= minStrippedRunLen
}

func isDigit(r rune) bool {
	return (r >= '0' && r <= '9') ||
		(r >= '٠' && r <= '٩') ||
		(r >= '۰' && r <= '۹')
}
