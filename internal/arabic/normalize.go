// Package arabic implements the query-side canonicalization rules for
// classical Arabic text and the structural validity rules for search queries.
//
// Canonicalization matches the analyzer configuration of the corpus index:
// what gets folded here must be folded the same way at index time, otherwise
// a query can never hit.
package arabic

import "strings"

// Wildcard is the single-token wildcard marker accepted in queries.
const Wildcard = '*'

// Tashkeel combining marks (U+064B..U+0652): fathatan, dammatan, kasratan,
// fatha, damma, kasra, shadda, sukun.
const (
	tashkeelFirst = 'ً'
	tashkeelLast  = 'ْ'
)

const (
	alif            = 'ا' // U+0627
	alifHamzaAbove  = 'أ' // U+0623
	alifHamzaBelow  = 'إ' // U+0625
	alifMadda       = 'آ' // U+0622
	wawHamza        = 'ؤ' // U+0624
	yaaHamza        = 'ئ' // U+0626
	waw             = 'و' // U+0648
	yaa             = 'ي' // U+064A
	alifMaqsura     = 'ى' // U+0649
	farsiYeh        = 'ی' // U+06CC
	yehBarree       = 'ے' // U+06D2
	tatweel         = 'ـ' // U+0640
)

// passes are the canonicalization rules in application order. The order is
// load-bearing: hamza folding emits alif-maqsura, which the yaa pass then
// folds to plain yaa.
var passes = []func(rune) rune{stripTashkeel, foldHamza, foldYaa, stripTatweel}

// Normalize canonicalizes Arabic text for searching. Wildcard markers are
// never altered: the input is split on them, each segment is normalized
// independently, and the markers are rejoined in place. Characters outside
// the rules (spaces, punctuation, Latin, digits) pass through untouched.
func Normalize(s string) string {
	if !strings.ContainsRune(s, Wildcard) {
		return normalizeSegment(s)
	}

	segments := strings.Split(s, string(Wildcard))
	for i := range segments {
		segments[i] = normalizeSegment(segments[i])
	}
	return strings.Join(segments, string(Wildcard))
}

func normalizeSegment(s string) string {
	for _, pass := range passes {
		s = strings.Map(pass, s)
	}
	return s
}

func stripTashkeel(r rune) rune {
	if r >= tashkeelFirst && r <= tashkeelLast {
		return -1
	}
	return r
}

func foldHamza(r rune) rune {
	switch r {
	case alifHamzaAbove, alifHamzaBelow, alifMadda:
		return alif
	case wawHamza:
		return waw
	case yaaHamza:
		return alifMaqsura
	}
	return r
}

func foldYaa(r rune) rune {
	switch r {
	case alifMaqsura, farsiYeh, yehBarree:
		return yaa
	}
	return r
}

func stripTatweel(r rune) rune {
	if r == tatweel {
		return -1
	}
	return r
}
