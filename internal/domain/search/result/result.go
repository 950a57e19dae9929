// Package result holds raw and enriched search results.
package result

// Snippet is a cleaned highlight fragment split around the matched span.
// All three parts are plain text; any of them may be empty.
type Snippet struct {
	Pre   string `json:"pre"`
	Match string `json:"match"`
	Post  string `json:"post"`
}

// RawHit is a single engine hit before metadata enrichment. Fragments keeps
// the marked-up highlight fragments in engine order.
type RawHit struct {
	TextID      int
	VolumeLabel string
	PageID      int
	PageNumber  int
	Score       float64
	SourceURI   string
	Fragments   []string
}

// Hit is a fully enriched search result. Snippets preserves the order and
// count of the raw highlight fragments.
type Hit struct {
	TextID      int       `json:"text_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	DeathDateAH *int      `json:"death_date_ah,omitempty"`
	VolumeLabel string    `json:"vol"`
	PageID      int       `json:"page_id"`
	PageNumber  int       `json:"page_num"`
	Score       float64   `json:"score"`
	SourceURI   string    `json:"uri"`
	Snippets    []Snippet `json:"snippets"`
}

// Page is an ordered result window plus the engine-reported total, which may
// exceed the window.
type Page struct {
	Hits     []Hit `json:"hits"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
