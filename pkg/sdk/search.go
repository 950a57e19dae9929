package sdk

import "context"

// Filters narrows a search by catalog metadata. Zero-valued fields apply no
// filtering; DeathMin and DeathMax must come as a pair.
type Filters struct {
	Genres    []string `json:"genres,omitempty"`
	AuthorIDs []int    `json:"author_ids,omitempty"`
	DeathMin  *int     `json:"death_min,omitempty"`
	DeathMax  *int     `json:"death_max,omitempty"`
}

// SearchRequest is one search or export invocation.
type SearchRequest struct {
	Query    string   `json:"query"`
	Exact    bool     `json:"exact,omitempty"`
	Page     int      `json:"page,omitempty"`
	PageSize int      `json:"page_size,omitempty"`
	Filters  *Filters `json:"filters,omitempty"`
}

// Snippet is a cleaned highlight fragment split around the matched span.
type Snippet struct {
	Pre   string `json:"pre"`
	Match string `json:"match"`
	Post  string `json:"post"`
}

// Hit is one enriched search result.
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

// Page is an ordered result window plus the engine-reported total.
type Page struct {
	Hits     []Hit `json:"hits"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// Search executes an interactive search.
func (c *Client) Search(ctx context.Context, req SearchRequest) (Page, error) {
	var page Page
	if err := c.postJSON(ctx, "/v1/search", req, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}

// Export executes the bulk-export pipeline: page pinned to 1 with the
// server's export cap. Page and PageSize in the request are ignored.
func (c *Client) Export(ctx context.Context, req SearchRequest) (Page, error) {
	var page Page
	if err := c.postJSON(ctx, "/v1/search/export", req, &page); err != nil {
		return Page{}, err
	}
	return page, nil
}
