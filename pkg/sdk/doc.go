// Package sdk provides a Go client for the matndex HTTP API: corpus search
// over classical Arabic texts with proclitic-aware matching, metadata
// filters, and cleaned highlight snippets.
//
// Basic usage:
//
//	client := sdk.New("http://localhost:8080", sdk.WithAPIKey("secret"))
//	page, err := client.Search(ctx, sdk.SearchRequest{
//	    Query: "التصوف",
//	    Filters: &sdk.Filters{Genres: []string{"تصوف"}},
//	})
//
// Errors map to sentinel values checkable with errors.Is:
//
//	if errors.Is(err, sdk.ErrInvalidQuery) { ... }
//
// For in-process use without the HTTP API, see the root matndex package.
package sdk
