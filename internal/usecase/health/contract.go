package health

import "context"

// EnginePinger checks search engine availability.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// CatalogInfo reports the loaded catalog sizes.
type CatalogInfo interface {
	TextCount() int
	AuthorCount() int
}
