package domain

import "context"

// PageSource fetches one page of records from the remote collection
type PageSource interface {
	// FetchPage returns the records and pagination metadata for a 1-based page number
	FetchPage(ctx context.Context, page, limit int) (*Page, error)

	// Resource names the collection being paged (e.g. "artworks"), used for cache keys
	Resource() string
}

// PageCache stores fetched pages locally.
// Keys encode resource and the requested page size so a config change never
// serves pages cut at a different boundary. Pages are stored under the
// request that produced them, not the metadata the server echoed back.
type PageCache interface {
	Get(resource string, limit, page int) (*Page, bool)
	Put(resource string, limit, page int, p *Page) error
	InvalidateAll() error
	Close() error
}
