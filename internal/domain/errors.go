package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrServerOffline indicates the collection API is unreachable
	ErrServerOffline = errors.New("collection API is unreachable")

	// ErrRateLimited indicates the collection API rejected the request with 429
	ErrRateLimited = errors.New("collection API rate limit exceeded")

	// ErrBadResponse indicates an unexpected status or an unparseable body
	ErrBadResponse = errors.New("unexpected response from collection API")

	// ErrInvalidPage indicates a page number below 1
	ErrInvalidPage = errors.New("page number must be >= 1")

	// ErrStalePage indicates a newer page request superseded this one
	ErrStalePage = errors.New("page request superseded by a newer one")

	// ErrInvalidBulkInput indicates the bulk-select count is not a non-negative integer
	ErrInvalidBulkInput = errors.New("row count must be a non-negative integer")

	// ErrNoPageLoaded indicates a command needs a visible page but none is loaded
	ErrNoPageLoaded = errors.New("no page is loaded")
)

// FetchError is returned when one page could not be loaded.
// The previously loaded page stays current.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
