package arxiv

import "errors"

// Sentinel errors for arXiv operations.
var (
	// ErrFetch indicates the rendered HTML could not be retrieved.
	ErrFetch = errors.New("fetching rendered paper failed")

	// ErrCatalog indicates the metadata request failed or returned an unreadable feed.
	ErrCatalog = errors.New("catalog lookup failed")

	// ErrPaperNotFound indicates the catalog has no entry for the identifier.
	ErrPaperNotFound = errors.New("paper not found in catalog")
)
