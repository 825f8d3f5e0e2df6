package arxiv2epub

import (
	"errors"

	"github.com/alnah/go-arxiv2epub/internal/arxiv"
)

// Sentinel errors for library operations.
var (
	ErrEmptyIdentifier   = errors.New("paper identifier cannot be empty")
	ErrInvalidFilename   = errors.New("invalid output filename")
	ErrEmptyMarkup       = errors.New("markup cannot be empty")
	ErrEmptyOutputPath   = errors.New("output path cannot be empty")
	ErrConversion        = errors.New("EPUB conversion failed")
	ErrConverterNotFound = errors.New("pandoc executable not found")
	ErrInvalidBaseURL    = errors.New("invalid base URL")
)

// Errors from the arXiv clients, re-exported for errors.Is checks.
var (
	ErrFetch         = arxiv.ErrFetch
	ErrCatalog       = arxiv.ErrCatalog
	ErrPaperNotFound = arxiv.ErrPaperNotFound
)
