package main

import (
	"errors"
	"os"

	arxiv2epub "github.com/alnah/go-arxiv2epub"
	"github.com/alnah/go-arxiv2epub/internal/assets"
	"github.com/alnah/go-arxiv2epub/internal/config"
	"github.com/alnah/go-arxiv2epub/internal/logging"
)

// Exit codes for arxiv2epub CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Generated or skipped
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or identifier
	ExitIO      = 3 // Output directory or file errors
	ExitFetch   = 4 // Rendered HTML download failed
	ExitCatalog = 5 // arXiv API lookup failed
	ExitConvert = 6 // pandoc missing or failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Conversion errors (exit 6)
	if errors.Is(err, arxiv2epub.ErrConversion) ||
		errors.Is(err, arxiv2epub.ErrConverterNotFound) {
		return ExitConvert
	}

	// Download errors (exit 4)
	if errors.Is(err, arxiv2epub.ErrFetch) {
		return ExitFetch
	}

	// Catalog errors (exit 5)
	if errors.Is(err, arxiv2epub.ErrCatalog) ||
		errors.Is(err, arxiv2epub.ErrPaperNotFound) {
		return ExitCatalog
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, os.ErrExist) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidFormat) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, arxiv2epub.ErrEmptyIdentifier) ||
		errors.Is(err, arxiv2epub.ErrInvalidFilename) ||
		errors.Is(err, arxiv2epub.ErrInvalidBaseURL) {
		return ExitUsage
	}

	return ExitGeneral
}
