package arxiv2epub

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alnah/go-arxiv2epub/internal/arxiv"
	"github.com/alnah/go-arxiv2epub/internal/fileutil"
	"github.com/alnah/go-arxiv2epub/internal/logging"
	"github.com/alnah/go-arxiv2epub/internal/pipeline"
)

// Fetcher retrieves the rendered HTML of a paper.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (string, error)
}

// MarkupRewriter prepares fetched HTML for EPUB conversion.
type MarkupRewriter interface {
	RewriteWithStats(markup string) (string, RewriteStats, error)
}

// MetadataResolver looks up bibliographic metadata for a paper.
type MetadataResolver interface {
	Lookup(ctx context.Context, id string) (*Metadata, error)
}

// Backend writes an EPUB from prepared markup.
type Backend interface {
	Convert(ctx context.Context, markup, outputPath string) error
}

// Compile-time interface implementation checks.
var (
	_ Fetcher          = (*arxiv.HTMLClient)(nil)
	_ MarkupRewriter   = (*pipeline.Rewriter)(nil)
	_ MetadataResolver = (*arxiv.CatalogClient)(nil)
	_ Backend          = (*PandocBackend)(nil)
)

// outputDirPerm is used when creating the output directory.
const outputDirPerm = 0o750

// Converter runs the id -> HTML -> rewritten HTML -> EPUB pipeline.
// Create with NewConverter. A Converter is safe for sequential reuse;
// nothing is cached between calls.
type Converter struct {
	logger   *slog.Logger
	progress func(Event)

	fetcher  Fetcher
	rewriter MarkupRewriter
	catalog  MetadataResolver
	backend  Backend

	httpClient     *http.Client
	timeout        time.Duration
	userAgent      string
	htmlBaseURL    string
	catalogBaseURL string
	pandocPath     string
	pandocArgs     []string
	stylesheet     string
}

// NewConverter creates a Converter with default components.
// Use options to customize behavior (e.g., WithTimeout, WithPandoc, WithBackend).
// Returns error if a configured base URL is not an absolute http(s) URL.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		logger: logging.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := validateBaseURL(c.htmlBaseURL); err != nil {
		return nil, err
	}
	if err := validateBaseURL(c.catalogBaseURL); err != nil {
		return nil, err
	}

	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: c.timeout}
	}

	if c.fetcher == nil {
		fetcher := arxiv.NewHTMLClient(httpClient)
		if c.htmlBaseURL != "" {
			fetcher.BaseURL = c.htmlBaseURL
		}
		if c.userAgent != "" {
			fetcher.UserAgent = c.userAgent
		}
		c.fetcher = fetcher
	}

	if c.catalog == nil {
		catalog := arxiv.NewCatalogClient(httpClient)
		if c.catalogBaseURL != "" {
			catalog.BaseURL = c.catalogBaseURL
		}
		if c.userAgent != "" {
			catalog.UserAgent = c.userAgent
		}
		c.catalog = catalog
	}

	if c.rewriter == nil {
		c.rewriter = pipeline.NewRewriter()
	}

	if c.backend == nil {
		backend := NewPandocBackend()
		if c.pandocPath != "" {
			backend.Binary = c.pandocPath
		}
		backend.ExtraArgs = c.pandocArgs
		backend.Stylesheet = c.stylesheet
		c.backend = backend
	}

	return c, nil
}

// Convert produces the EPUB for req.Input unless the target already exists.
// The context is used for cancellation of HTTP requests and pandoc.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, req Request) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()

	id := arxiv.ExtractID(req.Input)
	if id == "" {
		return nil, ErrEmptyIdentifier
	}
	c.emit(Event{Kind: EventStarted, ID: id})

	name, err := c.resolveFilename(ctx, id, req)
	if err != nil {
		return nil, err
	}

	dir := req.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, outputDirPerm); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, name+EPUBExtension)
	result = &Result{ID: id, Path: path}

	if fileutil.Exists(path) {
		c.logger.Debug("output exists, skipping", "id", id, "path", path)
		c.emit(Event{Kind: EventSkipped, ID: id, Path: path})
		result.Outcome = OutcomeSkipped
		result.Size = fileSize(path)
		result.Duration = time.Since(start)
		return result, nil
	}

	markup, err := c.fetcher.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("fetched rendered HTML", "id", id, "size", humanize.Bytes(uint64(len(markup))))
	c.emit(Event{Kind: EventFetched, ID: id, Path: path})

	rewritten, stats, err := c.rewriter.RewriteWithStats(markup)
	if err != nil {
		return nil, fmt.Errorf("rewriting markup: %w", err)
	}
	c.logger.Debug("rewrote markup",
		"id", id,
		"removed", stats.Removed,
		"converted", stats.Converted,
		"dropped", stats.Dropped,
	)
	c.emit(Event{Kind: EventRewritten, ID: id, Path: path})

	if err := c.backend.Convert(ctx, rewritten, path); err != nil {
		return nil, err
	}

	result.Outcome = OutcomeGenerated
	result.Size = fileSize(path)
	result.Duration = time.Since(start)
	c.logger.Debug("generated EPUB",
		"id", id,
		"path", path,
		"size", humanize.Bytes(uint64(result.Size)),
		"duration", result.Duration.Round(time.Millisecond),
	)
	c.emit(Event{Kind: EventGenerated, ID: id, Path: path})

	return result, nil
}

// resolveFilename picks the output name: explicit, metadata-derived, or the id.
func (c *Converter) resolveFilename(ctx context.Context, id string, req Request) (string, error) {
	name := req.Filename
	if name == "" && req.FilenameFromMetadata {
		meta, err := c.catalog.Lookup(ctx, id)
		if err != nil {
			return "", err
		}
		name = meta.Filename()
		c.logger.Debug("resolved metadata filename", "id", id, "filename", name)
	}
	if name == "" {
		name = id
	}
	if err := validateFilename(name); err != nil {
		return "", err
	}
	return name, nil
}

func (c *Converter) emit(e Event) {
	if c.progress != nil {
		c.progress(e)
	}
}

// validateFilename rejects names that would escape the output directory.
func validateFilename(name string) error {
	if strings.TrimSpace(name) == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidFilename, name)
	}
	return nil
}

// validateBaseURL accepts empty values and absolute http(s) URLs.
func validateBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
