package arxiv2epub

import (
	"log/slog"
	"net/http"
	"slices"
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for debug output. Default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProgress registers a callback invoked at each pipeline stage.
func WithProgress(fn func(Event)) Option {
	return func(c *Converter) {
		c.progress = fn
	}
}

// WithHTTPClient sets the client shared by the default fetcher and catalog.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Converter) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP timeout of the default client. Zero means none.
// Panics if d is negative.
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("arxiv2epub: WithTimeout duration must not be negative")
	}
	return func(c *Converter) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent sent to ar5iv and the arXiv API.
func WithUserAgent(ua string) Option {
	return func(c *Converter) {
		c.userAgent = ua
	}
}

// WithHTMLBaseURL overrides the rendered-HTML endpoint; the id is appended.
func WithHTMLBaseURL(u string) Option {
	return func(c *Converter) {
		c.htmlBaseURL = u
	}
}

// WithCatalogBaseURL overrides the arXiv API query endpoint.
func WithCatalogBaseURL(u string) Option {
	return func(c *Converter) {
		c.catalogBaseURL = u
	}
}

// WithPandoc sets the pandoc binary and extra arguments for the default backend.
// An empty path keeps "pandoc".
func WithPandoc(path string, extraArgs ...string) Option {
	return func(c *Converter) {
		c.pandocPath = path
		c.pandocArgs = slices.Clone(extraArgs)
	}
}

// WithStylesheet sets CSS embedded in the EPUB by the default backend.
func WithStylesheet(css string) Option {
	return func(c *Converter) {
		c.stylesheet = css
	}
}

// WithFetcher replaces the rendered-HTML fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *Converter) {
		c.fetcher = f
	}
}

// WithRewriter replaces the markup rewriter.
func WithRewriter(r MarkupRewriter) Option {
	return func(c *Converter) {
		c.rewriter = r
	}
}

// WithCatalog replaces the metadata resolver.
func WithCatalog(m MetadataResolver) Option {
	return func(c *Converter) {
		c.catalog = m
	}
}

// WithBackend replaces the EPUB backend.
func WithBackend(b Backend) Option {
	return func(c *Converter) {
		c.backend = b
	}
}
