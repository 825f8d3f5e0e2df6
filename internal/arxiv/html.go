package arxiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultHTMLBaseURL serves LaTeXML renderings of arXiv papers; the id is appended.
const DefaultHTMLBaseURL = "https://ar5iv.labs.arxiv.org/html/"

// DefaultMaxBodySize caps the rendered HTML read into memory (64 MiB).
const DefaultMaxBodySize int64 = 64 << 20

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "go-arxiv2epub"

// HTMLClient retrieves the rendered HTML of a paper.
type HTMLClient struct {
	HTTPClient  *http.Client
	BaseURL     string
	UserAgent   string
	MaxBodySize int64
}

// NewHTMLClient creates an HTMLClient for ar5iv.
// A nil httpClient uses http.DefaultClient.
func NewHTMLClient(httpClient *http.Client) *HTMLClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTMLClient{
		HTTPClient:  httpClient,
		BaseURL:     DefaultHTMLBaseURL,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// URL returns the address of the rendered document for id.
func (c *HTMLClient) URL(id string) string {
	return c.BaseURL + id
}

// Fetch downloads the rendered HTML for id. There is no retry: any
// transport error or non-2xx status is returned wrapped in ErrFetch.
func (c *HTMLClient) Fetch(ctx context.Context, id string) (string, error) {
	url := c.URL(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", ErrFetch, err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %w", ErrFetch, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: GET %s: HTTP %d", ErrFetch, url, resp.StatusCode)
	}

	limit := c.MaxBodySize
	if limit <= 0 {
		limit = DefaultMaxBodySize
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %w", ErrFetch, err)
	}
	if int64(len(body)) > limit {
		return "", fmt.Errorf("%w: body exceeds %d bytes", ErrFetch, limit)
	}

	return string(body), nil
}
