package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-arxiv2epub/internal/fileutil"
)

// DefaultCatalogBaseURL is the arXiv export API query endpoint.
const DefaultCatalogBaseURL = "https://export.arxiv.org/api/query"

// apiErrorMarker appears in the <id> of entries the API returns for bad ids.
const apiErrorMarker = "/api/errors"

// Metadata is the bibliographic subset used to name output files.
type Metadata struct {
	Title   string
	Authors string // family name of the first author, empty if none
	Year    string
}

// Filename builds "<Authors> <Year> - <Title>" reduced to letters, digits,
// spaces, hyphens and underscores.
func (m *Metadata) Filename() string {
	return fileutil.SanitizeFilename(fmt.Sprintf("%s %s - %s", m.Authors, m.Year, m.Title))
}

// CatalogClient looks up paper metadata through the arXiv Atom API.
type CatalogClient struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
}

// NewCatalogClient creates a CatalogClient for export.arxiv.org.
// A nil httpClient uses http.DefaultClient.
func NewCatalogClient(httpClient *http.Client) *CatalogClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CatalogClient{
		HTTPClient: httpClient,
		BaseURL:    DefaultCatalogBaseURL,
		UserAgent:  DefaultUserAgent,
	}
}

// Lookup returns metadata from the first entry the catalog lists for id.
func (c *CatalogClient) Lookup(ctx context.Context, id string) (*Metadata, error) {
	query := url.Values{"id_list": {id}}
	endpoint := c.BaseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrCatalog, err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: arXiv API request: %w", ErrCatalog, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: arXiv API returned HTTP %d", ErrCatalog, resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("%w: parsing arXiv response: %v", ErrCatalog, err)
	}

	if len(feed.Entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPaperNotFound, id)
	}
	entry := feed.Entries[0]
	if entry.ID == "" || strings.Contains(entry.ID, apiErrorMarker) {
		return nil, fmt.Errorf("%w: %s: %s", ErrPaperNotFound, id, collapseSpace(entry.Summary))
	}

	published, err := time.Parse(time.RFC3339, strings.TrimSpace(entry.Published))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid published date %q", ErrCatalog, entry.Published)
	}

	meta := &Metadata{
		Title: collapseSpace(entry.Title),
		Year:  strconv.Itoa(published.Year()),
	}
	if len(entry.Authors) > 0 {
		meta.Authors = familyName(entry.Authors[0].Name)
	}
	return meta, nil
}

// familyName returns the last whitespace-separated token of a full name.
func familyName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// collapseSpace trims s and folds internal runs of whitespace (arXiv titles
// wrap across lines in the feed) to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// arXiv Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}
