package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTMLClient(srv *httptest.Server) *HTMLClient {
	c := NewHTMLClient(srv.Client())
	c.BaseURL = srv.URL + "/html/"
	return c
}

func TestHTMLClient_Fetch(t *testing.T) {
	t.Parallel()

	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>paper</p></body></html>"))
	}))
	defer srv.Close()

	c := newTestHTMLClient(srv)
	c.UserAgent = "test/0.1"

	body, err := c.Fetch(context.Background(), "2501.00601")
	require.NoError(t, err)
	assert.Equal(t, "<html><body><p>paper</p></body></html>", body)
	assert.Equal(t, "/html/2501.00601", gotPath)
	assert.Equal(t, "test/0.1", gotUA)
}

func TestHTMLClient_Fetch_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusTooManyRequests} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := newTestHTMLClient(srv).Fetch(context.Background(), "2501.00601")
		srv.Close()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
		assert.Contains(t, err.Error(), fmt.Sprintf("HTTP %d", status))
	}
}

func TestHTMLClient_Fetch_NoRetry(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestHTMLClient(srv).Fetch(context.Background(), "x")
	require.ErrorIs(t, err, ErrFetch)
	assert.Equal(t, 1, calls)
}

func TestHTMLClient_Fetch_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c := newTestHTMLClient(srv)
	srv.Close()

	_, err := c.Fetch(context.Background(), "2501.00601")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestHTMLClient_Fetch_BodyTooLarge(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer srv.Close()

	c := newTestHTMLClient(srv)
	c.MaxBodySize = 10

	_, err := c.Fetch(context.Background(), "big")
	require.ErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestHTMLClient_Fetch_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestHTMLClient(srv).Fetch(ctx, "2501.00601")
	require.ErrorIs(t, err, ErrFetch)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHTMLClient_Defaults(t *testing.T) {
	t.Parallel()

	c := NewHTMLClient(nil)
	assert.Same(t, http.DefaultClient, c.HTTPClient)
	assert.Equal(t, DefaultHTMLBaseURL, c.BaseURL)
	assert.Equal(t, "https://ar5iv.labs.arxiv.org/html/2501.00601", c.URL("2501.00601"))
}
