package main

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"
	"time"

	arxiv2epub "github.com/alnah/go-arxiv2epub"
	"github.com/alnah/go-arxiv2epub/internal/assets"
	"github.com/alnah/go-arxiv2epub/internal/config"
)

// ---------------------------------------------------------------------------
// Test doubles for the conversion stages
// ---------------------------------------------------------------------------

type stubFetcher struct {
	markup string
	err    error

	mu    sync.Mutex
	calls int
}

func (f *stubFetcher) Fetch(context.Context, string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.markup, f.err
}

func (f *stubFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type stubBackend struct {
	err       error
	gotMarkup string
	gotPath   string
	gotCalled bool
}

func (b *stubBackend) Convert(_ context.Context, markup, outputPath string) error {
	b.gotCalled = true
	b.gotMarkup = markup
	b.gotPath = outputPath
	if b.err != nil {
		return b.err
	}
	return os.WriteFile(outputPath, []byte("epub"), 0o644)
}

type stubCatalog struct {
	meta *arxiv2epub.Metadata
	err  error
}

func (c *stubCatalog) Lookup(context.Context, string) (*arxiv2epub.Metadata, error) {
	return c.meta, c.err
}

// testEnv returns an Environment writing to buffers, with the given
// converter options appended.
func testEnv(opts ...arxiv2epub.Option) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:              time.Now,
		Stdout:           &stdout,
		Stderr:           &stderr,
		StyleLoader:      assets.NewEmbeddedLoader(),
		Config:           config.DefaultConfig(),
		ConverterOptions: opts,
	}
	return env, &stdout, &stderr
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}
