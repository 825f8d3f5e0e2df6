package main

// Notes:
// - Tests use t.Setenv, which forbids t.Parallel.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-arxiv2epub/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("ARXIV2EPUB_CONFIG", "work")
	t.Setenv("ARXIV2EPUB_OUTPUT_DIR", "/tmp/papers")
	t.Setenv("ARXIV2EPUB_PANDOC", "/opt/pandoc")
	t.Setenv("ARXIV2EPUB_TIMEOUT", "90s")

	cfg := loadEnvConfig()
	if cfg.ConfigPath != "work" || cfg.OutputDir != "/tmp/papers" || cfg.Pandoc != "/opt/pandoc" {
		t.Errorf("loadEnvConfig() = %+v", cfg)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
}

func TestLoadEnvConfig_InvalidTimeoutIgnored(t *testing.T) {
	for _, value := range []string{"soon", "-5s", "0s"} {
		t.Setenv("ARXIV2EPUB_TIMEOUT", value)
		if got := loadEnvConfig().Timeout; got != 0 {
			t.Errorf("ARXIV2EPUB_TIMEOUT=%q: Timeout = %v, want 0", value, got)
		}
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("ARXIV2EPUB_PANDOC", "pandoc")
	t.Setenv("ARXIV2EPUB_TIMOUT", "30s")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "ARXIV2EPUB_TIMOUT") {
		t.Errorf("missing warning for typo: %q", out)
	}
	if strings.Contains(out, "ARXIV2EPUB_PANDOC") {
		t.Errorf("known variable reported: %q", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Output: config.OutputConfig{DefaultDir: "cfg"},
			Pandoc: config.PandocConfig{Path: "cfg-pandoc"},
			Fetch:  config.FetchConfig{Timeout: "10s"},
		}
		applyEnvConfig(&envConfig{OutputDir: "env", Pandoc: "env-pandoc", Timeout: time.Minute}, cfg)

		if cfg.Output.DefaultDir != "env" || cfg.Pandoc.Path != "env-pandoc" {
			t.Errorf("cfg = %+v", cfg)
		}
		if d, err := cfg.FetchTimeout(); err != nil || d != time.Minute {
			t.Errorf("FetchTimeout() = %v, %v; want 1m", d, err)
		}
	})

	t.Run("unset values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Output: config.OutputConfig{DefaultDir: "cfg"}, Fetch: config.FetchConfig{Timeout: "10s"}}
		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Output.DefaultDir != "cfg" || cfg.Fetch.Timeout != "10s" {
			t.Errorf("cfg = %+v", cfg)
		}
	})
}
