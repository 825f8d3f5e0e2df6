package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-arxiv2epub/internal/config"
)

// envPrefix marks variables read by the CLI.
const envPrefix = "ARXIV2EPUB_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // ARXIV2EPUB_CONFIG: config file name or path
	OutputDir  string        // ARXIV2EPUB_OUTPUT_DIR: default output directory
	Pandoc     string        // ARXIV2EPUB_PANDOC: pandoc binary
	Timeout    time.Duration // ARXIV2EPUB_TIMEOUT: HTTP timeout
}

// knownEnvVars lists valid ARXIV2EPUB_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"ARXIV2EPUB_CONFIG":     true,
	"ARXIV2EPUB_OUTPUT_DIR": true,
	"ARXIV2EPUB_PANDOC":     true,
	"ARXIV2EPUB_TIMEOUT":    true,
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable ARXIV2EPUB_TIMEOUT is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("ARXIV2EPUB_CONFIG"),
		OutputDir:  os.Getenv("ARXIV2EPUB_OUTPUT_DIR"),
		Pandoc:     os.Getenv("ARXIV2EPUB_PANDOC"),
	}

	if timeout := os.Getenv("ARXIV2EPUB_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized ARXIV2EPUB_* variables.
// Helps catch typos like ARXIV2EPUB_OUTPUTDIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays set environment values on the config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later in resolveParams).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Pandoc != "" {
		cfg.Pandoc.Path = env.Pandoc
	}
	if env.Timeout > 0 {
		cfg.Fetch.Timeout = env.Timeout.String()
	}
}
