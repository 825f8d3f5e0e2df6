package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if cfg.Output.FilenameFromMetadata {
		t.Error("Output.FilenameFromMetadata = true, want false")
	}
	if cfg.Pandoc.Path != "" {
		t.Errorf("Pandoc.Path = %q, want empty", cfg.Pandoc.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid full config",
			cfg: Config{
				Output:  OutputConfig{DefaultDir: "papers", FilenameFromMetadata: true},
				Fetch:   FetchConfig{BaseURL: "https://ar5iv.org/html/", Timeout: "90s", UserAgent: "me"},
				Catalog: CatalogConfig{BaseURL: "http://localhost:8080/api/query"},
				Pandoc:  PandocConfig{Path: "/usr/bin/pandoc", ExtraArgs: []string{"--toc"}},
				Style:   StyleConfig{Name: "academic"},
				Log:     LogConfig{Level: "debug", Format: "json"},
			},
		},
		{
			name:    "fetch base URL without scheme",
			cfg:     Config{Fetch: FetchConfig{BaseURL: "ar5iv.org/html/"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "catalog base URL with ftp scheme",
			cfg:     Config{Catalog: CatalogConfig{BaseURL: "ftp://export.arxiv.org"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "bad timeout",
			cfg:     Config{Fetch: FetchConfig{Timeout: "soon"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative timeout",
			cfg:     Config{Fetch: FetchConfig{Timeout: "-5s"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "user agent too long",
			cfg:     Config{Fetch: FetchConfig{UserAgent: strings.Repeat("a", MaxUserAgentLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "too many extra args",
			cfg:     Config{Pandoc: PandocConfig{ExtraArgs: make([]string, MaxExtraArgs+1)}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "extra arg too long",
			cfg:     Config{Pandoc: PandocConfig{ExtraArgs: []string{strings.Repeat("x", MaxArgLength+1)}}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown log level",
			cfg:     Config{Log: LogConfig{Level: "trace"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown log format",
			cfg:     Config{Log: LogConfig{Format: "logfmt"}},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_FetchTimeout(t *testing.T) {
	cfg := Config{Fetch: FetchConfig{Timeout: "1m30s"}}

	got, err := cfg.FetchTimeout()
	if err != nil {
		t.Fatalf("FetchTimeout() error = %v", err)
	}
	if got != 90*time.Second {
		t.Errorf("FetchTimeout() = %v, want 1m30s", got)
	}

	unset, err := (&Config{}).FetchTimeout()
	if err != nil || unset != 0 {
		t.Errorf("FetchTimeout() on empty = %v, %v; want 0, nil", unset, err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "test.yaml")
		content := `output:
  defaultDir: "/papers"
  filenameFromMetadata: true
fetch:
  timeout: "45s"
pandoc:
  extraArgs: ["--toc", "--epub-chapter-level=2"]
style:
  name: "academic"
log:
  level: "debug"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.DefaultDir != "/papers" {
			t.Errorf("Output.DefaultDir = %q, want %q", cfg.Output.DefaultDir, "/papers")
		}
		if !cfg.Output.FilenameFromMetadata {
			t.Error("Output.FilenameFromMetadata = false, want true")
		}
		if cfg.Fetch.Timeout != "45s" {
			t.Errorf("Fetch.Timeout = %q, want 45s", cfg.Fetch.Timeout)
		}
		if len(cfg.Pandoc.ExtraArgs) != 2 || cfg.Pandoc.ExtraArgs[1] != "--epub-chapter-level=2" {
			t.Errorf("Pandoc.ExtraArgs = %v", cfg.Pandoc.ExtraArgs)
		}
		if cfg.Style.Name != "academic" {
			t.Errorf("Style.Name = %q, want academic", cfg.Style.Name)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("style: [unclosed"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "unknown.yaml")
		if err := os.WriteFile(configPath, []byte("output:\n  defaultDirectory: x\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("empty file returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "empty.yaml")
		if err := os.WriteFile(configPath, nil, 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation error is returned", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(configPath, []byte("fetch:\n  timeout: \"forever\"\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestParse_TooLarge(t *testing.T) {
	data := []byte("# " + strings.Repeat("x", MaxInputSize))

	_, err := Parse(data)
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("Parse() error = %v, want ErrConfigParse", err)
	}
}

// NOTE: Changes the working directory and environment; cannot run in parallel.
func TestLoadConfig_ByName(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME drives os.UserConfigDir only on Linux")
	}

	workDir := t.TempDir()
	userDir := t.TempDir()
	t.Chdir(workDir)
	t.Setenv("XDG_CONFIG_HOME", userDir)

	t.Run("found in current directory", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(workDir, "local.yml"), []byte("style:\n  name: local\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style.Name != "local" {
			t.Errorf("Style.Name = %q, want local", cfg.Style.Name)
		}
	})

	t.Run("found in user config directory", func(t *testing.T) {
		dir := filepath.Join(userDir, "arxiv2epub")
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "work.yaml"), []byte("style:\n  name: work\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Style.Name != "work" {
			t.Errorf("Style.Name = %q, want work", cfg.Style.Name)
		}
	})

	t.Run("missing name lists searched paths", func(t *testing.T) {
		_, err := LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}

		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("error %T is not *NotFoundError", err)
		}
		if len(nf.Tried) != 4 {
			t.Errorf("Tried = %v, want 4 paths", nf.Tried)
		}
		want := filepath.Join(userDir, "arxiv2epub", "missing.yaml")
		if nf.Tried[2] != want {
			t.Errorf("Tried[2] = %q, want %q", nf.Tried[2], want)
		}
	})
}
