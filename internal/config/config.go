package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-arxiv2epub/internal/fileutil"
	"github.com/alnah/go-arxiv2epub/internal/logging"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// MaxInputSize limits config files to prevent memory exhaustion (1MB).
var MaxInputSize = 1 << 20

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxURLLength       = 2048 // Browser limit
	MaxUserAgentLength = 256
	MaxStyleLength     = 100
	MaxArgLength       = 1024
	MaxExtraArgs       = 32
)

// configDirName is the directory under os.UserConfigDir searched for named configs.
const configDirName = "arxiv2epub"

// Config holds all configuration for EPUB generation.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Catalog CatalogConfig `yaml:"catalog"`
	Pandoc  PandocConfig  `yaml:"pandoc"`
	Style   StyleConfig   `yaml:"style"`
	Log     LogConfig     `yaml:"log"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir           string `yaml:"defaultDir"`           // Empty = current directory
	FilenameFromMetadata bool   `yaml:"filenameFromMetadata"` // Name files "<Author> <Year> - <Title>"
}

// FetchConfig defines rendered-HTML download options.
type FetchConfig struct {
	BaseURL   string `yaml:"baseURL"`   // Empty = ar5iv
	Timeout   string `yaml:"timeout"`   // Go duration, e.g. "90s" (empty = CLI default)
	UserAgent string `yaml:"userAgent"` // Empty = library default
}

// CatalogConfig defines arXiv API options.
type CatalogConfig struct {
	BaseURL string `yaml:"baseURL"` // Empty = export.arxiv.org
}

// PandocConfig defines the converter binary.
type PandocConfig struct {
	Path      string   `yaml:"path"`      // Empty = "pandoc" from PATH
	ExtraArgs []string `yaml:"extraArgs"` // Appended to every invocation
}

// StyleConfig selects the EPUB stylesheet.
type StyleConfig struct {
	Name string `yaml:"name"` // Embedded style name or CSS file path (empty = default)
}

// LogConfig defines diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // auto, console, json
}

// Validate checks field lengths and value syntax.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateBaseURL("fetch.baseURL", c.Fetch.BaseURL); err != nil {
		return err
	}
	if err := validateFieldLength("fetch.userAgent", c.Fetch.UserAgent, MaxUserAgentLength); err != nil {
		return err
	}
	if _, err := c.FetchTimeout(); err != nil {
		return err
	}

	if err := validateBaseURL("catalog.baseURL", c.Catalog.BaseURL); err != nil {
		return err
	}

	if err := validateFieldLength("pandoc.path", c.Pandoc.Path, MaxPathLength); err != nil {
		return err
	}
	if len(c.Pandoc.ExtraArgs) > MaxExtraArgs {
		return fmt.Errorf("%w: pandoc.extraArgs (%d entries, max %d)", ErrInvalidValue, len(c.Pandoc.ExtraArgs), MaxExtraArgs)
	}
	for i, arg := range c.Pandoc.ExtraArgs {
		if err := validateFieldLength(fmt.Sprintf("pandoc.extraArgs[%d]", i), arg, MaxArgLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("style.name", c.Style.Name, MaxPathLength); err != nil {
		return err
	}

	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("%w: log.format %q (must be auto, console, or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// FetchTimeout parses fetch.timeout. Zero means unset.
func (c *Config) FetchTimeout() (time.Duration, error) {
	if c.Fetch.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch.timeout %q: %v", ErrInvalidValue, c.Fetch.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: fetch.timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateBaseURL accepts empty values and absolute http(s) URLs.
func validateBaseURL(fieldName, value string) error {
	if value == "" {
		return nil
	}
	if err := validateFieldLength(fieldName, value, MaxURLLength); err != nil {
		return err
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s %q (must be an http or https URL)", ErrInvalidValue, fieldName, value)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: every field empty, so
// library defaults apply.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML strictly (unknown fields are errors) and validates it.
func Parse(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrConfigParse)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrConfigParse, len(data), MaxInputSize)
	}

	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/arxiv2epub/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Tried: triedPaths}
}

// NotFoundError lists the locations searched for a named config.
type NotFoundError struct {
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

// Unwrap lets errors.Is match ErrConfigNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}
