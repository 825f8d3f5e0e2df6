package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"

	arxiv2epub "github.com/alnah/go-arxiv2epub"
	"github.com/alnah/go-arxiv2epub/internal/arxiv"
	"github.com/alnah/go-arxiv2epub/internal/assets"
	"github.com/alnah/go-arxiv2epub/internal/config"
	"github.com/alnah/go-arxiv2epub/internal/hints"
	"github.com/alnah/go-arxiv2epub/internal/logging"
)

// ErrUsage marks command-line misuse (bad flags, missing or extra arguments).
var ErrUsage = errors.New("invalid usage")

// convertParams is the fully resolved configuration for one conversion.
type convertParams struct {
	request    arxiv2epub.Request
	pandoc     string
	pandocArgs []string
	style      string // name or path; empty disables
	timeout    time.Duration
	userAgent  string
	htmlBase   string
	catalog    string
	logLevel   string
	logFormat  string
	quiet      bool
	verbose    bool
}

// runConvert parses flags, resolves configuration and converts one paper.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printConvertUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	switch len(positional) {
	case 0:
		printConvertUsage(env.Stderr)
		return fmt.Errorf("%w: missing arXiv id or URL", ErrUsage)
	case 1:
	default:
		return fmt.Errorf("%w: expected one arXiv id or URL, got %d arguments", ErrUsage, len(positional))
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	params, err := resolveParams(positional[0], flags, cfg)
	if err != nil {
		return err
	}

	loader := env.StyleLoader
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}
	css, err := assets.ResolveStyle(loader, params.style)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(loader.Styles()))
		}
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  params.logLevel,
		Format: params.logFormat,
		Writer: env.Stderr,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	opts := []arxiv2epub.Option{
		arxiv2epub.WithLogger(logger),
		arxiv2epub.WithTimeout(params.timeout),
		arxiv2epub.WithUserAgent(params.userAgent),
		arxiv2epub.WithHTMLBaseURL(params.htmlBase),
		arxiv2epub.WithCatalogBaseURL(params.catalog),
		arxiv2epub.WithPandoc(params.pandoc, params.pandocArgs...),
		arxiv2epub.WithStylesheet(css),
		arxiv2epub.WithProgress(progressPrinter(env, params.quiet)),
	}
	opts = append(opts, env.ConverterOptions...)

	conv, err := arxiv2epub.NewConverter(opts...)
	if err != nil {
		return err
	}

	result, err := conv.Convert(ctx, params.request)
	if err != nil {
		return withHint(err, params)
	}

	if params.verbose && result.Outcome == arxiv2epub.OutcomeGenerated {
		fmt.Fprintf(env.Stdout, "Size: %s in %s\n",
			humanize.Bytes(uint64(result.Size)), result.Duration.Round(time.Millisecond))
	}
	if !params.quiet {
		fmt.Fprintln(env.Stdout, "Finished processing.")
	}
	return nil
}

// loadConfig loads the named config (flag, then ARXIV2EPUB_CONFIG) or
// returns a copy of the environment's default config.
func loadConfig(flagName string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envCfg.ConfigPath
	}

	if name == "" {
		cfg := config.DefaultConfig()
		if env.Config != nil {
			copied := *env.Config
			copied.Pandoc.ExtraArgs = append([]string(nil), env.Config.Pandoc.ExtraArgs...)
			cfg = &copied
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		var nf *config.NotFoundError
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(nf.Tried))
		}
		return nil, err
	}
	return cfg, nil
}

// resolveParams merges flags over the config.
func resolveParams(input string, flags *convertFlags, cfg *config.Config) (*convertParams, error) {
	p := &convertParams{
		request: arxiv2epub.Request{
			Input:                input,
			OutputDir:            cfg.Output.DefaultDir,
			Filename:             flags.filename,
			FilenameFromMetadata: cfg.Output.FilenameFromMetadata,
		},
		pandoc:     cfg.Pandoc.Path,
		pandocArgs: cfg.Pandoc.ExtraArgs,
		style:      cfg.Style.Name,
		userAgent:  cfg.Fetch.UserAgent,
		htmlBase:   cfg.Fetch.BaseURL,
		catalog:    cfg.Catalog.BaseURL,
		logLevel:   cfg.Log.Level,
		logFormat:  cfg.Log.Format,
		quiet:      flags.common.quiet,
		verbose:    flags.common.verbose,
	}

	if flags.output != "" {
		p.request.OutputDir = flags.output
	}
	if flags.metadataSet {
		p.request.FilenameFromMetadata = flags.metadataName
	}
	if flags.pandoc != "" {
		p.pandoc = flags.pandoc
	}

	timeout, err := cfg.FetchTimeout()
	if err != nil {
		return nil, err
	}
	p.timeout = timeout
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: invalid --timeout %q", ErrUsage, flags.timeout)
		}
		p.timeout = d
	}

	switch {
	case flags.style.noStyle:
		p.style = ""
	case flags.style.style != "":
		p.style = flags.style.style
	case p.style == "":
		p.style = assets.DefaultStyleName
	}

	switch {
	case p.quiet:
		p.logLevel = "error"
	case p.verbose:
		p.logLevel = "debug"
	}

	return p, nil
}

// progressPrinter prints the status lines for start, skip and generation.
func progressPrinter(env *Environment, quiet bool) func(arxiv2epub.Event) {
	return func(e arxiv2epub.Event) {
		if quiet {
			return
		}
		switch e.Kind {
		case arxiv2epub.EventStarted:
			fmt.Fprintf(env.Stdout, "Processing ID: %s...\n", e.ID)
		case arxiv2epub.EventSkipped:
			fmt.Fprintf(env.Stdout, "Skipping EPUB generation - file already exists: %s\n", e.Path)
		case arxiv2epub.EventGenerated:
			fmt.Fprintf(env.Stdout, "Generated EPUB: %s\n", e.Path)
		}
	}
}

// withHint appends an actionable hint to known failure classes.
func withHint(err error, p *convertParams) error {
	var hint string
	var timeoutErr interface{ Timeout() bool }

	switch {
	case errors.Is(err, arxiv2epub.ErrConverterNotFound):
		hint = hints.ForPandocNotFound()
	case errors.Is(err, arxiv2epub.ErrPaperNotFound):
		hint = hints.ForPaperNotFound()
	case errors.As(err, &timeoutErr) && timeoutErr.Timeout():
		hint = hints.ForTimeout()
	case errors.Is(err, arxiv2epub.ErrFetch):
		hint = hints.ForFetch(ar5ivURL(p))
	case errors.Is(err, fs.ErrPermission):
		hint = hints.ForOutputDirectory()
	}

	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// ar5ivURL returns the browser URL of the rendered paper when the default
// endpoint is in use.
func ar5ivURL(p *convertParams) string {
	if p.htmlBase != "" {
		return ""
	}
	return arxiv.DefaultHTMLBaseURL + arxiv.ExtractID(p.request.Input)
}
