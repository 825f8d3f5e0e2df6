package main

import (
	"context"
	"io"
	"os"
	"time"

	arxiv2epub "github.com/alnah/go-arxiv2epub"
	"github.com/alnah/go-arxiv2epub/internal/assets"
	"github.com/alnah/go-arxiv2epub/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and asset loading.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	StyleLoader assets.StyleLoader
	Config      *config.Config // used when no config file is named

	// ConverterOptions are appended after the options built from flags and
	// config. Tests use them to replace network and pandoc stages.
	ConverterOptions []arxiv2epub.Option

	// BaseContext is the parent of the signal context (default Background).
	BaseContext context.Context
}

// DefaultEnv returns production environment with embedded assets.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		StyleLoader: assets.NewEmbeddedLoader(),
		Config:      config.DefaultConfig(),
	}
}

// Context returns BaseContext or context.Background.
func (e *Environment) Context() context.Context {
	if e.BaseContext != nil {
		return e.BaseContext
	}
	return context.Background()
}
