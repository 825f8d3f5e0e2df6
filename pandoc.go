package arxiv2epub

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/alnah/go-arxiv2epub/internal/fileutil"
	"github.com/alnah/go-arxiv2epub/internal/process"
)

// DefaultPandocBinary is looked up on PATH when no binary is configured.
const DefaultPandocBinary = "pandoc"

// waitDelay bounds how long Wait blocks on pipes after pandoc is killed.
const waitDelay = 5 * time.Second

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// Cancelling ctx kills the command and every process it started.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- binary is user-configured
	process.Isolate(cmd)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// PandocBackend converts HTML to EPUB by invoking the pandoc CLI.
type PandocBackend struct {
	Runner     CommandRunner
	Binary     string
	ExtraArgs  []string
	Stylesheet string // CSS content; empty means pandoc's default
}

// NewPandocBackend creates a PandocBackend with a real command runner.
func NewPandocBackend() *PandocBackend {
	return &PandocBackend{
		Runner: &ExecRunner{},
		Binary: DefaultPandocBinary,
	}
}

// Args builds the pandoc argument list. cssPath may be empty.
// TeX formulas in <script type="math/tex"> are rendered as images by --webtex.
func (b *PandocBackend) Args(inputPath, outputPath, cssPath string) []string {
	args := []string{inputPath, "-f", "html", "-t", "epub", "--webtex", "-o", outputPath}
	if cssPath != "" {
		args = append(args, "--css", cssPath)
	}
	return append(args, b.ExtraArgs...)
}

// Convert writes markup to a temporary file and runs pandoc on it.
// On failure, an output file that did not exist before the call is removed.
func (b *PandocBackend) Convert(ctx context.Context, markup, outputPath string) (err error) {
	if markup == "" {
		return ErrEmptyMarkup
	}
	if outputPath == "" {
		return ErrEmptyOutputPath
	}

	existed := fileutil.Exists(outputPath)
	defer func() {
		if err != nil && !existed {
			_ = os.Remove(outputPath)
		}
	}()

	inputPath, cleanup, err := fileutil.WriteTempFile(markup, "html")
	if err != nil {
		return err
	}
	defer cleanup()

	var cssPath string
	if b.Stylesheet != "" {
		var cleanupCSS func()
		cssPath, cleanupCSS, err = fileutil.WriteTempFile(b.Stylesheet, "css")
		if err != nil {
			return err
		}
		defer cleanupCSS()
	}

	binary := b.Binary
	if binary == "" {
		binary = DefaultPandocBinary
	}

	_, stderr, err := b.Runner.Run(ctx, binary, b.Args(inputPath, outputPath, cssPath)...)
	if err != nil {
		return classifyRunError(ctx, binary, stderr, err)
	}
	return nil
}

// classifyRunError maps a runner failure to ErrConverterNotFound or ErrConversion.
func classifyRunError(ctx context.Context, binary, stderr string, err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrConverterNotFound, binary)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ErrConversion, ctxErr)
	}
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("%w: %s: %w", ErrConversion, msg, err)
	}
	return fmt.Errorf("%w: %w", ErrConversion, err)
}
