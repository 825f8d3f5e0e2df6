package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	arxiv2epub "github.com/alnah/go-arxiv2epub"
	"github.com/alnah/go-arxiv2epub/internal/hints"
)

// versionTimeout bounds the pandoc --version probe.
const versionTimeout = 10 * time.Second

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Pandoc   pandocInfo `json:"pandoc"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// pandocInfo holds pandoc detection results.
type pandocInfo struct {
	Found   bool   `json:"found"`
	Binary  string `json:"binary"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container bool   `json:"container"`
	CI        bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags or config.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.config, envCfg, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	applyEnvConfig(envCfg, cfg)

	binary := flags.pandoc
	if binary == "" {
		binary = cfg.Pandoc.Path
	}
	if binary == "" {
		binary = arxiv2epub.DefaultPandocBinary
	}

	result := runDoctor(env.Context(), binary)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, binary string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Pandoc: pandocInfo{Binary: binary},
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkPandoc(ctx, result)
	checkEnvironment(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkPandoc locates pandoc and reads its version.
func checkPandoc(ctx context.Context, result *doctorResult) {
	path, err := exec.LookPath(result.Pandoc.Binary)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("pandoc not found (%s)%s", result.Pandoc.Binary, hints.ForPandocNotFound()))
		return
	}
	result.Pandoc.Found = true
	result.Pandoc.Path = path

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	stdout, _, err := (&arxiv2epub.ExecRunner{}).Run(ctx, path, "--version")
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get pandoc version: %v", err))
		return
	}
	firstLine, _, _ := strings.Cut(stdout, "\n")
	result.Pandoc.Version = strings.TrimSpace(firstLine)
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container = hints.IsInContainer() ||
		os.Getenv("container") != "" ||
		os.Getenv("KUBERNETES_SERVICE_HOST") != ""

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkSystem verifies the temp directory used for pandoc input is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	result.System.TempDir = tmpDir

	testFile := filepath.Join(tmpDir, fmt.Sprintf("arxiv2epub-doctor-%d", os.Getpid()))
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "arxiv2epub doctor")
	fmt.Fprintln(w)

	rows := [][]string{}
	if r.Pandoc.Found {
		rows = append(rows, []string{"pandoc", "OK", r.Pandoc.Path})
		if r.Pandoc.Version != "" {
			rows = append(rows, []string{"pandoc version", "OK", r.Pandoc.Version})
		}
	} else {
		rows = append(rows, []string{"pandoc", "ERROR", "not found: " + r.Pandoc.Binary})
	}

	rows = append(rows, []string{"platform", "OK", r.Env.OS + "/" + r.Env.Arch})
	if r.Env.Container {
		rows = append(rows, []string{"container", "OK", "detected"})
	}
	if r.Env.CI {
		rows = append(rows, []string{"ci", "OK", "detected"})
	}

	if r.System.TempWritable {
		rows = append(rows, []string{"temp directory", "OK", r.System.TempDir})
	} else {
		rows = append(rows, []string{"temp directory", "ERROR", "not writable: " + r.System.TempDir})
	}

	fmt.Fprintln(w, renderTable([]string{"Check", "Status", "Detail"}, rows))
	fmt.Fprintln(w)

	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "[WARN] %s\n", warn)
	}
	for _, err := range r.Errors {
		fmt.Fprintf(w, "[ERROR] %s\n", err)
	}
	if len(r.Warnings)+len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
