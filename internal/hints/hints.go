// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-arxiv2epub/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForPandocNotFound returns hints for a missing pandoc binary.
func ForPandocNotFound() string {
	var hints []string

	if IsInContainer() {
		hints = append(hints, "install pandoc in the image (apt-get install pandoc)")
	} else {
		hints = append(hints, "install pandoc from https://pandoc.org/installing.html")
	}

	if os.Getenv("ARXIV2EPUB_PANDOC") == "" {
		hints = append(hints, "set ARXIV2EPUB_PANDOC or --pandoc to use a custom binary")
	}

	return formatHints(hints)
}

// ForFetch returns a hint for rendered-HTML download failures.
func ForFetch(url string) string {
	if url == "" {
		return format("ar5iv may not have rendered this paper yet")
	}
	return format("ar5iv may not have rendered this paper yet; check " + url)
}

// ForPaperNotFound returns a hint for identifiers the catalog does not know.
func ForPaperNotFound() string {
	return format("use an id like 2501.00601 or a URL like https://arxiv.org/abs/2501.00601")
}

// ForTimeout returns a hint about increasing the network timeout.
func ForTimeout() string {
	return format("for slow connections, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/arxiv2epub/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/arxiv2epub") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
