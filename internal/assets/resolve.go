package assets

import (
	"fmt"
	"os"

	"github.com/alnah/go-arxiv2epub/internal/fileutil"
)

// ResolveStyle returns CSS for nameOrPath: a path (anything containing a
// separator) is read from disk, otherwise the name is looked up in loader.
// An empty nameOrPath returns "" and no error.
func ResolveStyle(loader StyleLoader, nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", nil
	}

	if fileutil.IsFilePath(nameOrPath) {
		data, err := os.ReadFile(nameOrPath) // #nosec G304 -- stylesheet path is user-provided
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrAssetRead, nameOrPath, err)
		}
		return string(data), nil
	}

	return loader.LoadStyle(nameOrPath)
}
