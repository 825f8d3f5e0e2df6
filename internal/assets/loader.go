package assets

import (
	"fmt"
	"strings"
)

// DefaultStyleName is the built-in stylesheet used when a config asks for
// styling without naming one.
const DefaultStyleName = "default"

// StyleLoader loads CSS stylesheets by name.
type StyleLoader interface {
	// LoadStyle returns the CSS for name (without .css extension).
	// Returns ErrStyleNotFound or ErrInvalidAssetName.
	LoadStyle(name string) (string, error)

	// Styles lists the available style names, sorted.
	Styles() []string
}

// ValidateAssetName checks that a style name is safe for use as a filename.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
