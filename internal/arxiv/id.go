package arxiv

import "strings"

// catalogHost identifies input that is a URL into the arXiv catalog.
const catalogHost = "arxiv.org"

// ExtractID returns the canonical identifier for a bare id or an arxiv.org URL.
//
// Surrounding whitespace and trailing slashes are removed. If what remains
// mentions arxiv.org, the last path segment is the id:
//
//	"2501.00601"                            -> "2501.00601"
//	" https://arxiv.org/abs/2501.00601/ "   -> "2501.00601"
//	"http://arxiv.org/pdf/2101.12345"       -> "2101.12345"
//
// The id itself is not validated.
func ExtractID(input string) string {
	cleaned := strings.TrimRight(strings.TrimSpace(input), "/")
	if strings.Contains(cleaned, catalogHost) {
		return cleaned[strings.LastIndex(cleaned, "/")+1:]
	}
	return cleaned
}
