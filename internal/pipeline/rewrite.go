package pipeline

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TeXEncoding is the annotation encoding LaTeXML uses for the TeX source of a formula.
const TeXEncoding = "application/x-tex"

// texScriptType marks a script element as inline TeX for pandoc's HTML reader.
const texScriptType = "math/tex"

// DefaultRemoveTags lists elements the EPUB output cannot carry.
var DefaultRemoveTags = []string{"img", "table"}

// Stats counts what a rewrite changed.
type Stats struct {
	Removed   int // img/table elements removed
	Converted int // math elements replaced by a TeX marker
	Dropped   int // math elements removed for lack of a TeX annotation
}

// Rewriter turns ar5iv HTML into markup pandoc can convert to EPUB.
//
// The zero value is not usable; create with NewRewriter.
type Rewriter struct {
	// RemoveTags are deleted from the tree, with their subtrees, before math is rewritten.
	RemoveTags []string

	// Encoding selects the annotation that carries the formula source.
	Encoding string
}

// NewRewriter creates a Rewriter that removes images and tables and
// replaces MathML with its TeX annotation.
func NewRewriter() *Rewriter {
	tags := make([]string, len(DefaultRemoveTags))
	copy(tags, DefaultRemoveTags)
	return &Rewriter{RemoveTags: tags, Encoding: TeXEncoding}
}

// Rewrite applies the default Rewriter to htmlContent.
func Rewrite(htmlContent string) (string, error) {
	return NewRewriter().Rewrite(htmlContent)
}

// Rewrite strips unsupported elements and rewrites math nodes.
func (r *Rewriter) Rewrite(htmlContent string) (string, error) {
	out, _, err := r.RewriteWithStats(htmlContent)
	return out, err
}

// RewriteWithStats is Rewrite, also reporting what changed.
//
// Math handling:
//   - math with an annotation of r.Encoding becomes <script type="math/tex">
//     holding the annotation text with surrounding whitespace trimmed
//     (a whitespace-only annotation yields an empty marker)
//   - math without such an annotation is removed
//
// Malformed or missing annotations never produce an error.
func (r *Rewriter) RewriteWithStats(htmlContent string) (string, Stats, error) {
	var stats Stats

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", stats, err
	}

	stats.Removed = r.removeElements(doc)
	stats.Converted, stats.Dropped = r.rewriteMath(doc)

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return "", stats, err
	}
	return out, stats, nil
}

// removeElements deletes every element named in r.RemoveTags.
func (r *Rewriter) removeElements(doc *html.Node) int {
	remove := make(map[string]bool, len(r.RemoveTags))
	for _, tag := range r.RemoveTags {
		remove[strings.ToLower(tag)] = true
	}

	nodes := collectElements(doc, func(n *html.Node) bool {
		return remove[n.Data]
	}, nil)

	for _, n := range nodes {
		detach(n)
	}
	return len(nodes)
}

// rewriteMath replaces or removes every math element.
func (r *Rewriter) rewriteMath(doc *html.Node) (converted, dropped int) {
	nodes := collectElements(doc, func(n *html.Node) bool {
		return n.Data == "math"
	}, nil)

	for _, math := range nodes {
		annotation := findAnnotation(math, r.Encoding)
		if annotation == nil {
			detach(math)
			dropped++
			continue
		}

		marker := newTeXScript(strings.TrimSpace(textContent(annotation)))
		math.Parent.InsertBefore(marker, math)
		detach(math)
		converted++
	}
	return converted, dropped
}

// collectElements returns matching elements in document order.
// Matched elements are not descended into: their subtree goes with them.
func collectElements(n *html.Node, match func(*html.Node) bool, out []*html.Node) []*html.Node {
	if n.Type == html.ElementNode && match(n) {
		return append(out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = collectElements(c, match, out)
	}
	return out
}

// findAnnotation returns the first annotation descendant with the given encoding.
func findAnnotation(n *html.Node, encoding string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "annotation" && attr(c, "encoding") == encoding {
			return c
		}
		if found := findAnnotation(c, encoding); found != nil {
			return found
		}
	}
	return nil
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// newTeXScript builds <script type="math/tex">tex</script>.
func newTeXScript(tex string) *html.Node {
	script := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Script,
		Data:     "script",
		Attr:     []html.Attribute{{Key: "type", Val: texScriptType}},
	}
	script.AppendChild(&html.Node{Type: html.TextNode, Data: tex})
	return script
}

// detach removes n from its parent, if it has one.
func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	content = strings.TrimPrefix(content, byteOrderMark)

	if isDocument(content) {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// byteOrderMark may precede a page served as UTF-8.
const byteOrderMark = "\ufeff"

// isDocument reports whether content is a whole page rather than a body
// fragment. Leading comments and <?...?> prologs are skipped before looking
// for a doctype or <html> tag.
func isDocument(content string) bool {
	rest := content
	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		var ok bool
		switch {
		case strings.HasPrefix(rest, "<!--"):
			_, rest, ok = strings.Cut(rest, "-->")
		case strings.HasPrefix(rest, "<?"):
			_, rest, ok = strings.Cut(rest, ">")
		default:
			lower := strings.ToLower(rest)
			return strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html")
		}
		if !ok {
			return false
		}
	}
}

// renderHTML renders the tree back to a string.
// Fragments render their children only, without an <html><body> wrapper.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
