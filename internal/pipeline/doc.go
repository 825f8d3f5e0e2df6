// Package pipeline rewrites ar5iv HTML into markup pandoc can turn into EPUB.
//
// The rewrite runs on the parsed tree in two passes:
//   - Elements the EPUB cannot carry (images, tables) are removed with their content
//   - Each MathML element is replaced by a TeX script marker taken from its
//     application/x-tex annotation, or dropped when it has none
//
// Fetching and the pandoc invocation live in the root arxiv2epub package.
package pipeline
