// Package arxiv talks to the two arXiv endpoints the converter needs:
// ar5iv for the pre-rendered HTML of a paper, and the export API's Atom
// feed for its bibliographic metadata. It also normalizes the identifiers
// users type or paste (bare ids and arxiv.org URLs).
package arxiv
