// Package arxiv2epub converts arXiv papers to EPUB using ar5iv and pandoc.
//
// # Quick Start
//
// Create a converter and convert a paper by identifier or URL:
//
//	conv, err := arxiv2epub.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, arxiv2epub.Request{
//	    Input:     "https://arxiv.org/abs/1706.03762",
//	    OutputDir: "papers",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Outcome, result.Path)
//
// If the target file already exists the paper is not downloaded again and
// the result reports OutcomeSkipped.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Identifier normalization (URL forms reduced to the bare id)
//  2. Optional metadata lookup via the arXiv API (Request.FilenameFromMetadata)
//  3. Download of the rendered HTML from ar5iv
//  4. Markup rewriting: images and tables removed, MathML replaced by TeX
//  5. EPUB generation via pandoc (--webtex renders the TeX formulas)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := arxiv2epub.NewConverter(
//	    arxiv2epub.WithTimeout(2 * time.Minute),
//	    arxiv2epub.WithPandoc("/opt/pandoc/bin/pandoc", "--toc"),
//	    arxiv2epub.WithStylesheet(css),
//	    arxiv2epub.WithLogger(logger),
//	)
//
// Every stage sits behind an interface (Fetcher, MarkupRewriter,
// MetadataResolver, Backend) and can be replaced with WithFetcher,
// WithRewriter, WithCatalog and WithBackend.
//
// # Progress
//
// WithProgress registers a callback receiving an Event at each stage. The
// CLI uses it to print its status lines.
//
// # Converter Requirements
//
// EPUB generation requires pandoc on PATH, or a path given with WithPandoc.
// Cancelling the context passed to Convert kills pandoc and any process it
// started.
package arxiv2epub
