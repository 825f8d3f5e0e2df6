package arxiv2epub

import (
	"time"

	"github.com/alnah/go-arxiv2epub/internal/arxiv"
	"github.com/alnah/go-arxiv2epub/internal/pipeline"
)

// Metadata is the bibliographic subset used to name output files.
type Metadata = arxiv.Metadata

// RewriteStats counts what the markup rewriter changed.
type RewriteStats = pipeline.Stats

// EPUBExtension is appended to every output filename.
const EPUBExtension = ".epub"

// Request describes one paper to convert.
type Request struct {
	Input                string // arXiv id or URL
	OutputDir            string // created if missing; empty means "."
	Filename             string // without extension; empty derives it
	FilenameFromMetadata bool   // derive Filename from catalog metadata instead of the id
}

// Outcome reports what Convert did.
type Outcome int

const (
	// OutcomeGenerated means a new EPUB was written.
	OutcomeGenerated Outcome = iota
	// OutcomeSkipped means the target file already existed.
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGenerated:
		return "generated"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result is returned by a successful Convert.
type Result struct {
	ID       string        // normalized identifier
	Path     string        // output file path
	Outcome  Outcome
	Size     int64         // output size in bytes, 0 if unknown
	Duration time.Duration // wall time of the call
}

// EventKind identifies a pipeline stage.
type EventKind int

const (
	EventStarted EventKind = iota
	EventSkipped
	EventFetched
	EventRewritten
	EventGenerated
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventSkipped:
		return "skipped"
	case EventFetched:
		return "fetched"
	case EventRewritten:
		return "rewritten"
	case EventGenerated:
		return "generated"
	default:
		return "unknown"
	}
}

// Event is passed to the progress callback.
// Path is set once the output path is known.
type Event struct {
	Kind EventKind
	ID   string
	Path string
}
