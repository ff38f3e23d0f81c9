package types

import "errors"

// CoverageTier controls how many flashcards are targeted relative to
// document size. All tiers cover the whole document, at different density.
type CoverageTier string

const (
	CoverageMinimal CoverageTier = "minimal"
	CoverageMedium  CoverageTier = "medium"
	CoverageMaximum CoverageTier = "maximum"
)

// ErrEmptyDocument is returned when the pipeline is invoked with no usable
// text. It is the only error surfaced to the caller; every other failure
// degrades to partial or heuristic output.
var ErrEmptyDocument = errors.New("document text is empty")

// Chunk is a bounded contiguous slice of the document text, tagged with its
// position in the document.
type Chunk struct {
	Index   int    // ordinal position in the document
	Content string // the actual text content
}

// CandidatePair is an unfiltered, possibly duplicate question/answer pair
// produced by one chunk's generation call.
type CandidatePair struct {
	Question string
	Answer   string
	Chunk    int // ordinal of the originating chunk
}

// QAPair is a final, deduplicated, quality-filtered flashcard.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateRequest carries one pipeline invocation. TargetCards overrides the
// coverage-derived target when positive.
type GenerateRequest struct {
	Text        string
	Coverage    CoverageTier
	TargetCards int
	UserPrompt  string
	Language    string // ISO 639-1 override; empty means detect
}
