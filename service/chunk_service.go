package service

import (
	"strings"

	"github.com/alzyras/ankicraft/types"
)

// ChunkService splits arbitrarily long text into bounded-size pieces without
// breaking paragraph or sentence continuity. The size bound is soft: a single
// paragraph or sentence longer than the budget is emitted whole rather than
// truncated, so no content is ever lost.
type ChunkService struct {
	maxChunkSize int
}

func NewChunkService(maxChunkSize int) *ChunkService {
	return &ChunkService{maxChunkSize: maxChunkSize}
}

// Split partitions text into ordered chunks. Paragraphs are accumulated up to
// the budget first; any block still over budget is re-split on sentence
// boundaries.
func (s *ChunkService) Split(text string) []types.Chunk {
	paragraphs := strings.Split(text, "\n\n")

	var blocks []string
	current := ""
	for _, paragraph := range paragraphs {
		if len(current)+len(paragraph) > s.maxChunkSize && strings.TrimSpace(current) != "" {
			blocks = append(blocks, strings.TrimSpace(current))
			current = paragraph + "\n\n"
		} else {
			current += paragraph + "\n\n"
		}
	}
	if strings.TrimSpace(current) != "" {
		blocks = append(blocks, strings.TrimSpace(current))
	}

	var pieces []string
	for _, block := range blocks {
		if len(block) <= s.maxChunkSize {
			pieces = append(pieces, block)
			continue
		}
		pieces = append(pieces, s.splitBySentence(block)...)
	}

	chunks := make([]types.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, types.Chunk{Index: i, Content: piece})
	}
	return chunks
}

// splitBySentence accumulates sentences into sub-chunks. A sub-chunk closes
// when the next sentence would push it past the budget and it already holds at
// least a quarter of the budget (the floor avoids tiny trailing fragments),
// or proactively once it has enough sentences and a third of the budget, to
// keep prompt sizes predictable for sentence-dense text.
func (s *ChunkService) splitBySentence(block string) []string {
	sentences := strings.Split(block, ". ")

	targetSentences := s.maxChunkSize / 500
	if targetSentences < 5 {
		targetSentences = 5
	}

	var pieces []string
	sub := ""
	sentenceCount := 0
	for _, sentence := range sentences {
		withPunct := strings.TrimSpace(sentence) + ". "

		if len(sub)+len(withPunct) > s.maxChunkSize && strings.TrimSpace(sub) != "" {
			if len(sub) > s.maxChunkSize/4 {
				pieces = append(pieces, strings.TrimSpace(sub))
				sub = withPunct
				sentenceCount = 1
			} else {
				// Below the floor: keep appending even past the nominal limit.
				sub += withPunct
				sentenceCount++
			}
		} else {
			sub += withPunct
			sentenceCount++

			if sentenceCount >= targetSentences && len(sub) > s.maxChunkSize/3 {
				pieces = append(pieces, strings.TrimSpace(sub))
				sub = ""
				sentenceCount = 0
			}
		}
	}
	if strings.TrimSpace(sub) != "" {
		pieces = append(pieces, strings.TrimSpace(sub))
	}

	return pieces
}
