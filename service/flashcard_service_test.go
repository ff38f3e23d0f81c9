package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzyras/ankicraft/config"
	"github.com/alzyras/ankicraft/types"
)

// stubAI replays canned completions. Chunk generation runs concurrently, so
// all state is mutex-protected.
type stubAI struct {
	mu        sync.Mutex
	responses []string
	err       error

	calls   int
	prompts []string
}

func (s *stubAI) Complete(_ context.Context, _, userPrompt string, _ float32, _ int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.prompts = append(s.prompts, userPrompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) == 0 {
		return "", nil
	}
	response := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return response, nil
}

func (s *stubAI) stats() (int, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls, append([]string(nil), s.prompts...)
}

func TestGenerateFlashcardsEmptyDocument(t *testing.T) {
	svc := newFlashcardService(nil, config.Default().Pipeline)

	_, err := svc.GenerateFlashcards(context.Background(), types.GenerateRequest{Text: "   \n\t  "})
	assert.ErrorIs(t, err, types.ErrEmptyDocument)
}

func TestGenerateFlashcardsHeuristicOnly(t *testing.T) {
	svc := newFlashcardService(nil, config.Default().Pipeline)

	text := "The Pilgrims founded Plymouth Colony in 1620. " +
		"The colony suffered greatly during the winter of 1621. " +
		"Nothing remarkable here at all."

	pairs, err := svc.GenerateFlashcards(context.Background(), types.GenerateRequest{
		Text:     text,
		Coverage: types.CoverageMedium,
		Language: "en",
	})

	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Contains(t, pairs[0].Question, "1620")
	assert.Equal(t, "The Pilgrims founded Plymouth Colony in 1620", pairs[0].Answer)
	for _, pair := range pairs {
		assert.True(t, strings.HasSuffix(pair.Question, "?"))
	}
}

func TestGenerateFlashcardsTruncatesToTarget(t *testing.T) {
	ai := &stubAI{responses: []string{
		`Q: Question number one about the colony?
A: Answer number one
Q: Question number two about the colony?
A: Answer number two
Q: Question number three about the colony?
A: Answer number three
Q: Question number four about the colony?
A: Answer number four
Q: Question number five about the colony?
A: Answer number five`,
	}}
	svc := newFlashcardService(ai, config.Default().Pipeline)

	pairs, err := svc.GenerateFlashcards(context.Background(), types.GenerateRequest{
		Text:        "A short document about the colony.",
		Coverage:    types.CoverageMedium,
		TargetCards: 3,
		Language:    "en",
	})

	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, "Question number one about the colony?", pairs[0].Question)
	assert.Equal(t, "Question number three about the colony?", pairs[2].Question)

	calls, _ := ai.stats()
	assert.Equal(t, 1, calls, "no supplement pass when the target is met")
}

func TestGenerateFlashcardsFallsBackOnFailure(t *testing.T) {
	ai := &stubAI{err: errors.New("backend down")}
	svc := newFlashcardService(ai, config.Default().Pipeline)

	pairs, err := svc.GenerateFlashcards(context.Background(), types.GenerateRequest{
		Text:     "The Pilgrims founded Plymouth Colony in 1620.",
		Coverage: types.CoverageMedium,
		Language: "en",
	})

	require.NoError(t, err, "generation failure must degrade, not fail")
	require.Len(t, pairs, 1)
	assert.Equal(t, "The Pilgrims founded Plymouth Colony in 1620", pairs[0].Answer)
}

func TestGenerateFlashcardsChunksLongDocuments(t *testing.T) {
	cfg := config.Default().Pipeline
	cfg.MaxChunkSize = 200
	cfg.MaxConcurrentChunks = 2

	ai := &stubAI{responses: []string{
		`Q: What did the settlers endure?
A: A hard winter
Q: Where was the colony located?
A: On the coast`,
	}}
	svc := newFlashcardService(ai, cfg)

	paragraph := strings.TrimSpace(strings.Repeat("The settlers endured a hard winter. ", 5))
	text := paragraph + "\n\n" + paragraph + "\n\n" + paragraph

	pairs, err := svc.GenerateFlashcards(context.Background(), types.GenerateRequest{
		Text:        text,
		Coverage:    types.CoverageMedium,
		TargetCards: 30,
		Language:    "en",
	})

	require.NoError(t, err)
	// Identical chunk responses collapse under dedup.
	require.Len(t, pairs, 2)

	calls, _ := ai.stats()
	assert.Equal(t, 4, calls, "three chunk calls plus one supplement pass")
}

func TestGenerateFlashcardsCanceledContext(t *testing.T) {
	cfg := config.Default().Pipeline
	cfg.MaxChunkSize = 200

	svc := newFlashcardService(&stubAI{}, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paragraph := strings.TrimSpace(strings.Repeat("The settlers endured a hard winter. ", 5))
	text := paragraph + "\n\n" + paragraph + "\n\n" + paragraph

	_, err := svc.GenerateFlashcards(ctx, types.GenerateRequest{
		Text:     text,
		Coverage: types.CoverageMedium,
		Language: "en",
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateFlashcardsMaximumCoverageSupplements(t *testing.T) {
	ai := &stubAI{responses: []string{
		`Q: What is the capital of France?
A: Paris
Q: What is the capital city of France?
A: Paris, the capital`,
		`Q: When did the French Revolution begin?
A: In 1789`,
	}}
	svc := newFlashcardService(ai, config.Default().Pipeline)

	pairs, err := svc.GenerateFlashcards(context.Background(), types.GenerateRequest{
		Text:        "A short document about France.",
		Coverage:    types.CoverageMaximum,
		TargetCards: 5,
		Language:    "en",
	})

	require.NoError(t, err)
	// The rephrased capital question is dropped by token-overlap dedup, then
	// the shortfall pass contributes the revolution card.
	require.Len(t, pairs, 2)
	assert.Equal(t, "What is the capital of France?", pairs[0].Question)
	assert.Equal(t, "When did the French Revolution begin?", pairs[1].Question)

	calls, prompts := ai.stats()
	require.Equal(t, 2, calls)
	assert.Contains(t, prompts[1], "historical events, dates, people, and statistics")
}

func TestExtractKeyPointsUsesBackend(t *testing.T) {
	ai := &stubAI{responses: []string{
		"1. The colony was founded in 1620\n- It nearly failed in its first winter\n\n2. Trade with local tribes sustained it",
	}}
	svc := newFlashcardService(ai, config.Default().Pipeline)

	points := svc.ExtractKeyPoints(context.Background(), "some document text", "")

	require.Len(t, points, 3)
	assert.Equal(t, "The colony was founded in 1620", points[0])
	assert.Equal(t, "It nearly failed in its first winter", points[1])
	assert.Equal(t, "Trade with local tribes sustained it", points[2])
}

func TestExtractKeyPointsHeuristicWithoutBackend(t *testing.T) {
	svc := newFlashcardService(nil, config.Default().Pipeline)

	points := svc.ExtractKeyPoints(context.Background(), "The colony was founded in 1620. Plain filler text without facts.", "")

	require.Len(t, points, 1)
	assert.Equal(t, "The colony was founded in 1620", points[0])
}
