package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/alzyras/ankicraft/config"
	"github.com/alzyras/ankicraft/types"
)

// FlashcardService runs the whole pipeline: plan the target count, chunk the
// document, generate candidate pairs per chunk, then merge, deduplicate,
// supplement and truncate. All state is scoped to one invocation.
type FlashcardService struct {
	ai         AIService // nil means heuristic-only generation
	language   *LanguageService
	summarizer *SummarizerService
	chunker    *ChunkService
	planner    *PlannerService
	cfg        config.PipelineConfig
}

// NewFlashcardService selects the generation backend once from configuration.
// A missing credential downgrades to the heuristic backend with a warning
// rather than failing; generation quality is best-effort by design.
func NewFlashcardService(cfg *config.Config) *FlashcardService {
	var ai AIService

	switch cfg.AIProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Println("OPENAI_API_KEY not set, falling back to heuristic extraction")
		} else {
			ai = NewOpenAIService("", cfg.OpenAIAPIKey, cfg.Model)
		}
	case "local":
		ai = NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
	case "gemini":
		service, err := NewGeminiService(cfg.GeminiAPIKeys, cfg.Model)
		if err != nil {
			log.Printf("Failed to create Gemini client: %v, falling back to heuristic extraction", err)
		} else {
			ai = service
		}
	case "none", "":
		// Heuristic-only pipeline.
	default:
		log.Printf("Unknown AI provider %q, falling back to heuristic extraction", cfg.AIProvider)
	}

	return newFlashcardService(ai, cfg.Pipeline)
}

func newFlashcardService(ai AIService, cfg config.PipelineConfig) *FlashcardService {
	return &FlashcardService{
		ai:         ai,
		language:   NewLanguageService(),
		summarizer: NewSummarizerService(),
		chunker:    NewChunkService(cfg.MaxChunkSize),
		planner:    NewPlannerService(),
		cfg:        cfg,
	}
}

// GenerateFlashcards is the pipeline's boundary surface: text in, an ordered
// deduplicated list of question/answer pairs out. Empty input is the only
// caller-visible error; capability failures degrade to partial or heuristic
// output.
func (s *FlashcardService) GenerateFlashcards(ctx context.Context, req types.GenerateRequest) ([]types.QAPair, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, types.ErrEmptyDocument
	}

	target := s.planner.PlanTarget(len(req.Text), req.Coverage, req.TargetCards)

	languageCode := req.Language
	if languageCode == "" {
		languageCode = s.language.Identify(truncateRunes(req.Text, s.cfg.LanguageSampleSize))
	}
	languageName := LanguageName(languageCode)
	log.Printf("Document language: %s (%s), target cards: %d", languageName, languageCode, target)

	maximum := req.Coverage == types.CoverageMaximum

	candidates, err := s.collectCandidates(ctx, req, target, languageName, maximum)
	if err != nil {
		return nil, err
	}

	return s.aggregate(ctx, candidates, target, maximum, req.Text, languageName, req.UserPrompt), nil
}

// collectCandidates produces raw pairs for the whole document: one generation
// call for short documents, bounded-parallel per-chunk calls for long ones.
// Results are merged in chunk-ordinal order regardless of completion order so
// that first-seen-wins dedup stays deterministic.
func (s *FlashcardService) collectCandidates(ctx context.Context, req types.GenerateRequest, target int, languageName string, maximum bool) ([]types.CandidatePair, error) {
	if s.ai == nil {
		return s.heuristicCandidates(req.Text, req.UserPrompt), nil
	}

	if len(req.Text) <= s.cfg.MaxChunkSize {
		pairs, err := s.generateSingle(ctx, req.Text, languageName, target, req.UserPrompt, maximum)
		if err != nil {
			// Short-document path: recover with the full heuristic pipeline.
			log.Printf("Generation failed (%v), falling back to heuristic extraction", err)
			return s.heuristicCandidates(req.Text, req.UserPrompt), nil
		}
		return pairs, nil
	}

	chunks := s.chunker.Split(req.Text)
	log.Printf("Text exceeds chunk budget, split into %d chunks", len(chunks))

	perChunk := target / len(chunks)
	if perChunk < s.cfg.PerChunkFloor {
		perChunk = s.cfg.PerChunkFloor
	}
	if maximum && perChunk < s.cfg.MaxCoverageFloor {
		perChunk = s.cfg.MaxCoverageFloor
	}

	results := make([][]types.CandidatePair, len(chunks))
	g := new(errgroup.Group)
	g.SetLimit(s.cfg.MaxConcurrentChunks)
	for _, chunk := range chunks {
		if ctx.Err() != nil {
			break // caller aborted; don't dispatch further chunks
		}
		chunk := chunk
		g.Go(func() error {
			pairs, err := s.generateForChunk(ctx, chunk, languageName, perChunk, req.UserPrompt)
			if err != nil {
				// Per-chunk failure is soft: log and contribute zero pairs.
				log.Printf("Chunk %d: generation failed: %v", chunk.Index, err)
				return nil
			}
			results[chunk.Index] = pairs
			return nil
		})
	}
	g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var candidates []types.CandidatePair
	for _, pairs := range results {
		candidates = append(candidates, pairs...)
	}
	return candidates, nil
}

// heuristicCandidates runs the local extractor, per chunk for long documents
// so the cap on key points applies per chunk rather than to the whole text.
func (s *FlashcardService) heuristicCandidates(text, userInstruction string) []types.CandidatePair {
	if len(text) <= s.cfg.MaxChunkSize {
		points := s.summarizer.ExtractKeyPoints(text, userInstruction)
		return s.summarizer.QAPairsFromKeyPoints(points, 0)
	}

	var candidates []types.CandidatePair
	for _, chunk := range s.chunker.Split(text) {
		points := s.summarizer.ExtractKeyPoints(chunk.Content, userInstruction)
		candidates = append(candidates, s.summarizer.QAPairsFromKeyPoints(points, chunk.Index)...)
	}
	return candidates
}

func (s *FlashcardService) generateForChunk(ctx context.Context, chunk types.Chunk, languageName string, perChunk int, userInstruction string) ([]types.CandidatePair, error) {
	userMessage := fmt.Sprintf(`Create %d-%d Q&A flashcards from the following text in %s.
Cover important facts, dates, people, events, and concepts in the text.
Each question should:
1. Ask exactly one specific thing
2. Not give away the answer in the question
3. Be clear and unambiguous
4. Test important concepts from the text
5. Focus on key facts that students should remember
6. Ensure comprehensive coverage - include ALL important content from the text
7. Include sufficient context in questions - for historical content spanning decades, include the time period, historical context, or relevant background information
8. Make questions self-contained so they can be understood without referring to the original text

Format each flashcard as:
Q: [question in %s with sufficient context]
A: [answer in %s]

Text:
%s`, max(1, perChunk-2), perChunk+2, languageName, languageName, languageName, chunk.Content)

	maxTokens := min(4000, 300+perChunk*100)
	content, err := s.complete(ctx, s.systemPrompt(languageName, userInstruction), userMessage, 0.4, maxTokens)
	if err != nil {
		return nil, err
	}
	return ParseQAResponse(content, chunk.Index), nil
}

// generateSingle handles documents that fit in one generation request. The
// request band is wider than the per-chunk one, and maximum coverage asks for
// comprehensive inclusion.
func (s *FlashcardService) generateSingle(ctx context.Context, text, languageName string, target int, userInstruction string, maximum bool) ([]types.CandidatePair, error) {
	coverageLine := "Cover important facts, dates, people, events, and concepts in the text."
	extraRules := ""
	if maximum {
		coverageLine = "Cover ALL important facts, dates, people, events, and concepts in the text."
		extraRules = `
6. Ensure comprehensive coverage - include ALL important content from the text
7. Include sufficient context in questions - for historical content spanning decades, include the time period, historical context, or relevant background information
8. Make questions self-contained so they can be understood without referring to the original text`
	}

	userMessage := fmt.Sprintf(`Create %d-%d Q&A flashcards from the following text in %s.
%s
Each question should:
1. Ask exactly one specific thing
2. Not give away the answer in the question
3. Be clear and unambiguous
4. Test important concepts from the text
5. Focus on key facts that students should remember%s

Format each flashcard as:
Q: [question in %s]
A: [answer in %s]

Text:
%s`, max(10, target-5), target+5, languageName, coverageLine, extraRules, languageName, languageName, text)

	maxTokens := min(3500, 600+target*75)
	content, err := s.complete(ctx, s.systemPrompt(languageName, userInstruction), userMessage, 0.4, maxTokens)
	if err != nil {
		return nil, err
	}
	return ParseQAResponse(content, 0), nil
}

// supplement issues the single extra generation pass over (a truncated view
// of) the original text when the first aggregation round falls short.
func (s *FlashcardService) supplement(ctx context.Context, text, languageName, instruction string, count int) []types.CandidatePair {
	userMessage := fmt.Sprintf(`%s

Format each flashcard as:
Q: [specific question in %s with full context]
A: [detailed answer in %s]

Text:
%s`, instruction, languageName, languageName, truncateRunes(text, s.cfg.MaxChunkSize))

	maxTokens := min(3000, 300+count*80)
	content, err := s.complete(ctx, s.systemPrompt(languageName, ""), userMessage, 0.4, maxTokens)
	if err != nil {
		log.Printf("Supplementary generation failed: %v", err)
		return nil
	}
	return ParseQAResponse(content, 0)
}

func (s *FlashcardService) systemPrompt(languageName, userInstruction string) string {
	base := fmt.Sprintf("You are an expert at creating educational flashcards in %s. ", languageName)
	if userInstruction != "" {
		return base + userInstruction
	}
	return base + "Create meaningful questions that cover important concepts in the text."
}

// complete wraps every capability call with the configured timeout so that a
// hung provider fails the same way as any other capability error.
func (s *FlashcardService) complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()
	return s.ai.Complete(ctx, systemPrompt, userPrompt, temperature, maxTokens)
}

// aggregate merges candidates in chunk order through the tier's dedup policy,
// runs at most one supplementation round on shortfall, and truncates to the
// target. First-seen pairs win.
func (s *FlashcardService) aggregate(ctx context.Context, candidates []types.CandidatePair, target int, maximum bool, text, languageName, userInstruction string) []types.QAPair {
	policy := s.newDedupPolicy(maximum)

	var result []types.QAPair
	for _, candidate := range candidates {
		pair := CleanPair(candidate.Question, candidate.Answer)
		if policy.admit(pair) {
			result = append(result, pair)
		}
	}

	if s.ai != nil {
		if extra := s.shortfallPass(ctx, len(result), target, maximum, text, languageName, userInstruction); len(extra) > 0 {
			for _, candidate := range extra {
				pair := CleanPair(candidate.Question, candidate.Answer)
				if policy.admit(pair) {
					result = append(result, pair)
				}
			}
		}
	}

	if len(result) > target {
		result = result[:target]
	}
	return result
}

// shortfallPass decides whether one supplementary generation round is due and
// runs it. Maximum coverage retries at a higher threshold with a narrower,
// fact-focused instruction. There is never more than one round.
func (s *FlashcardService) shortfallPass(ctx context.Context, have, target int, maximum bool, text, languageName, userInstruction string) []types.CandidatePair {
	if maximum && float64(have) < s.cfg.MaxShortfallRatio*float64(target) {
		count := min(target-have, s.cfg.SupplementCap)
		instruction := fmt.Sprintf(
			"Generate %d additional Q&A flashcards focusing on specific historical events, dates, people, and statistics from the text in %s. Be as specific as possible.",
			count, languageName)
		log.Printf("Maximum coverage shortfall (%d/%d), supplementing", have, target)
		return s.supplement(ctx, text, languageName, instruction, count)
	}

	if float64(have) < s.cfg.ShortfallRatio*float64(target) {
		instruction := strings.TrimSpace(userInstruction + " Extract important content that may have been missed")
		log.Printf("Shortfall after first pass (%d/%d), supplementing", have, target)
		return s.supplement(ctx, text, languageName, fmt.Sprintf(
			"%s. Create %d additional Q&A flashcards from the text in %s.",
			instruction, target-have, languageName), target-have)
	}

	return nil
}

// ExtractKeyPoints exposes key-point extraction on its own: AI-backed when a
// backend exists, heuristic otherwise. Numbering and bullets are stripped
// from model output.
func (s *FlashcardService) ExtractKeyPoints(ctx context.Context, text, userInstruction string) []string {
	if s.ai == nil {
		return s.summarizer.ExtractKeyPoints(text, userInstruction)
	}

	systemPrompt := "You are an expert at extracting key information and facts from text. "
	if userInstruction != "" {
		systemPrompt += userInstruction
	} else {
		systemPrompt += "Extract the most important facts and key points."
	}
	userMessage := "Extract key facts and important points from the following text. Format each point as a separate sentence:\n\n" +
		truncateRunes(text, s.cfg.MaxChunkSize)

	content, err := s.complete(ctx, systemPrompt, userMessage, 0.3, 1000)
	if err != nil {
		log.Printf("Key point extraction failed (%v), falling back to heuristic extraction", err)
		return s.summarizer.ExtractKeyPoints(text, userInstruction)
	}

	var points []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "0123456789. -–—*")
		if line = strings.TrimSpace(line); line != "" {
			points = append(points, line)
		}
		if len(points) == maxKeyPoints {
			break
		}
	}
	return points
}
