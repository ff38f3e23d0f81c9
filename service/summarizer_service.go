package service

import (
	"regexp"
	"strings"

	"github.com/alzyras/ankicraft/types"
)

const (
	maxDateKeyPoints    = 10
	maxKeyPoints        = 15
	minKeyPointSentence = 20
)

var (
	sentenceEndPattern = regexp.MustCompile(`[.!?]+`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`), // MM/DD/YY or MM-DD-YYYY
		regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),   // YYYY-MM-DD
		regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{2,4}\b`), // Month DD, YYYY
	}

	importantIndicators = []*regexp.Regexp{
		regexp.MustCompile(`\d+`),          // contains numbers
		regexp.MustCompile(`\b[A-Z]{2,}\b`), // contains acronyms/abbreviations
		regexp.MustCompile(`(?i)\b(?:important|significant|key|main|primary|crucial|essential|vital)\b`),
		regexp.MustCompile(`(?i)\b(?:according to|research|study|findings|results)\b`),
	}

	auxiliaryVerbs = map[string]bool{
		"is": true, "are": true, "was": true, "were": true,
		"has": true, "have": true, "had": true,
		"do": true, "does": true, "did": true,
		"can": true, "could": true, "will": true, "would": true,
		"should": true, "may": true, "might": true,
	}

	copulaVerbs = map[string]bool{
		"is": true, "are": true, "was": true, "were": true,
	}
)

// SummarizerService is the local heuristic extraction path, used whenever no
// generation capability is configured or a call fails. It is deliberately
// rule-based; ambiguous output is an accepted limitation.
type SummarizerService struct{}

func NewSummarizerService() *SummarizerService {
	return &SummarizerService{}
}

// ExtractKeyPoints selects the sentences most likely to carry facts. When the
// instruction mentions dates, only date-bearing sentences are kept. Otherwise
// a sentence qualifies if it is long enough and contains a digit, an acronym,
// an emphasis word or a citation word. First occurrence wins on exact
// duplicates.
func (s *SummarizerService) ExtractKeyPoints(text, userInstruction string) []string {
	var sentences []string
	for _, sentence := range sentenceEndPattern.Split(text, -1) {
		if sentence = strings.TrimSpace(sentence); sentence != "" {
			sentences = append(sentences, sentence)
		}
	}

	if strings.Contains(strings.ToLower(userInstruction), "date") {
		var points []string
		for _, sentence := range sentences {
			for _, pattern := range datePatterns {
				if pattern.MatchString(sentence) {
					points = append(points, sentence)
					break
				}
			}
			if len(points) == maxDateKeyPoints {
				break
			}
		}
		return points
	}

	seen := map[string]bool{}
	var points []string
	for _, sentence := range sentences {
		if len(sentence) < minKeyPointSentence {
			continue
		}
		for _, pattern := range importantIndicators {
			if pattern.MatchString(sentence) {
				if !seen[sentence] {
					seen[sentence] = true
					points = append(points, sentence)
				}
				break
			}
		}
		if len(points) == maxKeyPoints {
			break
		}
	}
	return points
}

// StatementToQuestion converts a declarative key point into a question using
// three rules: statements opening with an auxiliary verb just get a question
// mark, statements containing a copula get a question mark, everything else
// is prefixed with "What is".
func (s *SummarizerService) StatementToQuestion(statement string) string {
	statement = strings.TrimSpace(statement)
	words := strings.Fields(strings.ToLower(statement))

	if len(words) > 0 && auxiliaryVerbs[words[0]] {
		return strings.TrimRight(statement, ".") + "?"
	}

	for _, word := range words {
		if copulaVerbs[word] {
			return strings.TrimRight(statement, ".") + "?"
		}
	}

	return "What is " + strings.TrimRight(statement, ".") + "?"
}

// QAPairsFromKeyPoints turns each key point into a candidate pair whose
// answer is the key point itself.
func (s *SummarizerService) QAPairsFromKeyPoints(points []string, chunk int) []types.CandidatePair {
	pairs := make([]types.CandidatePair, 0, len(points))
	for _, point := range points {
		pairs = append(pairs, types.CandidatePair{
			Question: s.StatementToQuestion(point),
			Answer:   point,
			Chunk:    chunk,
		})
	}
	return pairs
}

// Summarize produces a naive leading-sentences summary capped by length and
// roughly thirty words.
func (s *SummarizerService) Summarize(text string, maxLength int) string {
	summary := ""
	length := 0
	for _, sentence := range strings.Split(text, ".") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if length+len(sentence) > maxLength {
			break
		}
		summary += sentence + ". "
		length += len(sentence) + 2
		if len(strings.Fields(summary)) > 30 {
			break
		}
	}
	return strings.TrimSpace(summary)
}
