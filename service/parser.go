package service

import (
	"regexp"
	"strings"

	"github.com/alzyras/ankicraft/types"
)

// The generation capability's output format is not contractually guaranteed,
// so parsing is best-effort and two-staged: a line-oriented scan first, then
// an inline-pair regex rescue when the scan recovers almost nothing.

// Question and answer labels recognized in model output. English plus the
// Lithuanian "Klausimas"/"Atsakymas" convention, matched case-insensitively.
var (
	questionLabels = []string{"q:", "question:", "k:", "klausimas:"}
	answerLabels   = []string{"a:", "answer:", "atsakymas:"}

	// Inline "Q: ... A: ..." pairs on a single line. RE2 has no lookahead,
	// so the match is anchored to one line and answers run to line end.
	inlinePairPattern = regexp.MustCompile(`(?i)(?:q|question|k|klausimas)[ \t]*:[ \t]*(.+?)[ \t]+(?:a|answer|atsakymas)[ \t]*:[ \t]*(.+)`)
)

// minLineScanPairs is the line-scan yield below which the inline rescue pass
// runs as well.
const minLineScanPairs = 5

// ParseQAResponse recovers question/answer pairs from free-form model output.
// An unlabeled line directly after a question is carried over as its answer.
// Pairs missing either half are dropped, never invented.
func ParseQAResponse(content string, chunk int) []types.CandidatePair {
	var pairs []types.CandidatePair

	currentQuestion := ""
	currentAnswer := ""
	flush := func() {
		if currentQuestion != "" && currentAnswer != "" {
			pairs = append(pairs, types.CandidatePair{
				Question: currentQuestion,
				Answer:   currentAnswer,
				Chunk:    chunk,
			})
		}
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if rest, ok := stripLabel(line, questionLabels); ok {
			flush()
			currentQuestion = rest
			currentAnswer = ""
		} else if rest, ok := stripLabel(line, answerLabels); ok {
			currentAnswer = rest
		} else if currentQuestion != "" && currentAnswer == "" {
			// An open question with no labeled answer yet; treat this line
			// as the implicit answer.
			currentAnswer = line
		}
	}
	flush()

	if len(pairs) < minLineScanPairs {
		for _, match := range inlinePairPattern.FindAllStringSubmatch(content, -1) {
			question := strings.TrimSpace(match[1])
			answer := strings.TrimSpace(match[2])
			if question != "" && answer != "" {
				pairs = append(pairs, types.CandidatePair{
					Question: question,
					Answer:   answer,
					Chunk:    chunk,
				})
			}
		}
	}

	return pairs
}

func stripLabel(line string, labels []string) (string, bool) {
	lower := strings.ToLower(line)
	for _, label := range labels {
		if strings.HasPrefix(lower, label) {
			return strings.TrimSpace(line[len(label):]), true
		}
	}
	return "", false
}
