package service

import (
	"strings"

	"github.com/alzyras/ankicraft/types"
)

// Deduplication is tier-dependent. Minimal and medium coverage deduplicate on
// exact question match with stricter minimum lengths; maximum coverage trades
// strictness for volume, comparing case-insensitive token overlap so that
// near-rephrasings are still dropped while short answers survive.
const (
	strictMinQuestionLen  = 10
	strictMinAnswerLen    = 5
	lenientMinQuestionLen = 3
	lenientMinAnswerLen   = 2
	lenientMinOverlap     = 2
)

type dedupPolicy struct {
	lenient      bool
	overlapRatio float64

	seenExact  map[string]bool
	seenTokens []map[string]bool
}

func (s *FlashcardService) newDedupPolicy(maximum bool) *dedupPolicy {
	return &dedupPolicy{
		lenient:      maximum,
		overlapRatio: s.cfg.OverlapRatio,
		seenExact:    map[string]bool{},
	}
}

// admit reports whether the pair survives length filtering and duplicate
// detection, recording it when it does. First-seen wins: a later question
// similar to an admitted one is rejected, never the other way around.
func (d *dedupPolicy) admit(pair types.QAPair) bool {
	if !d.lenient {
		if len(pair.Question) <= strictMinQuestionLen || len(pair.Answer) <= strictMinAnswerLen {
			return false
		}
		if d.seenExact[pair.Question] {
			return false
		}
		d.seenExact[pair.Question] = true
		return true
	}

	if len(pair.Question) <= lenientMinQuestionLen || len(pair.Answer) <= lenientMinAnswerLen {
		return false
	}

	tokens := tokenSet(pair.Question)
	threshold := float64(lenientMinOverlap)
	if r := d.overlapRatio * float64(len(tokens)); r > threshold {
		threshold = r
	}
	for _, seen := range d.seenTokens {
		if float64(overlap(tokens, seen)) > threshold {
			return false
		}
	}
	d.seenTokens = append(d.seenTokens, tokens)
	return true
}

func tokenSet(text string) map[string]bool {
	set := map[string]bool{}
	for _, token := range strings.Fields(strings.ToLower(text)) {
		set[token] = true
	}
	return set
}

func overlap(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for token := range a {
		if b[token] {
			count++
		}
	}
	return count
}
