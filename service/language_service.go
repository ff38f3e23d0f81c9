package service

import (
	"log"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

const (
	languageSampleChars     = 2000
	languageSampleSentences = 5
)

// languageProfile holds the distinctive characters and common function words
// used by the heuristic fallback detector. Declaration order is the
// deterministic tie-break for equal scores.
type languageProfile struct {
	code  string
	chars string
	words []string
}

var languageProfiles = []languageProfile{
	{
		code:  "lt",
		chars: "ąčęėįšųūž",
		words: []string{"ir", "yra", "su", "bei", "tai", "kad", "nėra", "arba", "tik", "bet"},
	},
	{
		code:  "en",
		chars: "",
		words: []string{"the", "and", "or", "but", "is", "are", "was", "were", "that", "this"},
	},
	{
		code:  "de",
		chars: "äöüß",
		words: []string{"der", "die", "und", "in", "den", "von", "zu", "das", "mit", "sich"},
	},
	{
		code:  "fr",
		chars: "àâäéèêëïîôöùûüÿç",
		words: []string{"le", "la", "les", "et", "à", "des", "du", "un", "une", "dans"},
	},
	{
		code:  "es",
		chars: "áéíóúüñ¿¡",
		words: []string{"el", "la", "de", "que", "y", "a", "en", "un", "es", "se"},
	},
	{
		code:  "ru",
		chars: "абвгдеёжзийклмнопрстуфхцчшщъыьэюя",
		words: []string{"и", "в", "не", "на", "я", "быть", "то", "он", "с", "а"},
	},
}

var languageNames = map[string]string{
	"en": "English",
	"lt": "Lithuanian",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"ru": "Russian",
}

// LanguageService guesses the dominant natural language of a text sample.
// It is stateless; Identify is a pure function of its input.
type LanguageService struct{}

func NewLanguageService() *LanguageService {
	return &LanguageService{}
}

// Identify returns the ISO 639-1 code of the sample's dominant language,
// defaulting to "en" on empty input or detection failure. Only the first
// few sentences of the sample are inspected.
func (s *LanguageService) Identify(text string) string {
	if strings.TrimSpace(text) == "" {
		return "en"
	}

	sample := truncateRunes(text, languageSampleChars)
	sentences := strings.Split(sample, ".")
	if len(sentences) > languageSampleSentences {
		sample = strings.Join(sentences[:languageSampleSentences], ".") + "."
	}

	info := whatlanggo.Detect(sample)
	if info.IsReliable() {
		if code := info.Lang.Iso6391(); code != "" {
			return code
		}
	}

	log.Printf("Statistical language detection unreliable, using heuristic fallback")
	return s.heuristicIdentify(sample)
}

// heuristicIdentify scores each candidate language by distinctive characters
// (weight 10) plus whole-word matches against its common function words, and
// returns the best scorer, "en" when nothing scores at all.
func (s *LanguageService) heuristicIdentify(sample string) string {
	sample = strings.ToLower(sample)

	// \b is ASCII-only in RE2, so tokenize on any non-letter, non-digit rune
	// instead; this keeps Cyrillic and accented words countable.
	wordCounts := map[string]int{}
	for _, token := range strings.FieldsFunc(sample, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		wordCounts[token]++
	}

	best := "en"
	bestScore := 0
	for _, profile := range languageProfiles {
		score := 0
		for _, ch := range profile.chars {
			score += 10 * strings.Count(sample, string(ch))
		}
		for _, word := range profile.words {
			score += wordCounts[word]
		}
		if score > bestScore {
			best = profile.code
			bestScore = score
		}
	}

	if bestScore == 0 {
		return "en"
	}
	return best
}

// LanguageName maps an ISO 639-1 code to the language name used in prompts.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	if code == "" {
		return "English"
	}
	return strings.ToUpper(code[:1]) + code[1:]
}

func truncateRunes(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
