package service

import (
	"strings"

	"github.com/alzyras/ankicraft/types"
)

// CleanPair trims both halves of a pair and makes sure the question ends
// with a question mark.
func CleanPair(question, answer string) types.QAPair {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)

	if !strings.HasSuffix(question, "?") {
		question = strings.TrimRight(question, ".") + "?"
	}

	return types.QAPair{Question: question, Answer: answer}
}
