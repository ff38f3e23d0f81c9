package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadTextFile reads a plain-text document from disk. PDF and URL loading are
// handled by external tooling; the pipeline consumes text only.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	return string(data), nil
}

// DeckFileName turns a deck name into its output file name: lowercased,
// spaces replaced with underscores.
func DeckFileName(deckName string) string {
	name := strings.ToLower(strings.TrimSpace(deckName))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" {
		name = "flashcards"
	}
	return name + ".txt"
}

// BaseNameWithoutExt extracts the file name without directory or extension.
func BaseNameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
