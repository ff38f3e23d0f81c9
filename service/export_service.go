package service

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alzyras/ankicraft/types"
	"github.com/alzyras/ankicraft/utils"
)

// ExportService writes a finished deck as a tab-separated question/answer
// file, the text format Anki imports directly. Binary .apkg packaging is an
// external concern.
type ExportService struct {
	outputDir string
}

func NewExportService(outputDir string) *ExportService {
	if outputDir == "" {
		outputDir = "."
	}
	return &ExportService{outputDir: outputDir}
}

// ExportDeck writes one row per pair and returns the file path.
func (s *ExportService) ExportDeck(deckName string, pairs []types.QAPair) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.outputDir, utils.DeckFileName(deckName))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create deck file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	writer.Comma = '\t'
	for _, pair := range pairs {
		if err := writer.Write([]string{pair.Question, pair.Answer}); err != nil {
			return "", fmt.Errorf("failed to write deck file: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to write deck file: %w", err)
	}

	return path, nil
}
