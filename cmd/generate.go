/*
Copyright © 2025 alzyras
*/
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/alzyras/ankicraft/config"
	"github.com/alzyras/ankicraft/service"
	"github.com/alzyras/ankicraft/types"
	"github.com/alzyras/ankicraft/utils"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a flashcard deck from a text file",
	Long: `Generate reads a plain-text document, produces question/answer
flashcards at the requested coverage level and writes them as a
tab-separated file ready for Anki's text import. For example:

  ankicraft generate -f notes.txt --coverage maximum --deck-name "History 101"`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		coverage, _ := cmd.Flags().GetString("coverage")
		target, _ := cmd.Flags().GetInt("target")
		userPrompt, _ := cmd.Flags().GetString("prompt")
		language, _ := cmd.Flags().GetString("language")
		deckName, _ := cmd.Flags().GetString("deck-name")
		outputDir, _ := cmd.Flags().GetString("output-dir")

		cfg, err := config.Load(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		text, err := utils.ReadTextFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read document: %v", err)
		}

		if deckName == "" {
			deckName = "Text - " + utils.BaseNameWithoutExt(filePath)
		}
		if outputDir == "" {
			outputDir = cfg.OutputDir
		}

		flashcardService := service.NewFlashcardService(cfg)
		pairs, err := flashcardService.GenerateFlashcards(cmd.Context(), types.GenerateRequest{
			Text:        text,
			Coverage:    types.CoverageTier(coverage),
			TargetCards: target,
			UserPrompt:  userPrompt,
			Language:    language,
		})
		if err != nil {
			log.Fatalf("Failed to generate flashcards: %v", err)
		}

		exporter := service.NewExportService(outputDir)
		path, err := exporter.ExportDeck(deckName, pairs)
		if err != nil {
			log.Fatalf("Failed to export deck: %v", err)
		}

		fmt.Printf("Generated %d flashcards -> %s\n", len(pairs), path)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("file", "f", "", "Path to the text file to process")
	generateCmd.Flags().StringP("coverage", "c", "medium", "Coverage level: minimal, medium or maximum")
	generateCmd.Flags().IntP("target", "t", 0, "Explicit target card count (overrides coverage)")
	generateCmd.Flags().StringP("prompt", "p", "", "Extra instruction for card generation")
	generateCmd.Flags().StringP("language", "l", "", "ISO 639-1 language override (default: detect)")
	generateCmd.Flags().StringP("deck-name", "n", "", "Name of the generated deck")
	generateCmd.Flags().StringP("output-dir", "o", "", "Directory for the deck file")
	generateCmd.MarkFlagRequired("file")
}
