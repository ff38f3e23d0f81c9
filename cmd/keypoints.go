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
	"github.com/alzyras/ankicraft/utils"
)

// keypointsCmd represents the keypoints command
var keypointsCmd = &cobra.Command{
	Use:   "keypoints",
	Short: "Extract the key facts from a text file",
	Long: `Keypoints lists the most important facts found in a document, one
per line, without turning them into flashcards. Useful for checking what
the generator would consider card-worthy.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		userPrompt, _ := cmd.Flags().GetString("prompt")

		cfg, err := config.Load(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		text, err := utils.ReadTextFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read document: %v", err)
		}

		flashcardService := service.NewFlashcardService(cfg)
		for _, point := range flashcardService.ExtractKeyPoints(cmd.Context(), text, userPrompt) {
			fmt.Println("-", point)
		}
	},
}

func init() {
	rootCmd.AddCommand(keypointsCmd)

	keypointsCmd.Flags().StringP("file", "f", "", "Path to the text file to process")
	keypointsCmd.Flags().StringP("prompt", "p", "", "Extra instruction, e.g. \"extract only dates\"")
	keypointsCmd.MarkFlagRequired("file")
}
