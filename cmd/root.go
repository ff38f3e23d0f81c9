/*
Copyright © 2025 alzyras
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ankicraft",
	Short: "Turn documents into spaced-repetition flashcards",
	Long: `Ankicraft converts plain-text documents into question/answer
flashcards packaged for import into a spaced-repetition tool.

The pipeline detects the document language, splits long texts into
model-sized chunks, asks the configured AI provider for Q&A pairs per
chunk (falling back to local heuristic extraction when no provider is
available), deduplicates the results and writes an importable deck file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ankicraft.yaml)")
}
