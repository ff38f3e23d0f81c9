package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzyras/ankicraft/types"
)

func TestExportDeck(t *testing.T) {
	dir := t.TempDir()
	svc := NewExportService(dir)

	path, err := svc.ExportDeck("History - Plymouth", []types.QAPair{
		{Question: "When was the colony founded?", Answer: "In 1620"},
		{Question: "Who led the settlers?", Answer: "William Bradford"},
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "history_-_plymouth.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"When was the colony founded?\tIn 1620\nWho led the settlers?\tWilliam Bradford\n",
		string(data))
}

func TestExportDeckCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "decks", "out")
	svc := NewExportService(dir)

	path, err := svc.ExportDeck("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "flashcards.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}
