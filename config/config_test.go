package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // keep a developer's ~/.ankicraft out of the test

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "Generated Flashcards", cfg.DeckName)
	assert.Equal(t, 70000, cfg.Pipeline.MaxChunkSize)
	assert.Equal(t, 10, cfg.Pipeline.PerChunkFloor)
	assert.Equal(t, 0.7, cfg.Pipeline.ShortfallRatio)
	assert.Equal(t, 2*time.Minute, cfg.Pipeline.RequestTimeout)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`ai_provider: local
ai_endpoint: http://localhost:8080/v1
model: test-model
deck_name: My Deck
pipeline:
  max_chunk_size: 1234
  request_timeout: 30s
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.AIProvider)
	assert.Equal(t, "http://localhost:8080/v1", cfg.AIEndpoint)
	assert.Equal(t, "test-model", cfg.Model)
	assert.Equal(t, "My Deck", cfg.DeckName)
	assert.Equal(t, 1234, cfg.Pipeline.MaxChunkSize)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.RequestTimeout)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.7, cfg.Pipeline.ShortfallRatio)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEYS", "key-one, key-two")
	t.Setenv("AI_PROVIDER", "gemini")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, []string{"key-one", "key-two"}, cfg.GeminiAPIKeys)
	assert.Equal(t, "gemini", cfg.AIProvider)
}
