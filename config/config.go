package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AIProvider    string   `mapstructure:"ai_provider"` // "openai", "local", "gemini" or "none"
	AIEndpoint    string   `mapstructure:"ai_endpoint"` // OpenAI-compatible server for the "local" provider
	Model         string   `mapstructure:"model"`
	OpenAIAPIKey  string   `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKeys []string `mapstructure:"gemini_api_keys"`
	DeckName      string   `mapstructure:"deck_name"`
	OutputDir     string   `mapstructure:"output_dir"`

	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// PipelineConfig holds the tunable pipeline constants. They are configuration
// rather than literals because none of them has a documented derivation.
type PipelineConfig struct {
	MaxChunkSize        int           `mapstructure:"max_chunk_size"`        // character budget per generation request
	PerChunkFloor       int           `mapstructure:"per_chunk_floor"`       // minimum questions requested per chunk
	MaxCoverageFloor    int           `mapstructure:"max_coverage_floor"`    // per-chunk floor in maximum coverage
	ShortfallRatio      float64       `mapstructure:"shortfall_ratio"`       // supplement below this fraction of target
	MaxShortfallRatio   float64       `mapstructure:"max_shortfall_ratio"`   // maximum-coverage supplement threshold
	OverlapRatio        float64       `mapstructure:"overlap_ratio"`         // lenient-dedup token overlap fraction
	SupplementCap       int           `mapstructure:"supplement_cap"`        // most cards requested in one supplement pass
	MaxConcurrentChunks int           `mapstructure:"max_concurrent_chunks"` // parallel generation calls
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`       // per generation call
	LanguageSampleSize  int           `mapstructure:"language_sample_size"`  // characters fed to language detection
}

func Default() *Config {
	return &Config{
		AIProvider: "openai",
		AIEndpoint: "http://localhost:1234/v1",
		Model:      "gpt-4o-mini",
		DeckName:   "Generated Flashcards",
		OutputDir:  ".",
		Pipeline: PipelineConfig{
			MaxChunkSize:        70000,
			PerChunkFloor:       10,
			MaxCoverageFloor:    30,
			ShortfallRatio:      0.7,
			MaxShortfallRatio:   0.8,
			OverlapRatio:        0.5,
			SupplementCap:       50,
			MaxConcurrentChunks: 4,
			RequestTimeout:      2 * time.Minute,
			LanguageSampleSize:  5000,
		},
	}
}

// Load builds the process-wide configuration from defaults, an optional YAML
// config file and the environment. The result is passed by reference into
// service constructors; there is no package-level settings object.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("ai_provider", def.AIProvider)
	v.SetDefault("ai_endpoint", def.AIEndpoint)
	v.SetDefault("model", def.Model)
	v.SetDefault("deck_name", def.DeckName)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("pipeline.max_chunk_size", def.Pipeline.MaxChunkSize)
	v.SetDefault("pipeline.per_chunk_floor", def.Pipeline.PerChunkFloor)
	v.SetDefault("pipeline.max_coverage_floor", def.Pipeline.MaxCoverageFloor)
	v.SetDefault("pipeline.shortfall_ratio", def.Pipeline.ShortfallRatio)
	v.SetDefault("pipeline.max_shortfall_ratio", def.Pipeline.MaxShortfallRatio)
	v.SetDefault("pipeline.overlap_ratio", def.Pipeline.OverlapRatio)
	v.SetDefault("pipeline.supplement_cap", def.Pipeline.SupplementCap)
	v.SetDefault("pipeline.max_concurrent_chunks", def.Pipeline.MaxConcurrentChunks)
	v.SetDefault("pipeline.request_timeout", def.Pipeline.RequestTimeout)
	v.SetDefault("pipeline.language_sample_size", def.Pipeline.LanguageSampleSize)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigType("yaml")
		v.SetConfigName(".ankicraft")
		// A missing home config is fine; defaults and env apply.
		_ = v.ReadInConfig()
	}

	v.AutomaticEnv()
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("gemini_api_keys", "GEMINI_API_KEYS")
	v.BindEnv("ai_provider", "AI_PROVIDER")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Unmarshal can miss env-only keys, so pull the credentials explicitly.
	if config.OpenAIAPIKey == "" {
		config.OpenAIAPIKey = v.GetString("OPENAI_API_KEY")
	}
	// GEMINI_API_KEYS arrives as one comma-separated env value. GetString
	// yields "" for a YAML list, so file-based keys pass through untouched.
	if keys := v.GetString("gemini_api_keys"); keys != "" {
		config.GeminiAPIKeys = splitKeys(keys)
	}

	return &config, nil
}

func splitKeys(s string) []string {
	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
