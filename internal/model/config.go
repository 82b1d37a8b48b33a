// Package model holds the tool configuration shared by the CLI and the
// engine factory.
package model

import (
	"os"
	"path/filepath"
)

// Config is the full tool configuration. The hierarchy is CLI flags over
// environment variables over the config file over these defaults.
type Config struct {
	Engine      EngineConfig      `yaml:"engine"`
	Language    LanguageConfig    `yaml:"language"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// EngineConfig selects and configures the linguistic engine backend.
type EngineConfig struct {
	// Backend: "embedded" (default) or "openai".
	Backend string `yaml:"backend"`

	// UserDict is the learned-word file.
	UserDict string `yaml:"user_dict"`

	// Languages overrides the engine's advertised language tags.
	Languages []string `yaml:"languages,omitempty"`

	// MaxGuesses caps suggestions per misspelling.
	MaxGuesses int `yaml:"max_guesses"`

	OpenAI OpenAIConfig `yaml:"openai"`
}

// OpenAIConfig configures the remote backend.
type OpenAIConfig struct {
	APIKey            string  `yaml:"api_key,omitempty"`
	BaseURL           string  `yaml:"base_url,omitempty"`
	Model             string  `yaml:"model"`
	Timeout           int     `yaml:"timeout"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// LanguageConfig configures language identification for autocorrection.
type LanguageConfig struct {
	// Identifier: "whatlang" (default) or "static".
	Identifier string `yaml:"identifier"`

	// Static is the tag the static identifier reports.
	Static string `yaml:"static,omitempty"`
}

// CacheConfig configures the remote engine's findings cache.
type CacheConfig struct {
	Dir        string `yaml:"dir,omitempty"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// ConcurrencyConfig bounds batch processing.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
}

// DefaultConfig returns the defaults the hierarchy bottoms out on.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Engine: EngineConfig{
			Backend:    "embedded",
			UserDict:   filepath.Join(home, ".textcheck", "learned_words"),
			MaxGuesses: 10,
			OpenAI: OpenAIConfig{
				Model:             "gpt-4o-mini",
				Timeout:           30,
				RequestsPerSecond: 2,
			},
		},
		Language: LanguageConfig{
			Identifier: "whatlang",
		},
		Cache: CacheConfig{
			TTLMinutes: 15,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
	}
}
