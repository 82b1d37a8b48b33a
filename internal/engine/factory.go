// Package engine selects a linguistic engine backend from configuration.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/textcheck/internal/engine/embedded"
	"github.com/ppiankov/textcheck/internal/engine/remote"
	"github.com/ppiankov/textcheck/internal/model"
	"github.com/ppiankov/textcheck/pkg/checker"
)

// New creates the engine named by the configuration.
func New(cfg *model.Config) (checker.Engine, error) {
	switch strings.ToLower(cfg.Engine.Backend) {
	case "", "embedded":
		return embedded.New(embedded.Config{
			UserDictPath: cfg.Engine.UserDict,
			LanguageTags: cfg.Engine.Languages,
			MaxGuesses:   cfg.Engine.MaxGuesses,
		})

	case "openai":
		return remote.New(remote.Config{
			APIKey:            cfg.Engine.OpenAI.APIKey,
			BaseURL:           cfg.Engine.OpenAI.BaseURL,
			Model:             cfg.Engine.OpenAI.Model,
			Timeout:           cfg.Engine.OpenAI.Timeout,
			RequestsPerSecond: cfg.Engine.OpenAI.RequestsPerSecond,
			CacheDir:          cfg.Cache.Dir,
			CacheTTL:          time.Duration(cfg.Cache.TTLMinutes) * time.Minute,
			LearnedPath:       cfg.Engine.UserDict,
			LanguageTags:      cfg.Engine.Languages,
		})

	default:
		return nil, fmt.Errorf("unknown engine backend: %s (supported: embedded, openai)", cfg.Engine.Backend)
	}
}
