// Package langid provides LanguageIdentifier backends: trigram-based
// detection for production and a static identifier for deterministic
// tests and forced-language runs.
package langid

import (
	"fmt"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/ppiankov/textcheck/pkg/checker"
)

// New selects an identifier by name: "whatlang" (default) or "static".
// The static identifier requires a tag.
func New(name, staticTag string) (checker.LanguageIdentifier, error) {
	switch strings.ToLower(name) {
	case "", "whatlang":
		return Whatlang{}, nil
	case "static":
		if staticTag == "" {
			return nil, fmt.Errorf("static language identifier needs a tag")
		}
		return Static{Tag: staticTag}, nil
	default:
		return nil, fmt.Errorf("unknown language identifier: %s (supported: whatlang, static)", name)
	}
}

// Whatlang identifies the dominant language with whatlanggo's trigram
// profiles and reports it as an ISO 639-1 tag where one exists.
type Whatlang struct{}

// DominantLanguage implements checker.LanguageIdentifier.
func (Whatlang) DominantLanguage(text string) (string, bool) {
	info := whatlanggo.Detect(text)
	if info.Lang == -1 {
		return "", false
	}
	tag := info.Lang.Iso6391()
	if tag == "" {
		tag = whatlanggo.LangToString(info.Lang)
	}
	if tag == "" {
		return "", false
	}
	return tag, true
}

// Static always reports a fixed tag. Empty text still reports no
// language, matching the contract that nothing dominates nothing.
type Static struct {
	Tag string
}

// DominantLanguage implements checker.LanguageIdentifier.
func (s Static) DominantLanguage(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return s.Tag, true
}
