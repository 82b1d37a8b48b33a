package checker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Errors returned by Correct's language-resolution step. All other
// components report absence of a match as an empty result, never as an
// error.
var (
	ErrNoLanguageDetected  = errors.New("no dominant language detected")
	ErrUnsupportedLanguage = errors.New("language not supported by engine")
)

// Correct autocorrects the whole text under the best-matching language
// the engine supports. The returned string is empty when the engine found
// no better alternative, which is a valid outcome and distinct from an
// error. Language resolution happens before any session is opened;
// its failures surface directly to the caller.
func (c *Checker) Correct(ctx context.Context, text string, ignore []string) (string, error) {
	if text == "" {
		return "", nil
	}
	language, err := c.resolveLanguage(text)
	if err != nil {
		return "", err
	}
	var corrected string
	err = c.withSession(ignore, func(id SessionID) error {
		full := Range{Location: 0, Length: utf8.RuneCountInString(text)}
		corrected, err = c.engine.Correction(ctx, full, text, language, id)
		if err != nil {
			return fmt.Errorf("correction: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return corrected, nil
}

// resolveLanguage maps the identified dominant language of text onto the
// engine's supported tag list: exact match first, then the first tag
// containing the detected one as a case-insensitive substring. The latter
// covers engines that advertise region variants ("en-US") for a bare
// detected tag ("en").
func (c *Checker) resolveLanguage(text string) (string, error) {
	if c.langID == nil {
		return "", ErrNoLanguageDetected
	}
	detected, ok := c.langID.DominantLanguage(text)
	if !ok || detected == "" {
		return "", ErrNoLanguageDetected
	}
	supported := c.engine.SupportedLanguageTags()
	for _, tag := range supported {
		if tag == detected {
			return tag, nil
		}
	}
	lower := strings.ToLower(detected)
	for _, tag := range supported {
		if strings.Contains(strings.ToLower(tag), lower) {
			return tag, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, detected)
}
