// Package checker provides a unified interface for spelling, grammar and
// other text checks over a pluggable linguistic engine, plus whole-text
// autocorrection and a learned-word vocabulary.
//
// The engine primitive is "find the next issue from an offset"; this
// package drives it repeatedly to enumerate every issue in a text, scopes
// transient ignore lists to short-lived engine sessions, and resolves
// which language variant to autocorrect under.
package checker

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Checker orchestrates checking calls against an engine and a language
// identifier. It holds no mutable state of its own: concurrent use is
// safe exactly when the underlying engine is safe for concurrent use.
type Checker struct {
	engine Engine
	langID LanguageIdentifier
}

// New creates a checker over the given engine. The language identifier is
// only consulted by Correct; it is injected here rather than read from
// engine-global state so tests can supply a deterministic one.
func New(engine Engine, langID LanguageIdentifier) *Checker {
	return &Checker{
		engine: engine,
		langID: langID,
	}
}

// CountWords reports the engine's word count for the text.
func (c *Checker) CountWords(text string) int {
	if text == "" {
		return 0
	}
	return c.engine.CountWords(text)
}

// CheckSpelling returns the ordered, non-overlapping ranges of misspelled
// words in text. Words in ignore (matched case-insensitively by the
// engine) are skipped for this call only and never persisted. An empty
// result means the text is clean.
func (c *Checker) CheckSpelling(ctx context.Context, text string, ignore []string) ([]Range, error) {
	if text == "" {
		return nil, nil
	}
	// A session only exists to scope the ignore list; a plain spelling
	// scan with nothing to ignore does not need one.
	if len(ignore) == 0 {
		return c.scanSpelling(ctx, text, NoSession)
	}
	var ranges []Range
	err := c.withSession(ignore, func(id SessionID) error {
		var err error
		ranges, err = c.scanSpelling(ctx, text, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ranges, nil
}

// CheckSpellingWithGuesses returns every misspelled range together with
// the engine's ranked replacement candidates for it. Ranges are identical
// to what CheckSpelling would report; a match with no viable corrections
// carries an empty guess list.
func (c *Checker) CheckSpellingWithGuesses(ctx context.Context, text string, ignore []string) ([]GuessedMatch, error) {
	if text == "" {
		return nil, nil
	}
	var matches []GuessedMatch
	// Guesses need a session even with an empty ignore list: the engine's
	// suggestion ranking is only consistent within one.
	err := c.withSession(ignore, func(id SessionID) error {
		ranges, err := c.scanSpelling(ctx, text, id)
		if err != nil {
			return err
		}
		for _, rng := range ranges {
			guesses, err := c.engine.Guesses(ctx, rng, text, id)
			if err != nil {
				return fmt.Errorf("guesses at %d: %w", rng.Location, err)
			}
			matches = append(matches, GuessedMatch{Range: rng, Guesses: guesses})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// CheckGrammar returns the grammar findings in text, earliest first.
// Unlike spelling, the grammar scan wraps around the end of text once,
// since grammar matches can span sentence boundaries crossing it.
func (c *Checker) CheckGrammar(ctx context.Context, text string, ignore []string) ([]GrammarMatch, error) {
	if text == "" {
		return nil, nil
	}
	var matches []GrammarMatch
	err := c.withSession(ignore, func(id SessionID) error {
		var err error
		matches, err = c.scanGrammar(ctx, text, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Check runs every check type the engine supports (spelling, grammar,
// orthography, date recognition) over the whole text in one engine call
// and returns the results exactly as reported. Ordering and overlap
// between result kinds is the engine's to define; nothing is deduplicated
// or merged here.
func (c *Checker) Check(ctx context.Context, text string, ignore []string) ([]Result, error) {
	if text == "" {
		return nil, nil
	}
	var results []Result
	err := c.withSession(ignore, func(id SessionID) error {
		full := Range{Location: 0, Length: utf8.RuneCountInString(text)}
		var err error
		results, err = c.engine.UnifiedCheck(ctx, text, full, id)
		if err != nil {
			return fmt.Errorf("unified check: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// LearnWord adds word to the engine's persistent vocabulary. It takes
// effect for all subsequent checks, across process restarts per the
// engine's own store.
func (c *Checker) LearnWord(word string) error {
	return c.engine.LearnWord(word)
}

// UnlearnWord removes a previously learned word.
func (c *Checker) UnlearnWord(word string) error {
	return c.engine.UnlearnWord(word)
}

// HasLearnedWord reports whether word is in the engine's learned
// vocabulary.
func (c *Checker) HasLearnedWord(word string) bool {
	return c.engine.HasLearnedWord(word)
}
