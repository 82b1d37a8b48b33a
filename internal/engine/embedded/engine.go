// Package embedded implements the linguistic engine capability in pure
// Go: an embedded base dictionary plus a persistent learned-word file,
// fuzzy-match suggestions, and rule-table grammar, orthography and date
// detection. It is the default backend.
package embedded

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sajari/fuzzy"

	"github.com/ppiankov/textcheck/internal/engine/wordlist"
	"github.com/ppiankov/textcheck/pkg/checker"
)

// DefaultLanguageTags are advertised when the config names none. The
// base dictionary is US English; the GB variant shares it.
var DefaultLanguageTags = []string{"en-US", "en-GB"}

// Config configures the embedded engine.
type Config struct {
	// UserDictPath is where learned words persist, one per line. Empty
	// disables persistence; learning still works for the process
	// lifetime.
	UserDictPath string

	// LanguageTags overrides the advertised language tags.
	LanguageTags []string

	// MaxGuesses caps ranked suggestions per misspelling. Zero means 10.
	MaxGuesses int
}

var _ checker.Engine = (*Engine)(nil)

// Engine is a pure-Go linguistic engine. It is safe for concurrent use.
type Engine struct {
	cfg Config

	mu       sync.RWMutex
	base     wordlist.Set
	user     wordlist.Set
	model    *fuzzy.Model
	sessions map[checker.SessionID]wordlist.Set
	lastID   checker.SessionID
}

// New opens the embedded engine, loading the learned-word file if one is
// configured.
func New(cfg Config) (*Engine, error) {
	if cfg.MaxGuesses <= 0 {
		cfg.MaxGuesses = 10
	}
	if len(cfg.LanguageTags) == 0 {
		cfg.LanguageTags = DefaultLanguageTags
	}
	base := baseDict()
	user := make(wordlist.Set)
	if cfg.UserDictPath != "" {
		var err error
		user, err = wordlist.Load(cfg.UserDictPath)
		if err != nil {
			return nil, fmt.Errorf("open user dictionary: %w", err)
		}
	}
	words := base.Words()
	words = append(words, user.Words()...)
	return &Engine{
		cfg:      cfg,
		base:     base,
		user:     user,
		model:    newSuggestModel(words),
		sessions: make(map[checker.SessionID]wordlist.Set),
	}, nil
}

// CountWords returns the number of word tokens in text.
func (e *Engine) CountWords(text string) int {
	return len(tokens([]rune(text)))
}

// OpenSession allocates a fresh session id.
func (e *Engine) OpenSession() (checker.SessionID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastID++
	id := e.lastID
	e.sessions[id] = nil
	return id, nil
}

// CloseSession releases the session and its ignore list.
func (e *Engine) CloseSession(id checker.SessionID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, id)
}

// SetIgnoredWords installs the session's transient ignore list. Matching
// is case-insensitive; nothing is persisted.
func (e *Engine) SetIgnoredWords(id checker.SessionID, words []string) {
	set := wordlist.New(words...)
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[id]; ok {
		e.sessions[id] = set
	}
}

// NextSpellingMatch returns the range of the first unknown word at or
// after rune offset from, or the not-found sentinel. It never wraps.
func (e *Engine) NextSpellingMatch(_ context.Context, text string, from int, session checker.SessionID) (checker.Range, error) {
	runes := []rune(text)
	e.mu.RLock()
	defer e.mu.RUnlock()
	cursor := from
	for {
		tok, ok := nextToken(runes, cursor)
		if !ok {
			return checker.NotFound, nil
		}
		if e.misspelledLocked(tok.word, session) {
			return tok.rng, nil
		}
		cursor = tok.rng.End()
	}
}

// misspelledLocked reports whether word is unknown. Single letters and
// all-caps tokens (acronyms) are never flagged. Callers hold e.mu.
func (e *Engine) misspelledLocked(word string, session checker.SessionID) bool {
	runes := []rune(word)
	if len(runes) <= 1 {
		return false
	}
	if isAllUpper(word) {
		return false
	}
	lower := strings.ToLower(word)
	if e.base.Has(lower) || e.user.Has(lower) {
		return false
	}
	// A possessive checks as its base word.
	if base, ok := strings.CutSuffix(lower, "'s"); ok && (e.base.Has(base) || e.user.Has(base)) {
		return false
	}
	if ignore := e.sessions[session]; ignore.Has(lower) {
		return false
	}
	return true
}

// NextGrammarMatch returns the first grammar-rule match at or after rune
// offset from. When nothing matches between from and the end of text and
// from is past the start, the search wraps to offset 0 once, because
// grammar structures can span the end of the scanned region.
func (e *Engine) NextGrammarMatch(_ context.Context, text string, from int, _ checker.SessionID) (checker.Range, *checker.GrammarDetail, error) {
	fromByte := runeToByte(text, from)
	start, end, rule := grammarMatchAt(text, fromByte)
	if rule == nil && from > 0 {
		start, end, rule = grammarMatchAt(text, 0)
	}
	if rule == nil {
		return checker.NotFound, nil, nil
	}
	return byteSpanToRange(text, start, end), &checker.GrammarDetail{
		Rule:    rule.name,
		Message: rule.message,
	}, nil
}

// Guesses returns ranked replacement candidates for the word covered by
// rng, case-matched to the original token. An empty list means the word
// has no viable corrections.
func (e *Engine) Guesses(_ context.Context, rng checker.Range, text string, _ checker.SessionID) ([]string, error) {
	runes := []rune(text)
	if !rng.Found() || rng.Location >= len(runes) || rng.End() > len(runes) {
		return nil, nil
	}
	orig := string(runes[rng.Location:rng.End()])
	lower := strings.ToLower(orig)

	e.mu.RLock()
	raw := e.model.SpellCheckSuggestions(lower, e.cfg.MaxGuesses)
	e.mu.RUnlock()

	guesses := rankGuesses(lower, raw)
	for i, g := range guesses {
		guesses[i] = matchCase(orig, g)
	}
	return guesses, nil
}

// Correction rewrites the text covered by rng, replacing each unknown
// word with its top-ranked guess. The empty string means no better
// alternative was found, which is a valid outcome.
func (e *Engine) Correction(_ context.Context, rng checker.Range, text, _ string, session checker.SessionID) (string, error) {
	runes := []rune(text)
	if !rng.Found() || rng.Location >= len(runes) || rng.End() > len(runes) {
		return "", nil
	}
	span := runes[rng.Location:rng.End()]

	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []rune
	changed := false
	cursor := 0
	for {
		tok, ok := nextToken(span, cursor)
		if !ok {
			out = append(out, span[cursor:]...)
			break
		}
		out = append(out, span[cursor:tok.rng.Location]...)
		replacement := tok.word
		if e.misspelledLocked(tok.word, session) {
			lower := strings.ToLower(tok.word)
			if raw := rankGuesses(lower, e.model.SpellCheckSuggestions(lower, e.cfg.MaxGuesses)); len(raw) > 0 {
				replacement = matchCase(tok.word, raw[0])
				changed = true
			}
		}
		out = append(out, []rune(replacement)...)
		cursor = tok.rng.End()
	}
	if !changed {
		return "", nil
	}
	return string(out), nil
}

// UnifiedCheck runs every check type over the portion of text covered by
// full and returns the findings ordered by location. Overlap between
// kinds is reported as is.
func (e *Engine) UnifiedCheck(ctx context.Context, text string, full checker.Range, session checker.SessionID) ([]checker.Result, error) {
	runes := []rune(text)
	var results []checker.Result

	cursor := full.Location
	for {
		rng, err := e.NextSpellingMatch(ctx, text, cursor, session)
		if err != nil {
			return nil, err
		}
		if !rng.Found() || rng.End() > full.End() {
			break
		}
		results = append(results, checker.Result{Kind: checker.KindSpelling, Range: rng})
		cursor = rng.End()
	}

	results = append(results, grammarResults(text)...)
	results = append(results, orthographyResults(text, tokens(runes))...)
	results = append(results, dateResults(text)...)

	clipped := results[:0]
	for _, r := range results {
		if r.Range.Location >= full.Location && r.Range.End() <= full.End() {
			clipped = append(clipped, r)
		}
	}
	results = clipped

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Range.Location != results[j].Range.Location {
			return results[i].Range.Location < results[j].Range.Location
		}
		return results[i].Kind < results[j].Kind
	})
	return results, nil
}

// LearnWord adds word to the persistent user dictionary and the
// suggestion model.
func (e *Engine) LearnWord(word string) error {
	lower := strings.ToLower(strings.TrimSpace(word))
	if lower == "" {
		return nil
	}
	e.mu.Lock()
	if e.user.Has(lower) {
		e.mu.Unlock()
		return nil
	}
	e.user.Add(lower)
	e.model.TrainWord(lower)
	e.mu.Unlock()
	return e.saveUser()
}

// UnlearnWord removes a learned word. The suggestion model keeps its
// trained entry until the next process start; the word is still flagged
// again because known-word checks go through the dictionaries.
func (e *Engine) UnlearnWord(word string) error {
	lower := strings.ToLower(strings.TrimSpace(word))
	e.mu.Lock()
	if !e.user.Has(lower) {
		e.mu.Unlock()
		return nil
	}
	e.user.Delete(lower)
	e.mu.Unlock()
	return e.saveUser()
}

// HasLearnedWord reports whether word is in the user dictionary.
func (e *Engine) HasLearnedWord(word string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.user.Has(word)
}

// SupportedLanguageTags returns the configured language tags.
func (e *Engine) SupportedLanguageTags() []string {
	tags := make([]string, len(e.cfg.LanguageTags))
	copy(tags, e.cfg.LanguageTags)
	return tags
}

func (e *Engine) saveUser() error {
	if e.cfg.UserDictPath == "" {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := wordlist.Save(e.cfg.UserDictPath, e.user); err != nil {
		return fmt.Errorf("save user dictionary: %w", err)
	}
	return nil
}
