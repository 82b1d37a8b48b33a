package checker

import "context"

// SessionID identifies one engine-side checking session. Sessions scope
// transient state (ignore lists, suggestion caches) to a single top-level
// call; they are never shared or reused.
type SessionID int64

// NoSession is passed where an operation runs without session scoping.
const NoSession SessionID = 0

// Range is a (location, length) pair measured in whole characters (runes),
// never bytes. Engines that index differently must convert at their
// boundary so that ranges compare across backends.
type Range struct {
	Location int `json:"location"`
	Length   int `json:"length"`
}

// NotFound is the sentinel an engine returns when no further match exists.
var NotFound = Range{Location: -1}

// Found reports whether the range denotes an actual match.
func (r Range) Found() bool {
	return r.Location >= 0
}

// End returns the first character offset past the range.
func (r Range) End() int {
	return r.Location + r.Length
}

// Kind classifies a unified-check result.
type Kind string

const (
	KindSpelling    Kind = "spelling"
	KindGrammar     Kind = "grammar"
	KindOrthography Kind = "orthography"
	KindDate        Kind = "date"
)

// GrammarDetail carries engine-specific information about a grammar match.
type GrammarDetail struct {
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message,omitempty"`
}

// GrammarMatch is one grammar finding.
type GrammarMatch struct {
	Range  Range          `json:"range"`
	Detail *GrammarDetail `json:"detail,omitempty"`
}

// GuessedMatch pairs a misspelled range with the engine's ranked
// replacement candidates. Guesses may be empty: some words have no viable
// correction, which is a normal outcome.
type GuessedMatch struct {
	Range   Range    `json:"range"`
	Guesses []string `json:"guesses"`
}

// Result is one finding from a unified check. Message and Suggestion are
// filled where the engine provides them; ordering and overlap between
// kinds is defined entirely by the engine.
type Result struct {
	Kind       Kind   `json:"kind"`
	Range      Range  `json:"range"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Engine is the linguistic engine capability this package orchestrates.
// The engine reports one match per call; enumerating a whole text is the
// caller's job. Implementations decide their own tokenization, dictionary
// and rule sets; they must express all offsets in runes.
//
// NextSpellingMatch never wraps past the end of text. NextGrammarMatch
// wraps around to offset 0 once when nothing is found at or after the
// given offset, because grammar matches can span the end of the scanned
// region.
type Engine interface {
	CountWords(text string) int

	OpenSession() (SessionID, error)
	CloseSession(id SessionID)
	SetIgnoredWords(id SessionID, words []string)

	NextSpellingMatch(ctx context.Context, text string, from int, session SessionID) (Range, error)
	NextGrammarMatch(ctx context.Context, text string, from int, session SessionID) (Range, *GrammarDetail, error)
	Guesses(ctx context.Context, rng Range, text string, session SessionID) ([]string, error)
	Correction(ctx context.Context, rng Range, text, language string, session SessionID) (string, error)
	UnifiedCheck(ctx context.Context, text string, full Range, session SessionID) ([]Result, error)

	LearnWord(word string) error
	UnlearnWord(word string) error
	HasLearnedWord(word string) bool

	SupportedLanguageTags() []string
}

// LanguageIdentifier determines the dominant natural language of a text.
// ok is false when no language can be determined with any confidence.
type LanguageIdentifier interface {
	DominantLanguage(text string) (tag string, ok bool)
}
