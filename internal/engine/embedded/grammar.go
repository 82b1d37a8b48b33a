package embedded

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/textcheck/pkg/checker"
)

// grammarRule is one pattern in the rule table. Patterns run over the
// whole text; match offsets are converted from bytes to runes before
// they leave the engine.
type grammarRule struct {
	name    string
	pattern *regexp.Regexp
	message string
}

var grammarRules = []grammarRule{
	{
		name:    "compound-subject-agreement",
		pattern: regexp.MustCompile(`(?i)\b(?:me and (?:him|her|them)|(?:him|her|them) and me)(?: \w+){0,2}? (?:was|is|has)\b`),
		message: "compound subject takes a plural verb",
	},
	{
		name:    "pronoun-verb-agreement",
		pattern: regexp.MustCompile(`(?i)\b(?:they|we|you) (?:was|is|has)\b`),
		message: "plural pronoun takes a plural verb",
	},
	{
		name:    "double-negative",
		pattern: regexp.MustCompile(`(?i)\b(?:don't|doesn't|didn't|can't|couldn't|won't|wouldn't) (?:no|nothing|nobody|nowhere|never)\b`),
		message: "double negative",
	},
	{
		name:    "modal-of",
		pattern: regexp.MustCompile(`(?i)\b(?:could|would|should|must|might) of\b`),
		message: `"of" after a modal verb; use "have"`,
	},
	{
		name:    "article-agreement",
		pattern: regexp.MustCompile(`(?i)\ban [bcdfghjklmnpqrstvwxz][a-z]*\b`),
		message: `"an" before a consonant sound`,
	},
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`),
	regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december) \d{1,2}(?:st|nd|rd|th)?(?:, \d{4})?\b`),
}

// grammarMatchAt returns the earliest rule match whose start is at or
// after byte offset fromByte. Ties at the same offset resolve in rule
// table order.
func grammarMatchAt(text string, fromByte int) (start, end int, rule *grammarRule) {
	best := -1
	for i := range grammarRules {
		loc := grammarRules[i].pattern.FindStringIndex(text[fromByte:])
		if loc == nil {
			continue
		}
		s, e := fromByte+loc[0], fromByte+loc[1]
		if best == -1 || s < best {
			best, end, rule = s, e, &grammarRules[i]
		}
	}
	if best == -1 {
		return 0, 0, nil
	}
	return best, end, rule
}

// byteToRune converts a byte offset in text to a rune offset.
func byteToRune(text string, byteOff int) int {
	return utf8.RuneCountInString(text[:byteOff])
}

// runeToByte converts a rune offset in text to a byte offset.
func runeToByte(text string, runeOff int) int {
	count := 0
	for i := range text {
		if count == runeOff {
			return i
		}
		count++
	}
	return len(text)
}

func byteSpanToRange(text string, start, end int) checker.Range {
	loc := byteToRune(text, start)
	return checker.Range{Location: loc, Length: byteToRune(text, end) - loc}
}

// grammarResults collects every rule match in text, in offset order.
func grammarResults(text string) []checker.Result {
	var out []checker.Result
	fromByte := 0
	for fromByte < len(text) {
		start, end, rule := grammarMatchAt(text, fromByte)
		if rule == nil {
			break
		}
		out = append(out, checker.Result{
			Kind:    checker.KindGrammar,
			Range:   byteSpanToRange(text, start, end),
			Message: rule.message,
		})
		if end <= fromByte {
			end = fromByte + 1
		}
		fromByte = end
	}
	return out
}

// dateResults reports recognized date expressions.
func dateResults(text string) []checker.Result {
	var out []checker.Result
	for _, pattern := range datePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			out = append(out, checker.Result{
				Kind:    checker.KindDate,
				Range:   byteSpanToRange(text, loc[0], loc[1]),
				Message: "recognized date",
			})
		}
	}
	return out
}

var sentenceStart = regexp.MustCompile(`[.!?]\s+\p{Ll}`)

// orthographyResults reports repeated words and sentences that start
// lowercase.
func orthographyResults(text string, toks []token) []checker.Result {
	var out []checker.Result

	runes := []rune(text)
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1], toks[i]
		if !strings.EqualFold(prev.word, cur.word) {
			continue
		}
		if !onlySpaceBetween(runes, prev.rng.End(), cur.rng.Location) {
			continue
		}
		out = append(out, checker.Result{
			Kind:    checker.KindOrthography,
			Range:   cur.rng,
			Message: "repeated word",
		})
	}

	for _, loc := range sentenceStart.FindAllStringIndex(text, -1) {
		// The lowercase letter is the last rune of the match.
		_, size := utf8.DecodeLastRuneInString(text[loc[0]:loc[1]])
		letter := byteToRune(text, loc[1]-size)
		if tok, ok := nextToken(runes, letter); ok && tok.rng.Location == letter {
			out = append(out, checker.Result{
				Kind:       checker.KindOrthography,
				Range:      tok.rng,
				Message:    "sentence should start with a capital letter",
				Suggestion: capitalize(tok.word),
			})
		}
	}
	return out
}

func onlySpaceBetween(runes []rune, from, to int) bool {
	for i := from; i < to; i++ {
		if !unicode.IsSpace(runes[i]) {
			return false
		}
	}
	return true
}

func capitalize(word string) string {
	rs := []rune(word)
	if len(rs) == 0 {
		return word
	}
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}
