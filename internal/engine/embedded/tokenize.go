package embedded

import (
	"unicode"

	"github.com/ppiankov/textcheck/pkg/checker"
)

// token is one word occurrence with its rune range.
type token struct {
	rng  checker.Range
	word string
}

// nextToken scans runes for the first word at or after rune offset from.
// A word is a run of letters; an apostrophe joins two letter runs into
// one token ("how's"), so contractions check as a single dictionary
// entry.
func nextToken(runes []rune, from int) (token, bool) {
	n := len(runes)
	i := from
	if i < 0 {
		i = 0
	}
	for i < n {
		if !unicode.IsLetter(runes[i]) {
			i++
			continue
		}
		start := i
		for i < n {
			r := runes[i]
			if unicode.IsLetter(r) {
				i++
				continue
			}
			if isApostrophe(r) && i+1 < n && unicode.IsLetter(runes[i+1]) && i > start {
				i += 2
				continue
			}
			break
		}
		return token{
			rng:  checker.Range{Location: start, Length: i - start},
			word: string(runes[start:i]),
		}, true
	}
	return token{}, false
}

// tokens returns every word token in runes, in order.
func tokens(runes []rune) []token {
	var out []token
	cursor := 0
	for {
		tok, ok := nextToken(runes, cursor)
		if !ok {
			return out
		}
		out = append(out, tok)
		cursor = tok.rng.End()
	}
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}
