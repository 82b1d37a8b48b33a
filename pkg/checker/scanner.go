package checker

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"
)

// scanSpelling enumerates all misspelled ranges by repeatedly asking the
// engine for the next match at or after a cursor. The engine reports one
// match per call and never wraps for spelling, so the loop ends at the
// first not-found result.
func (c *Checker) scanSpelling(ctx context.Context, text string, session SessionID) ([]Range, error) {
	length := utf8.RuneCountInString(text)
	var ranges []Range
	cursor := 0
	for cursor < length {
		rng, err := c.engine.NextSpellingMatch(ctx, text, cursor, session)
		if err != nil {
			return nil, fmt.Errorf("next spelling match from %d: %w", cursor, err)
		}
		if !rng.Found() {
			break
		}
		ranges = append(ranges, rng)
		cursor = advance(cursor, rng)
	}
	return ranges, nil
}

// scanGrammar is the grammar variant of the scan loop. The engine wraps
// to offset 0 once when nothing is found at or after the cursor; a
// wrapped result is recognized by its location being below the cursor and
// is taken at most once before the scan stops, which bounds the loop.
func (c *Checker) scanGrammar(ctx context.Context, text string, session SessionID) ([]GrammarMatch, error) {
	length := utf8.RuneCountInString(text)
	var matches []GrammarMatch
	cursor := 0
	for cursor < length {
		rng, detail, err := c.engine.NextGrammarMatch(ctx, text, cursor, session)
		if err != nil {
			return nil, fmt.Errorf("next grammar match from %d: %w", cursor, err)
		}
		if !rng.Found() {
			break
		}
		if rng.Location < cursor {
			if !containsRange(matches, rng) {
				matches = append(matches, GrammarMatch{Range: rng, Detail: detail})
			}
			break
		}
		matches = append(matches, GrammarMatch{Range: rng, Detail: detail})
		cursor = advance(cursor, rng)
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Range.Location < matches[j].Range.Location
	})
	return matches, nil
}

// advance moves the cursor past a match. The engine does not guarantee
// forward progress on zero-length ranges, so the cursor steps past a
// degenerate match and always moves by at least one.
func advance(cursor int, rng Range) int {
	next := rng.End()
	if rng.Length == 0 {
		next = rng.Location + 1
	}
	if next <= cursor {
		return cursor + 1
	}
	return next
}

func containsRange(matches []GrammarMatch, rng Range) bool {
	for _, m := range matches {
		if m.Range == rng {
			return true
		}
	}
	return false
}
