package embedded

import (
	_ "embed"
	"sort"
	"strings"
	"unicode"

	"github.com/sajari/fuzzy"

	"github.com/ppiankov/textcheck/internal/engine/wordlist"
)

//go:embed dict_en_us.txt
var baseDictData string

// newSuggestModel trains a fuzzy model over the combined word set.
// Threshold 1 keeps every trained word suggestible (words are trained
// once each, not frequency-weighted); depth 2 covers transpositions such
// as "goign" -> "going".
func newSuggestModel(words []string) *fuzzy.Model {
	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	model.SetUseAutocomplete(false)
	model.Train(words)
	return model
}

// rankGuesses orders raw model suggestions deterministically: closer
// edits first, longer shared prefix with the misspelling next, then
// alphabetical. The model itself ties equally-distant candidates
// arbitrarily.
func rankGuesses(word string, raw []string) []string {
	guesses := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, g := range raw {
		if g == word {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		guesses = append(guesses, g)
	}
	sort.SliceStable(guesses, func(i, j int) bool {
		a, b := guesses[i], guesses[j]
		da := fuzzy.Levenshtein(&a, &word)
		db := fuzzy.Levenshtein(&b, &word)
		if da != db {
			return da < db
		}
		pa := sharedPrefix(a, word)
		pb := sharedPrefix(b, word)
		if pa != pb {
			return pa > pb
		}
		return a < b
	})
	return guesses
}

func sharedPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// matchCase folds the case pattern of the original token onto a
// lowercase suggestion: all-caps stays all-caps, a capitalized word
// capitalizes the suggestion.
func matchCase(orig, suggestion string) string {
	if orig == "" || suggestion == "" {
		return suggestion
	}
	if isAllUpper(orig) {
		return strings.ToUpper(suggestion)
	}
	first := []rune(orig)[0]
	if unicode.IsUpper(first) {
		rs := []rune(suggestion)
		rs[0] = unicode.ToUpper(rs[0])
		return string(rs)
	}
	return suggestion
}

func isAllUpper(s string) bool {
	upper := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		upper = true
	}
	return upper
}

func baseDict() wordlist.Set {
	return wordlist.Parse(baseDictData)
}
