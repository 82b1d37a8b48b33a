package embedded

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/textcheck/internal/langid"
	"github.com/ppiankov/textcheck/pkg/checker"
)

func newTestChecker(t *testing.T) (*checker.Checker, *Engine) {
	t.Helper()
	eng, err := New(Config{})
	require.NoError(t, err)
	return checker.New(eng, langid.Static{Tag: "en"}), eng
}

func TestSpellingScenario(t *testing.T) {
	c, _ := newTestChecker(t)

	ranges, err := c.CheckSpelling(context.Background(), "Helllo, how's goign", nil)
	require.NoError(t, err)
	assert.Equal(t, []checker.Range{{Location: 0, Length: 6}, {Location: 14, Length: 5}}, ranges)
}

func TestSpellingScenarioWithIgnoreList(t *testing.T) {
	c, _ := newTestChecker(t)

	ranges, err := c.CheckSpelling(context.Background(), "Helllo, how's goign", []string{"helllo"})
	require.NoError(t, err)
	assert.Equal(t, []checker.Range{{Location: 14, Length: 5}}, ranges)
}

func TestGuessScenario(t *testing.T) {
	c, _ := newTestChecker(t)

	matches, err := c.CheckSpellingWithGuesses(context.Background(), "Helllo, how's goign", []string{"helllo"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, checker.Range{Location: 14, Length: 5}, matches[0].Range)
	require.NotEmpty(t, matches[0].Guesses)
	assert.Equal(t, "going", matches[0].Guesses[0])
}

func TestGuessesMatchCase(t *testing.T) {
	eng, err := New(Config{})
	require.NoError(t, err)

	guesses, err := eng.Guesses(context.Background(), checker.Range{Location: 0, Length: 6}, "Helllo there", checker.NoSession)
	require.NoError(t, err)
	require.NotEmpty(t, guesses)
	assert.Equal(t, "Hello", guesses[0], "suggestions keep the original capitalization")
}

func TestGrammarScenario(t *testing.T) {
	c, _ := newTestChecker(t)

	matches, err := c.CheckGrammar(context.Background(), "Me and him was going to the store yesterday.", nil)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, 0, matches[0].Range.Location)
	require.NotNil(t, matches[0].Detail)
	assert.Equal(t, "compound-subject-agreement", matches[0].Detail.Rule)
}

func TestGrammarWrapsOnce(t *testing.T) {
	eng, err := New(Config{})
	require.NoError(t, err)

	text := "Me and him was late. All good after that."
	// Scanning from past the only match wraps to the start and reports it.
	rng, detail, err := eng.NextGrammarMatch(context.Background(), text, 25, checker.NoSession)
	require.NoError(t, err)
	require.True(t, rng.Found())
	assert.Equal(t, 0, rng.Location)
	require.NotNil(t, detail)

	// From offset 0 there is no wrap target; a clean text stays clean.
	rng, _, err = eng.NextGrammarMatch(context.Background(), "All good here.", 0, checker.NoSession)
	require.NoError(t, err)
	assert.False(t, rng.Found())
}

func TestEmptyTextReturnsNothing(t *testing.T) {
	c, _ := newTestChecker(t)
	ctx := context.Background()

	ranges, err := c.CheckSpelling(ctx, "", nil)
	require.NoError(t, err)
	assert.Empty(t, ranges)

	grammar, err := c.CheckGrammar(ctx, "", nil)
	require.NoError(t, err)
	assert.Empty(t, grammar)

	results, err := c.Check(ctx, "", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUnifiedCheckKinds(t *testing.T) {
	c, _ := newTestChecker(t)

	text := "Helllo there. we met on 1/2/2024 and they was happy happy."
	results, err := c.Check(context.Background(), text, nil)
	require.NoError(t, err)

	kinds := make(map[checker.Kind]int)
	for _, r := range results {
		kinds[r.Kind]++
	}
	assert.Positive(t, kinds[checker.KindSpelling], "Helllo should be flagged")
	assert.Positive(t, kinds[checker.KindGrammar], "they was should be flagged")
	assert.Positive(t, kinds[checker.KindOrthography], "lowercase sentence start and repeated word")
	assert.Positive(t, kinds[checker.KindDate], "1/2/2024 should be recognized")

	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Range.Location, results[i].Range.Location, "results are ordered by location")
	}
}

func TestCorrection(t *testing.T) {
	c, _ := newTestChecker(t)

	corrected, err := c.Correct(context.Background(), "goign to the store", nil)
	require.NoError(t, err)
	assert.Equal(t, "going to the store", corrected)
}

func TestCorrectionNoImprovement(t *testing.T) {
	c, _ := newTestChecker(t)

	corrected, err := c.Correct(context.Background(), "going to the store", nil)
	require.NoError(t, err)
	assert.Empty(t, corrected, "clean text yields the no-better-alternative outcome")
}

func TestCorrectionRespectsIgnoreList(t *testing.T) {
	c, _ := newTestChecker(t)

	corrected, err := c.Correct(context.Background(), "goign home", []string{"goign"})
	require.NoError(t, err)
	assert.Empty(t, corrected, "ignored words are not corrected")
}

func TestLearnUnlearnPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "learned_words")
	eng, err := New(Config{UserDictPath: path})
	require.NoError(t, err)
	c := checker.New(eng, langid.Static{Tag: "en"})
	ctx := context.Background()

	text := "the frobnicator hums"
	ranges, err := c.CheckSpelling(ctx, text, nil)
	require.NoError(t, err)
	require.Len(t, ranges, 2, "frobnicator and hums are unknown")

	require.NoError(t, c.LearnWord("frobnicator"))
	require.NoError(t, c.LearnWord("frobnicator"), "learning twice has no additional effect")
	assert.True(t, c.HasLearnedWord("frobnicator"))

	ranges, err = c.CheckSpelling(ctx, text, nil)
	require.NoError(t, err)
	assert.Len(t, ranges, 1, "learned word is no longer flagged")

	// A fresh engine over the same file still knows the word.
	eng2, err := New(Config{UserDictPath: path})
	require.NoError(t, err)
	assert.True(t, eng2.HasLearnedWord("frobnicator"))

	require.NoError(t, c.UnlearnWord("frobnicator"))
	assert.False(t, c.HasLearnedWord("frobnicator"))
	ranges, err = c.CheckSpelling(ctx, text, nil)
	require.NoError(t, err)
	assert.Len(t, ranges, 2, "unlearned word is flagged again")
}

func TestSessionsAreIsolated(t *testing.T) {
	eng, err := New(Config{})
	require.NoError(t, err)
	ctx := context.Background()

	s1, err := eng.OpenSession()
	require.NoError(t, err)
	s2, err := eng.OpenSession()
	require.NoError(t, err)
	require.NotEqual(t, s1, s2, "session ids are never reused")
	eng.SetIgnoredWords(s1, []string{"goign"})

	rng, err := eng.NextSpellingMatch(ctx, "goign", 0, s1)
	require.NoError(t, err)
	assert.False(t, rng.Found(), "ignored in its own session")

	rng, err = eng.NextSpellingMatch(ctx, "goign", 0, s2)
	require.NoError(t, err)
	assert.True(t, rng.Found(), "other sessions are unaffected")

	eng.CloseSession(s1)
	eng.CloseSession(s2)
}

func TestCountWords(t *testing.T) {
	eng, err := New(Config{})
	require.NoError(t, err)

	assert.Equal(t, 3, eng.CountWords("Helllo, how's goign"))
	assert.Equal(t, 0, eng.CountWords("!!! 123 ..."))
}

func TestAcronymsAndSingleLettersAreNotFlagged(t *testing.T) {
	c, _ := newTestChecker(t)

	ranges, err := c.CheckSpelling(context.Background(), "the HTTP x flag", nil)
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestPossessivesCheckAsBaseWord(t *testing.T) {
	c, _ := newTestChecker(t)

	ranges, err := c.CheckSpelling(context.Background(), "the dog's house", nil)
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestSupportedLanguageTags(t *testing.T) {
	eng, err := New(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguageTags, eng.SupportedLanguageTags())

	eng, err = New(Config{LanguageTags: []string{"en-AU"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"en-AU"}, eng.SupportedLanguageTags())
}
