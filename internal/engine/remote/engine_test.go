package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/textcheck/pkg/checker"
)

// newChatServer serves a fixed assistant message for every chat
// completion request and counts the calls.
func newChatServer(t *testing.T, content string, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newTestEngine(t *testing.T, server *httptest.Server) *Engine {
	t.Helper()
	eng, err := New(Config{APIKey: "test-key", BaseURL: server.URL, Model: "test-model"})
	require.NoError(t, err)
	return eng
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestFindingsServedFromOneAnalysisCall(t *testing.T) {
	analysis := `[
		{"text": "Helllo", "kind": "spelling", "suggestions": ["Hello"]},
		{"text": "goign", "kind": "spelling", "suggestions": ["going"]},
		{"text": "they was", "kind": "grammar", "message": "plural pronoun takes a plural verb"}
	]`
	var calls atomic.Int64
	server := newChatServer(t, analysis, &calls)
	defer server.Close()
	eng := newTestEngine(t, server)
	ctx := context.Background()

	text := "Helllo, goign out. they was late"

	rng, err := eng.NextSpellingMatch(ctx, text, 0, checker.NoSession)
	require.NoError(t, err)
	assert.Equal(t, checker.Range{Location: 0, Length: 6}, rng)

	rng, err = eng.NextSpellingMatch(ctx, text, rng.End(), checker.NoSession)
	require.NoError(t, err)
	assert.Equal(t, checker.Range{Location: 8, Length: 5}, rng)

	guesses, err := eng.Guesses(ctx, rng, text, checker.NoSession)
	require.NoError(t, err)
	assert.Equal(t, []string{"going"}, guesses)

	grng, detail, err := eng.NextGrammarMatch(ctx, text, 0, checker.NoSession)
	require.NoError(t, err)
	assert.Equal(t, checker.Range{Location: 19, Length: 8}, grng)
	require.NotNil(t, detail)
	assert.Equal(t, "plural pronoun takes a plural verb", detail.Message)

	// Past the only grammar finding the search wraps to it once.
	grng, _, err = eng.NextGrammarMatch(ctx, text, 30, checker.NoSession)
	require.NoError(t, err)
	assert.Equal(t, 19, grng.Location)

	results, err := eng.UnifiedCheck(ctx, text, checker.Range{Location: 0, Length: len([]rune(text))}, checker.NoSession)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	assert.Equal(t, int64(1), calls.Load(), "every primitive replays the cached analysis")
}

func TestFindingsNoIssues(t *testing.T) {
	var calls atomic.Int64
	server := newChatServer(t, "[]", &calls)
	defer server.Close()
	eng := newTestEngine(t, server)

	rng, err := eng.NextSpellingMatch(context.Background(), "All clean.", 0, checker.NoSession)
	require.NoError(t, err)
	assert.False(t, rng.Found())
}

func TestCorrection(t *testing.T) {
	var calls atomic.Int64
	server := newChatServer(t, "going to the store", &calls)
	defer server.Close()
	eng := newTestEngine(t, server)

	text := "goign to the store"
	full := checker.Range{Location: 0, Length: len([]rune(text))}
	corrected, err := eng.Correction(context.Background(), full, text, "en-US", checker.NoSession)
	require.NoError(t, err)
	assert.Equal(t, "going to the store", corrected)
}

func TestCorrectionUnchangedMeansNoImprovement(t *testing.T) {
	var calls atomic.Int64
	server := newChatServer(t, "going to the store", &calls)
	defer server.Close()
	eng := newTestEngine(t, server)

	text := "going to the store"
	full := checker.Range{Location: 0, Length: len([]rune(text))}
	corrected, err := eng.Correction(context.Background(), full, text, "en-US", checker.NoSession)
	require.NoError(t, err)
	assert.Empty(t, corrected)
}

func TestSessionIgnoreChangesCacheKey(t *testing.T) {
	var calls atomic.Int64
	server := newChatServer(t, "[]", &calls)
	defer server.Close()
	eng := newTestEngine(t, server)
	ctx := context.Background()

	_, err := eng.NextSpellingMatch(ctx, "some text", 0, checker.NoSession)
	require.NoError(t, err)

	id, err := eng.OpenSession()
	require.NoError(t, err)
	defer eng.CloseSession(id)
	eng.SetIgnoredWords(id, []string{"some"})

	_, err = eng.NextSpellingMatch(ctx, "some text", 0, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load(), "a different ignore list is a different analysis")

	_, err = eng.NextSpellingMatch(ctx, "some text", 0, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load(), "repeat lookups hit the cache")
}

func TestParseItemsToleratesCodeFence(t *testing.T) {
	fenced := "```json\n[{\"text\": \"teh\", \"kind\": \"spelling\"}]\n```"
	items, err := parseItems(fenced)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "teh", items[0].Text)

	_, err = parseItems("not json at all")
	require.Error(t, err)
}

func TestLocateResolvesRepeatsInOrderAndRuneOffsets(t *testing.T) {
	text := "café teh and teh again"
	items := []analysisItem{
		{Text: "teh", Kind: "spelling"},
		{Text: "teh", Kind: "spelling"},
		{Text: "ghost", Kind: "spelling"},
	}
	findings := locate(text, items)
	require.Len(t, findings, 2, "unlocatable items are dropped")
	assert.Equal(t, checker.Range{Location: 5, Length: 3}, findings[0].Result.Range, "offsets count runes, not bytes")
	assert.Equal(t, checker.Range{Location: 13, Length: 3}, findings[1].Result.Range)
}

func TestVocabulary(t *testing.T) {
	var calls atomic.Int64
	server := newChatServer(t, "[]", &calls)
	defer server.Close()
	eng := newTestEngine(t, server)

	require.NoError(t, eng.LearnWord("Frobnicator"))
	assert.True(t, eng.HasLearnedWord("frobnicator"), "learned words are case-folded")
	require.NoError(t, eng.UnlearnWord("frobnicator"))
	assert.False(t, eng.HasLearnedWord("frobnicator"))
}
