// Package remote implements the linguistic engine capability over an
// OpenAI-compatible chat completions API. One analysis call per text is
// made and cached; the single-match engine primitives are served from
// the cached findings.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/ppiankov/textcheck/internal/cache"
	"github.com/ppiankov/textcheck/internal/engine/wordlist"
	"github.com/ppiankov/textcheck/pkg/checker"
)

// Config holds remote engine configuration.
type Config struct {
	// APIKey authenticates against the API. Required.
	APIKey string

	// BaseURL overrides the API endpoint, for self-hosted gateways and
	// tests.
	BaseURL string

	// Model is the chat model to use. Empty selects gpt-4o-mini.
	Model string

	// Timeout bounds one API call, in seconds. Zero means 30.
	Timeout int

	// RequestsPerSecond throttles API calls. Zero disables throttling.
	RequestsPerSecond float64

	// CacheDir enables a disk layer under the in-memory findings cache.
	CacheDir string

	// CacheTTL bounds cached findings. Zero means 15 minutes.
	CacheTTL time.Duration

	// LearnedPath persists learned words, one per line.
	LearnedPath string

	// LanguageTags overrides the advertised language tags.
	LanguageTags []string
}

// finding is one located analysis result plus its ranked suggestions.
type finding struct {
	Result      checker.Result `json:"result"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// Engine checks text through a chat completions API. It is safe for
// concurrent use.
type Engine struct {
	cfg     Config
	client  *openai.Client
	limiter *rate.Limiter
	store   cache.Cache

	mu       sync.Mutex
	sessions map[checker.SessionID][]string
	lastID   checker.SessionID
	learned  wordlist.Set
}

var _ checker.Engine = (*Engine)(nil)

// New creates a remote engine.
func New(cfg Config) (*Engine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("remote engine API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	if len(cfg.LanguageTags) == 0 {
		cfg.LanguageTags = []string{"en-US"}
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	var store cache.Cache
	if cfg.CacheDir != "" {
		store = cache.NewLayeredCache(cfg.CacheTTL, cfg.CacheDir, cfg.CacheTTL)
	} else {
		store = cache.NewMemoryCache(cfg.CacheTTL)
	}

	learned := make(wordlist.Set)
	if cfg.LearnedPath != "" {
		var err error
		learned, err = wordlist.Load(cfg.LearnedPath)
		if err != nil {
			return nil, fmt.Errorf("open learned words: %w", err)
		}
	}

	return &Engine{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(clientConfig),
		limiter:  limiter,
		store:    store,
		sessions: make(map[checker.SessionID][]string),
		learned:  learned,
	}, nil
}

// CountWords counts whitespace-separated tokens.
func (e *Engine) CountWords(text string) int {
	return len(strings.Fields(text))
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

// CloseSession releases the session.
func (e *Engine) CloseSession(id checker.SessionID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, id)
}

// SetIgnoredWords installs the session's transient ignore list.
func (e *Engine) SetIgnoredWords(id checker.SessionID, words []string) {
	lowered := make([]string, 0, len(words))
	for _, w := range words {
		lowered = append(lowered, strings.ToLower(w))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[id]; ok {
		e.sessions[id] = lowered
	}
}

// NextSpellingMatch serves the first spelling finding at or after from.
// It never wraps.
func (e *Engine) NextSpellingMatch(ctx context.Context, text string, from int, session checker.SessionID) (checker.Range, error) {
	findings, err := e.findings(ctx, text, session)
	if err != nil {
		return checker.NotFound, err
	}
	for _, f := range findings {
		if f.Result.Kind == checker.KindSpelling && f.Result.Range.Location >= from {
			return f.Result.Range, nil
		}
	}
	return checker.NotFound, nil
}

// NextGrammarMatch serves the first grammar finding at or after from,
// wrapping to the start once when nothing follows from.
func (e *Engine) NextGrammarMatch(ctx context.Context, text string, from int, session checker.SessionID) (checker.Range, *checker.GrammarDetail, error) {
	findings, err := e.findings(ctx, text, session)
	if err != nil {
		return checker.NotFound, nil, err
	}
	var wrapped *finding
	for i, f := range findings {
		if f.Result.Kind != checker.KindGrammar {
			continue
		}
		if f.Result.Range.Location >= from {
			return f.Result.Range, &checker.GrammarDetail{Message: f.Result.Message}, nil
		}
		if wrapped == nil {
			wrapped = &findings[i]
		}
	}
	if from > 0 && wrapped != nil {
		return wrapped.Result.Range, &checker.GrammarDetail{Message: wrapped.Result.Message}, nil
	}
	return checker.NotFound, nil, nil
}

// Guesses serves the ranked suggestions recorded for the finding at rng.
func (e *Engine) Guesses(ctx context.Context, rng checker.Range, text string, session checker.SessionID) ([]string, error) {
	findings, err := e.findings(ctx, text, session)
	if err != nil {
		return nil, err
	}
	for _, f := range findings {
		if f.Result.Range == rng {
			return f.Suggestions, nil
		}
	}
	return nil, nil
}

// UnifiedCheck returns every finding for the text, all kinds, in the
// order the analysis reported them.
func (e *Engine) UnifiedCheck(ctx context.Context, text string, full checker.Range, session checker.SessionID) ([]checker.Result, error) {
	findings, err := e.findings(ctx, text, session)
	if err != nil {
		return nil, err
	}
	var results []checker.Result
	for _, f := range findings {
		if f.Result.Range.Location >= full.Location && f.Result.Range.End() <= full.End() {
			results = append(results, f.Result)
		}
	}
	return results, nil
}

// Correction asks the model for a corrected rendition of the text under
// rng. The empty string means the model found nothing to improve.
func (e *Engine) Correction(ctx context.Context, rng checker.Range, text, language string, session checker.SessionID) (string, error) {
	runes := []rune(text)
	if !rng.Found() || rng.End() > len(runes) {
		return "", nil
	}
	span := string(runes[rng.Location:rng.End()])

	prompt := fmt.Sprintf(`Correct all spelling and grammar errors in the following %s text.
Respond with ONLY the corrected text, no explanations.%s

%s`, language, e.ignoreClause(session), span)

	content, err := e.complete(ctx, "You are a precise text correction engine.", prompt)
	if err != nil {
		return "", err
	}
	corrected := strings.TrimSpace(content)
	if corrected == "" || corrected == strings.TrimSpace(span) {
		return "", nil
	}
	return corrected, nil
}

// LearnWord adds word to the persistent learned set; learned words are
// excluded from analysis findings.
func (e *Engine) LearnWord(word string) error {
	lower := strings.ToLower(strings.TrimSpace(word))
	if lower == "" {
		return nil
	}
	e.mu.Lock()
	e.learned.Add(lower)
	e.mu.Unlock()
	return e.saveLearned()
}

// UnlearnWord removes a learned word.
func (e *Engine) UnlearnWord(word string) error {
	e.mu.Lock()
	e.learned.Delete(word)
	e.mu.Unlock()
	return e.saveLearned()
}

// HasLearnedWord reports whether word has been learned.
func (e *Engine) HasLearnedWord(word string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.learned.Has(word)
}

// SupportedLanguageTags returns the configured language tags.
func (e *Engine) SupportedLanguageTags() []string {
	tags := make([]string, len(e.cfg.LanguageTags))
	copy(tags, e.cfg.LanguageTags)
	return tags
}

func (e *Engine) saveLearned() error {
	if e.cfg.LearnedPath == "" {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := wordlist.Save(e.cfg.LearnedPath, e.learned); err != nil {
		return fmt.Errorf("save learned words: %w", err)
	}
	return nil
}

func (e *Engine) ignoreClause(session checker.SessionID) string {
	words := e.allowedWords(session)
	if len(words) == 0 {
		return ""
	}
	return fmt.Sprintf("\nTreat these words as correctly spelled: %s.", strings.Join(words, ", "))
}

// allowedWords merges the session ignore list with the learned set.
func (e *Engine) allowedWords(session checker.SessionID) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	words := append([]string(nil), e.sessions[session]...)
	words = append(words, e.learned.Words()...)
	return words
}

// analysisItem is the JSON shape the model is asked to produce per
// finding.
type analysisItem struct {
	Text        string   `json:"text"`
	Kind        string   `json:"kind"`
	Message     string   `json:"message,omitempty"`
	Replacement string   `json:"replacement,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// findings runs (or replays from cache) the one analysis call for text
// under the session's allowed words.
func (e *Engine) findings(ctx context.Context, text string, session checker.SessionID) ([]finding, error) {
	allowed := e.allowedWords(session)
	key := cache.Key(e.cfg.Model, text, strings.Join(allowed, ","))
	if data, ok := e.store.Get(key); ok {
		var cached []finding
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	findings, err := e.analyze(ctx, text, allowed)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(findings); err == nil {
		_ = e.store.Set(key, data)
	}
	return findings, nil
}

func (e *Engine) analyze(ctx context.Context, text string, allowed []string) ([]finding, error) {
	clause := ""
	if len(allowed) > 0 {
		clause = fmt.Sprintf("\nTreat these words as correctly spelled: %s.", strings.Join(allowed, ", "))
	}
	prompt := fmt.Sprintf(`Find every issue in the text below. Report each as a JSON object with:
- "text": the exact problem substring, copied verbatim from the input
- "kind": one of "spelling", "grammar", "orthography", "date"
- "message": short explanation (grammar/orthography only)
- "suggestions": ranked replacements, best first (spelling only)
Report recognized date expressions with kind "date".
Respond with ONLY a JSON array, no prose.%s

TEXT:
%s`, clause, text)

	content, err := e.complete(ctx, "You are a precise text checking engine that responds in strict JSON.", prompt)
	if err != nil {
		return nil, err
	}

	items, err := parseItems(content)
	if err != nil {
		return nil, err
	}
	return locate(text, items), nil
}

// complete performs one rate-limited, timeout-bounded chat call.
func (e *Engine) complete(ctx context.Context, system, prompt string) (string, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	timeout := time.Duration(e.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.0,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty chat completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseItems decodes the model's JSON array, tolerating a fenced code
// block around it.
func parseItems(content string) ([]analysisItem, error) {
	content = strings.TrimSpace(content)
	if after, ok := strings.CutPrefix(content, "```json"); ok {
		content = after
	} else if after, ok := strings.CutPrefix(content, "```"); ok {
		content = after
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	var items []analysisItem
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &items); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return items, nil
}

// locate maps each reported substring back onto the input, producing
// rune ranges. Items whose text cannot be found are dropped rather than
// guessed at. The search is resumed after each hit so repeated
// substrings resolve in order.
func locate(text string, items []analysisItem) []finding {
	var findings []finding
	searchFrom := 0
	for _, item := range items {
		if item.Text == "" {
			continue
		}
		idx := strings.Index(text[searchFrom:], item.Text)
		var byteStart int
		if idx >= 0 {
			byteStart = searchFrom + idx
		} else if idx = strings.Index(text, item.Text); idx >= 0 {
			byteStart = idx
		} else {
			continue
		}
		loc := utf8.RuneCountInString(text[:byteStart])
		findings = append(findings, finding{
			Result: checker.Result{
				Kind:       normalizeKind(item.Kind),
				Range:      checker.Range{Location: loc, Length: utf8.RuneCountInString(item.Text)},
				Message:    item.Message,
				Suggestion: item.Replacement,
			},
			Suggestions: item.Suggestions,
		})
		searchFrom = byteStart + len(item.Text)
	}
	return findings
}

func normalizeKind(kind string) checker.Kind {
	switch strings.ToLower(kind) {
	case "spelling":
		return checker.KindSpelling
	case "grammar":
		return checker.KindGrammar
	case "orthography":
		return checker.KindOrthography
	case "date":
		return checker.KindDate
	default:
		return checker.KindGrammar
	}
}
