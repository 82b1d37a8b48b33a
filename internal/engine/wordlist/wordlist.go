// Package wordlist holds the plain-text word set format shared by engine
// backends: one lowercase word per line, newline separated.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Set is a case-folded word set.
type Set map[string]struct{}

// New builds a set from words, lowercasing each.
func New(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts word (lowercased) into the set.
func (s Set) Add(word string) {
	s[strings.ToLower(word)] = struct{}{}
}

// Delete removes word (lowercased) from the set.
func (s Set) Delete(word string) {
	delete(s, strings.ToLower(word))
}

// Has reports whether word (lowercased) is in the set.
func (s Set) Has(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// Words returns the set's contents sorted, for stable persistence.
func (s Set) Words() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Parse reads a word list from raw file contents, skipping blanks and
// '#' comments.
func Parse(data string) Set {
	s := make(Set)
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Add(line)
	}
	return s
}

// Load reads a word list file. A missing file yields an empty set and no
// error, so a fresh user dictionary needs no setup step.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(Set), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return Parse(string(data)), nil
}

// Save writes the set to path, creating parent directories as needed.
func Save(path string, s Set) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create word list dir: %w", err)
		}
	}
	data := strings.Join(s.Words(), "\n")
	if len(data) > 0 {
		data += "\n"
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write word list: %w", err)
	}
	return nil
}
