package memstore

import (
	"sort"
	"sync"

	"tokfilter/internal/domain"
)

// MemoryStore is a TokenSink that keeps every written token in memory,
// grouped by path.
type MemoryStore struct {
	mu      sync.RWMutex
	tokens  map[string][]domain.Token
	flushes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string][]domain.Token),
	}
}

func (s *MemoryStore) Write(path string, tok domain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[path] = append(s.tokens[path], tok)
	return nil
}

func (s *MemoryStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return nil
}

// Tokens returns a copy of the tokens written for path.
func (s *MemoryStore) Tokens(path string) []domain.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Token(nil), s.tokens[path]...)
}

// Texts returns the token texts written for path, in write order.
func (s *MemoryStore) Texts(path string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	toks := s.tokens[path]
	if len(toks) == 0 {
		return nil
	}
	texts := make([]string, len(toks))
	for i, t := range toks {
		texts[i] = t.Text
	}
	return texts
}

// Paths returns the paths that received at least one token, sorted.
func (s *MemoryStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.tokens))
	for p := range s.tokens {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Count returns the total number of tokens written.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, toks := range s.tokens {
		n += len(toks)
	}
	return n
}

// Flushes returns how many times Flush was called.
func (s *MemoryStore) Flushes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flushes
}
