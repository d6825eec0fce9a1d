package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	userID  string
	expires time.Time
}

// MemoryStore is an in-process Store. Expired tokens are invisible to Lookup
// but stay in the map until Sweep runs.
type MemoryStore struct {
	mu     sync.Mutex
	tokens map[string]entry
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]entry),
		now:    time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = entry{userID: userID, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.tokens[token]
	if !ok || !s.now().Before(e.expires) {
		return "", false, nil
	}
	return e.userID, true, nil
}

func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

// Sweep drops expired tokens and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for tok, e := range s.tokens {
		if !now.Before(e.expires) {
			delete(s.tokens, tok)
			removed++
		}
	}
	return removed
}

// Len is the number of tokens held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
