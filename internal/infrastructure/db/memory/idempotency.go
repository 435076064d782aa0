// Package memory holds in-process stand-ins for the Redis-backed stores,
// used when Redis is disabled.
package memory

import (
	"context"
	"sync"
	"time"
)

// IdempotencyStore remembers request keys in process memory.
type IdempotencyStore struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &IdempotencyStore{ttl: ttl, now: time.Now, seen: make(map[string]time.Time)}
}

// Claim records key and reports whether this was its first use within ttl.
func (s *IdempotencyStore) Claim(_ context.Context, key string) (bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, exp := range s.seen {
		if !now.Before(exp) {
			delete(s.seen, k)
		}
	}
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = now.Add(s.ttl)
	return true, nil
}

// Release forgets key so a failed request can be retried with it.
func (s *IdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.seen, key)
	s.mu.Unlock()
	return nil
}
