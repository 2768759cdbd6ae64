package ratelimit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store throttles repeat requests for the same key. Implementations must be
// safe for concurrent use; the zero decision is deny-while-fresh.
type Store interface {
	Allow(key string) bool
}

// MemoryStore is an in-memory Store with TTL eviction. It replaces the old
// unbounded process-lifetime map: entries expire after the configured TTL and
// a janitor loop reclaims them.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]time.Time),
	}
}

// Allow reports whether key may proceed and, if so, records the attempt.
// A key is denied until its previous attempt is older than the TTL.
func (s *MemoryStore) Allow(key string) bool {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.entries[key]; ok && now.Sub(last) < s.ttl {
		return false
	}
	s.entries[key] = now
	return true
}

func (s *MemoryStore) evict(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, last := range s.entries {
		if now.Sub(last) >= s.ttl {
			delete(s.entries, key)
		}
	}
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Janitor evicts expired entries until ctx is canceled.
func (s *MemoryStore) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("rate limit janitor stopped")
			return
		case now := <-ticker.C:
			s.evict(now)
		}
	}
}
