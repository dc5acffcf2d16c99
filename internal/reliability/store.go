// Package reliability – Store
//
// This file defines the expiring key/value store contract backing the
// courier-reliability cache, plus the in-process MemoryStore implementation.
// Expiry is lazy: an entry past its deadline behaves as a miss on read, and
// expired entries are swept opportunistically rather than by a background
// goroutine.
package reliability

import (
	"context"
	"sync"
	"time"

	"github.com/oms-labs/go-order-backoffice/internal/domain"
)

// Store is an expiring key/value cache for success-rate statistics.
//
// Get returns (value, true, nil) for a live entry and (zero, false, nil) for
// a missing or expired one. Implementations must be safe for concurrent use;
// Cache treats Get errors as misses and Set errors as non-fatal.
type Store interface {
	Get(ctx context.Context, key string) (domain.SuccessRate, bool, error)
	Set(ctx context.Context, key string, value domain.SuccessRate, ttl time.Duration) error
}

// memEntry is a stored statistic with its expiry deadline.
type memEntry struct {
	value     domain.SuccessRate
	expiresAt time.Time
}

// MemoryStore is a process-local Store backed by a mutex-guarded map.
//
// Entries expire lazily on read. To bound memory in long-running processes,
// expired entries are additionally swept after a threshold of lookups,
// amortizing the cost across requests instead of dedicating a janitor
// goroutine.
//
// MemoryStore is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	lookups uint64

	// now is overridable for tests.
	now func() time.Time
}

// sweepEvery is the number of lookups between opportunistic sweeps of
// expired entries.
const sweepEvery = 5000

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

// Get returns the stored statistic for key when present and not expired.
// An entry exactly at its deadline is already expired.
func (s *MemoryStore) Get(_ context.Context, key string) (domain.SuccessRate, bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Sweep BEFORE reading so a stale entry cannot be served on the lookup
	// that crosses the threshold.
	s.lookups++
	if s.lookups >= sweepEvery {
		for k, e := range s.entries {
			if !now.Before(e.expiresAt) {
				delete(s.entries, k)
			}
		}
		s.lookups = 0
	}

	e, ok := s.entries[key]
	if !ok {
		return domain.SuccessRate{}, false, nil
	}
	if !now.Before(e.expiresAt) {
		delete(s.entries, key)
		return domain.SuccessRate{}, false, nil
	}
	return e.value, true, nil
}

// Set stores value under key for the given ttl. A non-positive ttl removes
// any existing entry instead of storing one that is already expired.
func (s *MemoryStore) Set(_ context.Context, key string, value domain.SuccessRate, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ttl <= 0 {
		delete(s.entries, key)
		return nil
	}
	s.entries[key] = memEntry{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

// Len reports the number of entries currently held, including any that have
// expired but not yet been swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
