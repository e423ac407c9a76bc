package cache

import (
	"context"
	"sync"
	"time"

	"github.com/flight-search/interconnecting-flights/internal/infrastructure/timeutil"
)

// sweepInterval is the minimum time between two full scans for expired entries.
const sweepInterval = time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store. Expired entries are evicted on read,
// and writes drop every expired entry at most once per sweepInterval.
type MemoryStore struct {
	clock timeutil.Clock

	mu        sync.RWMutex
	entries   map[string]memoryEntry
	nextSweep time.Time
}

// NewMemoryStore creates an empty MemoryStore. A nil clock uses the wall clock.
func NewMemoryStore(clock timeutil.Clock) *MemoryStore {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &MemoryStore{
		clock:   clock,
		entries: make(map[string]memoryEntry),
	}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !s.clock.Now().Before(entry.expiresAt) {
		s.mu.Lock()
		// only drop the entry if nobody refreshed it in between
		if current, ok := s.entries[key]; ok && current.expiresAt.Equal(entry.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	return entry.value, true, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !now.Before(s.nextSweep) {
		s.sweepLocked(now)
	}
	s.entries[key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: now.Add(ttl),
	}
	return nil
}

// sweepLocked removes expired entries. s.mu must be held.
func (s *MemoryStore) sweepLocked(now time.Time) {
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.nextSweep = now.Add(sweepInterval)
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var _ Store = (*MemoryStore)(nil)
