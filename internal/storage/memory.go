package storage

import (
	"context"
	"sync"
	"time"
)

// defaultCleanupInterval is how often the background sweep removes
// expired entries that were never read again.
const defaultCleanupInterval = 5 * time.Minute

// memoryEntry is a stored value with its expiry deadline.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// expired reports whether the entry is past its deadline at now.
func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is an in-process Store implementation for development and
// tests. Expiry is enforced on read, with a periodic background sweep so
// never-read entries do not accumulate.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	stopCleanup chan struct{}
	stopOnce    sync.Once

	// now is swappable for expiry tests.
	now func() time.Time
}

// NewMemoryStore creates an in-memory store and starts its cleanup goroutine.
// Call Close to stop the goroutine.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries:     make(map[string]memoryEntry),
		stopCleanup: make(chan struct{}),
		now:         time.Now,
	}

	go s.cleanupLoop(defaultCleanupInterval)

	return s
}

// Get returns the value stored under key, or ErrNotFound if the key is
// absent or expired. Expired entries are removed as a side effect.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	if entry.expired(s.now()) {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have replaced it.
		if current, ok := s.entries[key]; ok && current.expired(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	// Copy so callers cannot mutate the stored value.
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

// Set stores value under key. A ttl of zero means no expiry.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: make([]byte, len(value))}
	copy(entry.value, value)

	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()

	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()

	return nil
}

// Close stops the background cleanup goroutine.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCleanup)
	})
}

// cleanupLoop periodically removes expired entries.
func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stopCleanup:
			return
		}
	}
}

// removeExpired deletes every entry past its deadline.
func (s *MemoryStore) removeExpired() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if entry.expired(now) {
			delete(s.entries, key)
		}
	}
}
