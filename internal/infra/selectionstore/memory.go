package selectionstore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/tennis-playability/internal/domain/playability"
)

type entry struct {
	selection playability.Selection
	expiresAt time.Time
}

// MemoryStore keeps selections in process memory for single-instance deployments and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore constructs a store whose entries expire after ttl of inactivity.
// A non-positive ttl keeps entries until the process exits.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Load implements playability.SelectionStore.
func (s *MemoryStore) Load(_ context.Context, sessionID string) (playability.Selection, bool, error) {
	if sessionID == "" {
		return nil, false, nil
	}
	s.mu.RLock()
	rec, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if s.expired(rec.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return nil, false, nil
	}
	return rec.selection.Clone(), true, nil
}

// Save implements playability.SelectionStore.
func (s *MemoryStore) Save(_ context.Context, sessionID string, sel playability.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if s.ttl > 0 {
		exp = s.now().Add(s.ttl)
	}
	s.entries[sessionID] = entry{selection: sel.Clone(), expiresAt: exp}
	s.cleanupLocked()
	return nil
}

func (s *MemoryStore) cleanupLocked() {
	for id, rec := range s.entries {
		if s.expired(rec.expiresAt) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) expired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ playability.SelectionStore = (*MemoryStore)(nil)
