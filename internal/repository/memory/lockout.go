package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.LockoutStore = (*LockoutStore)(nil)

type lockoutEntry struct {
	failures  int
	expiresAt time.Time
}

// LockoutStore counts failures per identity in a fixed window that starts at the first failure.
type LockoutStore struct {
	mu      sync.Mutex
	window  time.Duration
	now     func() time.Time
	entries map[string]lockoutEntry
}

func NewLockoutStore(window time.Duration) *LockoutStore {
	return &LockoutStore{
		window:  window,
		now:     time.Now,
		entries: make(map[string]lockoutEntry),
	}
}

func (s *LockoutStore) Failures(_ context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.live(strings.ToLower(email)).failures, nil
}

func (s *LockoutStore) RecordFailure(_ context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	e := s.live(key)
	if e.failures == 0 {
		e.expiresAt = s.now().Add(s.window)
	}
	e.failures++
	s.entries[key] = e
	return e.failures, nil
}

func (s *LockoutStore) Clear(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, strings.ToLower(email))
	return nil
}

func (s *LockoutStore) live(key string) lockoutEntry {
	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return lockoutEntry{}
	}
	return e
}
