package memory

import (
	"context"
	"time"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.SecurityEventStore = (*SecurityEventStore)(nil)

type SecurityEventStore struct {
	db *DB
}

func NewSecurityEventStore(db *DB) *SecurityEventStore {
	return &SecurityEventStore{db: db}
}

// Record appends in arrival order; callers stamp monotonic timestamps.
func (s *SecurityEventStore) Record(_ context.Context, event model.SecurityEvent) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.eventSeq++
	event.ID = s.db.eventSeq
	s.db.events = append(s.db.events, event)
	return nil
}

func (s *SecurityEventStore) Recent(_ context.Context, limit int) ([]model.SecurityEvent, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := make([]model.SecurityEvent, 0, limit)
	for i := len(s.db.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.db.events[i])
	}
	return out, nil
}

func (s *SecurityEventStore) ListBefore(_ context.Context, cutoff time.Time) ([]model.SecurityEvent, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var out []model.SecurityEvent
	for _, e := range s.db.events {
		if e.Timestamp.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *SecurityEventStore) DeleteIDs(_ context.Context, ids []int64) (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := s.db.events[:0]
	removed := 0
	for _, e := range s.db.events {
		if _, ok := drop[e.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.db.events = kept
	return removed, nil
}
