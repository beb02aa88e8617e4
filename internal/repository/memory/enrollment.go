package memory

import (
	"context"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.EnrollmentStore = (*EnrollmentStore)(nil)

type EnrollmentStore struct {
	db *DB
}

func NewEnrollmentStore(db *DB) *EnrollmentStore {
	return &EnrollmentStore{db: db}
}

func (s *EnrollmentStore) Create(_ context.Context, enrollment model.PendingEnrollment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	s.db.pending[enrollment.JTI] = enrollment
	return nil
}

func (s *EnrollmentStore) Consume(_ context.Context, jti string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	e, ok := s.db.pending[jti]
	if !ok || e.Consumed || !s.db.now().Before(e.ExpiresAt) {
		return 0, model.ErrNotFound
	}
	e.Consumed = true
	s.db.pending[jti] = e
	return e.UserID, nil
}
