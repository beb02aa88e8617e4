package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.UserStore = (*UserStore)(nil)

// UserStore is the in-memory identity table.
type UserStore struct {
	db *DB
}

func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	id, ok := s.db.byEmail[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return s.db.users[id], nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (model.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	u, ok := s.db.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.byEmail[user.Email]; ok {
		return model.User{}, model.ErrDuplicateEmail
	}

	s.db.userSeq++
	user.ID = s.db.userSeq
	if user.RegisteredAt.IsZero() {
		user.RegisteredAt = s.db.now()
	}
	s.db.users[user.ID] = user
	s.db.byEmail[user.Email] = user.ID

	return user, nil
}

func (s *UserStore) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var out []model.User
	for _, u := range s.db.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *UserStore) RecordLogin(_ context.Context, id int64, at time.Time, origin string) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	u.LastLogin = u.CurrentLogin
	u.IPLast = u.IPCurrent
	current := at
	u.CurrentLogin = &current
	u.IPCurrent = origin
	u.SuccessfulLogins++
	s.db.users[id] = u

	return u, nil
}

func (s *UserStore) UpdatePassword(_ context.Context, id int64, passwordHash []byte) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return model.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.db.users[id] = u
	return nil
}
