// Package memory is an in-process store with the same contracts as the postgres repositories.
// It serves tests and single-instance local runs; nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.Transactor = (*DB)(nil)

// DB holds every table behind one mutex.
type DB struct {
	mu      sync.RWMutex
	roundMu sync.Mutex
	now     func() time.Time

	userSeq  int64
	users    map[int64]model.User
	byEmail  map[string]int64
	drawSeq  int64
	draws    map[int64]model.Draw
	pending  map[string]model.PendingEnrollment
	eventSeq int64
	events   []model.SecurityEvent
}

// NewDB creates an empty DB.
func NewDB() *DB {
	return &DB{
		now:     time.Now,
		users:   make(map[int64]model.User),
		byEmail: make(map[string]int64),
		draws:   make(map[int64]model.Draw),
		pending: make(map[string]model.PendingEnrollment),
	}
}

type roundKey struct{}

// InRoundTx runs fn holding the round mutex. Nested calls join the outer holder.
// Mutations are applied immediately; there is no rollback.
func (db *DB) InRoundTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(roundKey{}) != nil {
		return fn(ctx)
	}

	db.roundMu.Lock()
	defer db.roundMu.Unlock()

	return fn(context.WithValue(ctx, roundKey{}, true))
}

// InUnitOfWork runs fn directly.
func (db *DB) InUnitOfWork(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
