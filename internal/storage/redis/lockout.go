package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.LockoutStore = (*LockoutStore)(nil)

const lockoutKeyPrefix = "lottery:lockout:"

// LockoutStore counts failed logins per identity across sessions and instances.
// The window starts at the first failure and is not extended by later ones.
type LockoutStore struct {
	client *redis.Client
	window time.Duration
}

// NewLockoutStore creates a LockoutStore whose counters expire after window.
func NewLockoutStore(client *redis.Client, window time.Duration) *LockoutStore {
	return &LockoutStore{client: client, window: window}
}

func lockoutKey(email string) string {
	return lockoutKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Failures returns the live failure count for email.
func (s *LockoutStore) Failures(ctx context.Context, email string) (int, error) {
	n, err := s.client.Get(ctx, lockoutKey(email)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read lockout counter: %w", err)
	}
	return n, nil
}

// RecordFailure increments the counter and starts its window on first use.
func (s *LockoutStore) RecordFailure(ctx context.Context, email string) (int, error) {
	key := lockoutKey(email)

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, s.window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record login failure: %w", err)
	}

	return int(incr.Val()), nil
}

// Clear drops the counter after a successful login.
func (s *LockoutStore) Clear(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, lockoutKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to clear lockout counter: %w", err)
	}
	return nil
}
