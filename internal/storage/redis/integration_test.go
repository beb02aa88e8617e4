//go:build integration

package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	store "github.com/dtroode/lottery-server/internal/storage/redis"
)

var redisURL string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tcredis.RunContainer(ctx, tc.WithImage("redis:7-alpine"))
	if err != nil {
		panic(err)
	}
	redisURL, err = container.ConnectionString(ctx)
	if err != nil {
		panic(err)
	}

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestLockoutStore_CountsAndExpires(t *testing.T) {
	ctx := context.Background()
	client, err := store.NewClient(ctx, redisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Health(ctx))

	s := store.NewLockoutStore(client.Client, time.Second)

	n, err := s.Failures(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for i := 1; i <= 3; i++ {
		n, err = s.RecordFailure(ctx, "Bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	n, err = s.Failures(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.Eventually(t, func() bool {
		n, err := s.Failures(ctx, "bob@example.com")
		return err == nil && n == 0
	}, 5*time.Second, 100*time.Millisecond)
}

func TestLockoutStore_Clear(t *testing.T) {
	ctx := context.Background()
	client, err := store.NewClient(ctx, redisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	s := store.NewLockoutStore(client.Client, time.Minute)
	_, err = s.RecordFailure(ctx, "carol@example.com")
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx, "carol@example.com"))
	n, err := s.Failures(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
