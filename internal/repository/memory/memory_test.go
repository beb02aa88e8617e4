package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/lottery-server/internal/model"
)

func TestUserStore_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore(NewDB())

	u, err := users.Create(ctx, model.User{Email: "a@b.c", Role: model.RoleParticipant})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.False(t, u.RegisteredAt.IsZero())

	_, err = users.Create(ctx, model.User{Email: "a@b.c"})
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)

	got, err := users.GetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.GetByID(ctx, 99)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserStore_RecordLoginShiftsTelemetry(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore(NewDB())
	u, err := users.Create(ctx, model.User{Email: "a@b.c"})
	require.NoError(t, err)

	t1 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	u, err = users.RecordLogin(ctx, u.ID, t1, "10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, u.LastLogin)
	assert.Equal(t, "", u.IPLast)

	u, err = users.RecordLogin(ctx, u.ID, t2, "10.0.0.2")
	require.NoError(t, err)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, t1, *u.LastLogin)
	assert.Equal(t, t2, *u.CurrentLogin)
	assert.Equal(t, "10.0.0.1", u.IPLast)
	assert.Equal(t, "10.0.0.2", u.IPCurrent)
	assert.Equal(t, 2, u.SuccessfulLogins)
}

func TestDrawStore_SingleOpenMaster(t *testing.T) {
	ctx := context.Background()
	draws := NewDrawStore(NewDB())

	_, err := draws.Create(ctx, model.Draw{OwnerID: 1, IsMaster: true, Round: 1})
	require.NoError(t, err)

	_, err = draws.Create(ctx, model.Draw{OwnerID: 1, IsMaster: true, Round: 2})
	assert.ErrorIs(t, err, model.ErrConcurrency)
}

func TestDrawStore_ClaimAndSettle(t *testing.T) {
	ctx := context.Background()
	draws := NewDrawStore(NewDB())

	a, err := draws.Create(ctx, model.Draw{OwnerID: 2, Numbers: []byte("a")})
	require.NoError(t, err)
	_, err = draws.Create(ctx, model.Draw{OwnerID: 3, Numbers: []byte("b")})
	require.NoError(t, err)

	n, err := draws.CountOpenEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	claimed, err := draws.ClaimEntries(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, claimed)

	n, err = draws.CountOpenEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	ok, err := draws.SettleEntry(ctx, a.ID, true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = draws.SettleEntry(ctx, a.ID, false)
	require.NoError(t, err)
	assert.False(t, ok, "second settle is a no-op")

	pending, err := draws.ListClaimed(ctx, 5)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(3), pending[0].OwnerID)

	played, err := draws.ListByOwner(ctx, 2, true)
	require.NoError(t, err)
	require.Len(t, played, 1)
	assert.True(t, played[0].MatchesMaster)

	removed, err := draws.DeletePlayed(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestEnrollmentStore_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	store := NewEnrollmentStore(db)

	require.NoError(t, store.Create(ctx, model.PendingEnrollment{JTI: "j1", UserID: 7, ExpiresAt: time.Now().Add(time.Minute)}))
	require.NoError(t, store.Create(ctx, model.PendingEnrollment{JTI: "old", UserID: 8, ExpiresAt: time.Now().Add(-time.Minute)}))

	id, err := store.Consume(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = store.Consume(ctx, "j1")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = store.Consume(ctx, "old")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSecurityEventStore_RecentAndPrune(t *testing.T) {
	ctx := context.Background()
	store := NewSecurityEventStore(NewDB())
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, model.SecurityEvent{Kind: model.EventLogout, Timestamp: base.Add(time.Duration(i) * time.Hour)}))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(5), recent[0].ID)
	assert.Equal(t, int64(4), recent[1].ID)

	old, err := store.ListBefore(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Len(t, old, 2)

	// Stamped before the cutoff but recorded after the listing.
	require.NoError(t, store.Record(ctx, model.SecurityEvent{Kind: model.EventLoginFailed, Timestamp: base.Add(-time.Hour)}))

	removed, err := store.DeleteIDs(ctx, []int64{old[0].ID, old[1].ID})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	left, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, left, 4)
	assert.Equal(t, model.EventLoginFailed, left[0].Kind)
}

func TestLockoutStore_Window(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewLockoutStore(time.Minute)
	s.now = func() time.Time { return now }

	n, err := s.RecordFailure(ctx, "A@b.c")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = s.RecordFailure(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	now = now.Add(2 * time.Minute)
	n, err = s.Failures(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, _ = s.RecordFailure(ctx, "a@b.c")
	require.NoError(t, s.Clear(ctx, "a@b.c"))
	n, _ = s.Failures(ctx, "a@b.c")
	assert.Equal(t, 0, n)
}

func TestDB_InRoundTxSerializes(t *testing.T) {
	db := NewDB()
	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = db.InRoundTx(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return db.InRoundTx(ctx, func(context.Context) error { return nil })
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}
