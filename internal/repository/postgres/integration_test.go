//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/lottery-server/internal/audit"
	"github.com/dtroode/lottery-server/internal/cryptox"
	"github.com/dtroode/lottery-server/internal/model"
	repo "github.com/dtroode/lottery-server/internal/repository/postgres"
	"github.com/dtroode/lottery-server/internal/service"
	"github.com/dtroode/lottery-server/internal/testutil"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "lottery_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/lottery_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func connect(t *testing.T) *repo.Connection {
	t.Helper()

	conn, err := repo.NewConnection(context.Background(), dsn, repo.WithLockTimeout(2*time.Second))
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = conn.Exec(context.Background(), "TRUNCATE users, pending_enrollments, draws, security_events RESTART IDENTITY CASCADE")
		_ = conn.Close()
	})
	return conn
}

func newUser(email string, role model.Role) model.User {
	return model.User{
		Email:        email,
		PasswordHash: []byte("hash"),
		TOTPSecret:   "JBSWY3DPEHPK3PXP",
		Postcode:     "NE1 2AB",
		Firstname:    "Alice",
		Lastname:     "Jones",
		Phone:        "0191-123-4567",
		DOB:          "01/01/1999",
		Role:         role,
		PublicKey:    []byte("pub"),
		PrivateKey:   []byte("priv"),
		RegisteredAt: time.Now().UTC(),
	}
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)

		saved, err := ur.Create(ctx, newUser("user@example.com", model.RoleParticipant))
		require.NoError(t, err)
		require.NotZero(t, saved.ID)

		_, err = ur.Create(ctx, newUser("user@example.com", model.RoleParticipant))
		require.ErrorIs(t, err, model.ErrDuplicateEmail)

		byEmail, err := ur.GetByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		require.Equal(t, saved.ID, byEmail.ID)

		_, err = ur.GetByID(ctx, saved.ID+1000)
		require.ErrorIs(t, err, model.ErrNotFound)

		first := time.Now().UTC().Truncate(time.Microsecond)
		_, err = ur.RecordLogin(ctx, saved.ID, first, "10.0.0.1")
		require.NoError(t, err)
		updated, err := ur.RecordLogin(ctx, saved.ID, first.Add(time.Minute), "10.0.0.2")
		require.NoError(t, err)
		assert.Equal(t, 2, updated.SuccessfulLogins)
		assert.Equal(t, "10.0.0.2", updated.IPCurrent)
		assert.Equal(t, "10.0.0.1", updated.IPLast)
		require.NotNil(t, updated.LastLogin)
		assert.True(t, first.Equal(*updated.LastLogin))

		require.NoError(t, ur.UpdatePassword(ctx, saved.ID, []byte("new-hash")))
		reloaded, err := ur.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, []byte("new-hash"), reloaded.PasswordHash)

		participants, err := ur.ListByRole(ctx, model.RoleParticipant)
		require.NoError(t, err)
		assert.Len(t, participants, 1)
	})

	t.Run("enrollment_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		er := repo.NewEnrollmentRepository(conn)

		u, err := ur.Create(ctx, newUser("enroll@example.com", model.RoleParticipant))
		require.NoError(t, err)

		require.NoError(t, er.Create(ctx, model.PendingEnrollment{JTI: "jti-1", UserID: u.ID, ExpiresAt: time.Now().Add(time.Minute)}))
		require.NoError(t, er.Create(ctx, model.PendingEnrollment{JTI: "jti-expired", UserID: u.ID, ExpiresAt: time.Now().Add(-time.Minute)}))

		userID, err := er.Consume(ctx, "jti-1")
		require.NoError(t, err)
		assert.Equal(t, u.ID, userID)

		_, err = er.Consume(ctx, "jti-1")
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = er.Consume(ctx, "jti-expired")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("security_event_repository", func(t *testing.T) {
		sr := repo.NewSecurityEventRepository(conn)
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		for i, kind := range []model.SecurityEventKind{model.EventLoginFailed, model.EventLoginSuccess, model.EventLogout} {
			require.NoError(t, sr.Record(ctx, model.SecurityEvent{
				Timestamp: base.Add(time.Duration(i) * time.Hour),
				Kind:      kind,
				Email:     "x@example.com",
			}))
		}

		recent, err := sr.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, model.EventLogout, recent[0].Kind)

		cutoff := base.Add(90 * time.Minute)
		old, err := sr.ListBefore(ctx, cutoff)
		require.NoError(t, err)
		assert.Len(t, old, 2)

		n, err := sr.DeleteIDs(ctx, []int64{old[0].ID, old[1].ID})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = sr.DeleteIDs(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)

		rest, err := sr.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})
}

func TestConnection_UnitOfWorkRollsBackAlone(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ur := repo.NewUserRepository(conn)
	dr := repo.NewDrawRepository(conn)

	owner, err := ur.Create(ctx, newUser("owner@example.com", model.RoleParticipant))
	require.NoError(t, err)

	errInner := errors.New("inner failure")
	err = conn.InRoundTx(ctx, func(ctx context.Context) error {
		if _, err := dr.Create(ctx, model.Draw{OwnerID: owner.ID, Numbers: []byte("kept")}); err != nil {
			return err
		}
		innerErr := conn.InUnitOfWork(ctx, func(ctx context.Context) error {
			if _, err := dr.Create(ctx, model.Draw{OwnerID: owner.ID, Numbers: []byte("dropped")}); err != nil {
				return err
			}
			return errInner
		})
		require.ErrorIs(t, innerErr, errInner)
		return nil
	})
	require.NoError(t, err)

	draws, err := dr.ListByOwner(ctx, owner.ID, false)
	require.NoError(t, err)
	require.Len(t, draws, 1)
	assert.Equal(t, []byte("kept"), draws[0].Numbers)

	err = conn.InRoundTx(ctx, func(ctx context.Context) error {
		if _, err := dr.Create(ctx, model.Draw{OwnerID: owner.ID, Numbers: []byte("rolled back")}); err != nil {
			return err
		}
		return errInner
	})
	require.ErrorIs(t, err, errInner)

	draws, err = dr.ListByOwner(ctx, owner.ID, false)
	require.NoError(t, err)
	assert.Len(t, draws, 1)
}

func TestDrawRepository_SingleOpenMaster(t *testing.T) {
	ctx := context.Background()
	conn := connect(t)
	ur := repo.NewUserRepository(conn)
	dr := repo.NewDrawRepository(conn)

	admin, err := ur.Create(ctx, newUser("admin@example.com", model.RoleAdmin))
	require.NoError(t, err)

	_, err = dr.Create(ctx, model.Draw{OwnerID: admin.ID, Numbers: []byte("m1"), IsMaster: true, Round: 1})
	require.NoError(t, err)
	_, err = dr.Create(ctx, model.Draw{OwnerID: admin.ID, Numbers: []byte("m2"), IsMaster: true, Round: 2})
	require.Error(t, err)
}

func TestRoundLifecycle(t *testing.T) {
	ctx := model.WithOrigin(context.Background(), "127.0.0.1")
	conn := connect(t)

	suite, err := cryptox.New(cryptox.WithBcryptCost(bcrypt.MinCost), cryptox.WithRSABits(cryptox.MinRSABits))
	require.NoError(t, err)

	log := testutil.MakeNoopLogger()
	users := repo.NewUserRepository(conn)
	draws := repo.NewDrawRepository(conn)
	publisher := audit.NewPublisher(log, repo.NewSecurityEventRepository(conn))
	access := service.NewAccess(publisher, log)
	lottery := service.NewLottery(draws, users, conn, suite, suite, access, nil, log)

	register := func(email string, role model.Role) model.User {
		pub, priv, err := suite.GenerateKeyPair()
		require.NoError(t, err)
		u := newUser(email, role)
		u.PublicKey, u.PrivateKey = pub, priv
		saved, err := users.Create(ctx, u)
		require.NoError(t, err)
		return saved
	}
	admin := register("admin@example.com", model.RoleAdmin)
	alice := register("alice@example.com", model.RoleParticipant)
	bob := register("bob@example.com", model.RoleParticipant)

	round, err := lottery.OpenNewRound(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, round.Number)

	master, err := lottery.RevealMasterDraw(ctx, admin)
	require.NoError(t, err)

	winning, err := model.ParseNumbers(master.Numbers)
	require.NoError(t, err)

	_, err = lottery.SubmitDraw(ctx, alice, winning)
	require.NoError(t, err)
	_, err = lottery.SubmitDraw(ctx, bob, []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	result, err := lottery.CloseRound(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Settled)
	assert.False(t, result.Resumed)

	expectedWinners := 1
	if master.Numbers == "1 2 3 4 5 6" {
		expectedWinners = 2
	}
	require.Len(t, result.Winners, expectedWinners)
	assert.Equal(t, "alice@example.com", result.Winners[0].Email)

	played, err := lottery.PlayedDraws(ctx, alice)
	require.NoError(t, err)
	require.Len(t, played, 1)
	assert.True(t, played[0].MatchesMaster)

	_, err = lottery.CloseRound(ctx, admin)
	assert.ErrorIs(t, err, model.ErrNoActiveRound)

	next, err := lottery.OpenNewRound(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 2, next.Number)
	assert.Zero(t, next.Discarded)
}
