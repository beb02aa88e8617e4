package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/lottery-server/internal/audit"
	"github.com/dtroode/lottery-server/internal/cryptox"
	"github.com/dtroode/lottery-server/internal/model"
	"github.com/dtroode/lottery-server/internal/repository/memory"
	"github.com/dtroode/lottery-server/internal/testutil"
	"github.com/dtroode/lottery-server/internal/token"
)

// env wires every service over the in-memory store and real crypto.
type env struct {
	db       *memory.DB
	users    *memory.UserStore
	draws    *memory.DrawStore
	events   *memory.SecurityEventStore
	lockouts *memory.LockoutStore
	suite    *cryptox.Suite
	access   *Access
	auth     *Auth
	lottery  *Lottery
}

func newEnv(t *testing.T, cfg AuthConfig) *env {
	t.Helper()

	suite, err := cryptox.New(cryptox.WithBcryptCost(bcrypt.MinCost), cryptox.WithRSABits(cryptox.MinRSABits))
	require.NoError(t, err)

	log := testutil.MakeNoopLogger()
	db := memory.NewDB()
	e := &env{
		db:       db,
		users:    memory.NewUserStore(db),
		draws:    memory.NewDrawStore(db),
		events:   memory.NewSecurityEventStore(db),
		lockouts: memory.NewLockoutStore(15 * time.Minute),
		suite:    suite,
	}

	publisher := audit.NewPublisher(log, e.events)
	e.access = NewAccess(publisher, log)
	e.auth = NewAuth(e.users, memory.NewEnrollmentStore(db), e.lockouts, publisher, suite, token.NewJWT("test-secret"), nil, log, cfg)
	e.lottery = NewLottery(e.draws, e.users, db, suite, suite, e.access, nil, log)

	return e
}

const testPassword = "Secret1!"

func registrationParams(email string) model.RegistrationParams {
	return model.RegistrationParams{
		Email:     email,
		Password:  testPassword,
		Firstname: "Alice",
		Lastname:  "Jones",
		Phone:     "0191-123-4567",
		DOB:       "01/01/1999",
		Postcode:  "NE1 2AB",
	}
}

func (e *env) register(t *testing.T, email string, role model.Role) model.User {
	t.Helper()

	var actor *model.User
	if role == model.RoleAdmin {
		actor = &model.User{Role: model.RoleAdmin}
	}
	reg, err := e.auth.Register(context.Background(), registrationParams(email), actor)
	require.NoError(t, err)
	require.Equal(t, role, reg.User.Role)
	return reg.User
}

func validCreds(t *testing.T, u model.User) model.Credentials {
	t.Helper()

	code, err := totp.GenerateCode(u.TOTPSecret, time.Now())
	require.NoError(t, err)
	return model.Credentials{Email: u.Email, Password: testPassword, Postcode: u.Postcode, TOTP: code}
}

func (e *env) eventKinds(t *testing.T) []model.SecurityEventKind {
	t.Helper()

	events, err := e.events.Recent(context.Background(), 1000)
	require.NoError(t, err)

	kinds := make([]model.SecurityEventKind, len(events))
	for i, ev := range events {
		kinds[len(events)-1-i] = ev.Kind
	}
	return kinds
}
