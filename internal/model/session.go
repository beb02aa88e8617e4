package model

import (
	"context"
	"time"
)

// PendingSessionDuration is a TTL for pending 2FA enrollments.
const PendingSessionDuration = time.Minute * 10

// DefaultMaxLoginAttempts is the per-session failure budget.
const DefaultMaxLoginAttempts = 3

// EnrollmentStore persists pending 2FA enrollments.
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment PendingEnrollment) error
	// Consume marks the enrollment used and returns its user ID.
	// It returns ErrNotFound when the enrollment is unknown, expired or already consumed.
	Consume(ctx context.Context, jti string) (int64, error)
}

// PendingEnrollment describes a 2FA setup that may be shown exactly once.
type PendingEnrollment struct {
	JTI       string
	UserID    int64
	ExpiresAt time.Time
	Consumed  bool
}

// LockoutStore tracks failed logins per identity across sessions.
type LockoutStore interface {
	Failures(ctx context.Context, email string) (int, error)
	RecordFailure(ctx context.Context, email string) (int, error)
	Clear(ctx context.Context, email string) error
}

// SessionState is the position of a login session in the authentication state machine.
type SessionState int

const (
	// StateAnonymous has no counter and no identity.
	StateAnonymous SessionState = iota
	// StateAuthenticating has an attempt counter.
	StateAuthenticating
	// StateAuthenticated is bound to an identity.
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// LoginSession is the per-client login context. It is a value; operations return the next one.
type LoginSession struct {
	Counting bool
	Attempts int
	UserID   int64
}

// State derives the state machine position.
func (s LoginSession) State() SessionState {
	switch {
	case s.UserID != 0:
		return StateAuthenticated
	case s.Counting:
		return StateAuthenticating
	default:
		return StateAnonymous
	}
}

// LoginStatus is the outcome class of a login attempt.
type LoginStatus string

const (
	LoginSuccess LoginStatus = "success"
	LoginFailed  LoginStatus = "failed"
	LoginLocked  LoginStatus = "locked"
)

// LoginResult is the outcome of AttemptLogin.
type LoginResult struct {
	Status    LoginStatus
	Remaining int
	User      User
}

// Err maps a non-successful result onto the error taxonomy.
func (r LoginResult) Err() error {
	switch r.Status {
	case LoginFailed:
		return ErrAuthentication
	case LoginLocked:
		return ErrLocked
	default:
		return nil
	}
}
