package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/metrics"
	"github.com/dtroode/lottery-server/internal/model"
)

// AuthConfig bounds the login state machine.
type AuthConfig struct {
	// MaxAttempts is the per-session failure budget.
	MaxAttempts int
	// LockoutThreshold is the per-identity failure budget. Zero disables it.
	LockoutThreshold int
}

type Auth struct {
	users       model.UserStore
	enrollments model.EnrollmentStore
	lockouts    model.LockoutStore
	audit       model.Auditor
	crypto      model.Crypto
	tokens      model.TokenManager
	metrics     *metrics.Metrics
	logger      *logger.Logger
	cfg         AuthConfig
	now         func() time.Time
}

// NewAuth creates the authentication service. lockouts and m may be nil.
func NewAuth(
	users model.UserStore,
	enrollments model.EnrollmentStore,
	lockouts model.LockoutStore,
	audit model.Auditor,
	crypto model.Crypto,
	tokens model.TokenManager,
	m *metrics.Metrics,
	logger *logger.Logger,
	cfg AuthConfig,
) *Auth {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = model.DefaultMaxLoginAttempts
	}

	return &Auth{
		users:       users,
		enrollments: enrollments,
		lockouts:    lockouts,
		audit:       audit,
		crypto:      crypto,
		tokens:      tokens,
		metrics:     m,
		logger:      logger,
		cfg:         cfg,
		now:         time.Now,
	}
}

// Register creates an identity with fresh credentials and keys.
// The new identity is an admin only when actor is an admin.
func (a *Auth) Register(ctx context.Context, params model.RegistrationParams, actor *model.User) (model.Registration, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	if err := validateRegistration(params); err != nil {
		a.logger.Info("Auth service: registration rejected",
			"email", params.Email,
			"error", err.Error())
		return model.Registration{}, err
	}

	_, err := a.users.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", params.Email)
		return model.Registration{}, model.ErrDuplicateEmail
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return model.Registration{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	role := model.RoleParticipant
	if actor != nil && actor.Role == model.RoleAdmin {
		role = model.RoleAdmin
	}

	passwordHash, err := a.crypto.HashPassword(params.Password)
	if err != nil {
		return model.Registration{}, fmt.Errorf("failed to hash password: %w", err)
	}

	secret, err := a.crypto.NewTOTPSecret()
	if err != nil {
		return model.Registration{}, fmt.Errorf("failed to generate totp secret: %w", err)
	}

	public, private, err := a.crypto.GenerateKeyPair()
	if err != nil {
		return model.Registration{}, fmt.Errorf("failed to generate keypair: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{
		Email:        params.Email,
		PasswordHash: passwordHash,
		TOTPSecret:   secret,
		Postcode:     params.Postcode,
		Firstname:    params.Firstname,
		Lastname:     params.Lastname,
		Phone:        params.Phone,
		DOB:          params.DOB,
		Role:         role,
		PublicKey:    public,
		PrivateKey:   private,
		RegisteredAt: a.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.Registration{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.Registration{}, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.issueEnrollment(ctx, user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue enrollment",
			"user_id", user.ID,
			"error", err.Error())
		return model.Registration{}, err
	}

	a.audit.Emit(ctx, model.SecurityEvent{
		Kind:   model.EventRegistration,
		UserID: user.ID,
		Email:  user.Email,
		Origin: model.OriginFromContext(ctx),
		Detail: string(role),
	})

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"role", string(role))

	return model.Registration{User: user, EnrollmentToken: token}, nil
}

func (a *Auth) issueEnrollment(ctx context.Context, userID int64) (string, error) {
	token, jti, err := a.tokens.GenerateEnrollmentToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate enrollment token: %w", err)
	}

	err = a.enrollments.Create(ctx, model.PendingEnrollment{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: a.now().Add(model.PendingSessionDuration),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create pending enrollment: %w", err)
	}

	return token, nil
}

// ProvisioningURI returns the 2FA enrollment data exactly once per enrollment token.
func (a *Auth) ProvisioningURI(ctx context.Context, enrollmentToken string) (model.Enrollment, error) {
	userID, jti, err := a.tokens.ParseEnrollmentToken(enrollmentToken)
	if err != nil {
		a.logger.Info("Auth service: invalid enrollment token",
			"error", err.Error())
		return model.Enrollment{}, model.ErrEnrollmentUnavailable
	}

	owner, err := a.enrollments.Consume(ctx, jti)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Enrollment{}, model.ErrEnrollmentUnavailable
		}
		return model.Enrollment{}, fmt.Errorf("failed to consume enrollment: %w", err)
	}
	if owner != userID {
		a.logger.Warn("Auth service: enrollment owner mismatch",
			"jti", jti,
			"token_user_id", userID,
			"owner_user_id", owner)
		return model.Enrollment{}, model.ErrEnrollmentUnavailable
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Enrollment{}, model.ErrEnrollmentUnavailable
		}
		return model.Enrollment{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	uri, err := a.crypto.ProvisioningURI(user.TOTPSecret, user.Email)
	if err != nil {
		return model.Enrollment{}, fmt.Errorf("failed to build provisioning uri: %w", err)
	}

	return model.Enrollment{Email: user.Email, URI: uri}, nil
}

// BeginLogin starts the attempt counter if the session has none.
func (a *Auth) BeginLogin(session model.LoginSession) model.LoginSession {
	if !session.Counting {
		session.Counting = true
		session.Attempts = 0
	}
	return session
}

// AttemptLogin verifies all four factors and returns the next session value.
// Failed and locked outcomes are reported through the result, not the error.
func (a *Auth) AttemptLogin(ctx context.Context, session model.LoginSession, creds model.Credentials) (model.LoginSession, model.LoginResult, error) {
	if session.State() == model.StateAuthenticated {
		return session, model.LoginResult{}, model.ErrAlreadyAuthenticated
	}
	session = a.BeginLogin(session)

	if session.Attempts >= a.cfg.MaxAttempts {
		a.loginRejected(ctx, creds.Email, "session locked")
		return session, model.LoginResult{Status: model.LoginLocked}, nil
	}

	if a.identityLocked(ctx, creds.Email) {
		a.loginRejected(ctx, creds.Email, "identity locked")
		return session, model.LoginResult{Status: model.LoginLocked}, nil
	}

	user, ok, err := a.verify(ctx, creds)
	if err != nil {
		return session, model.LoginResult{}, err
	}

	if !ok {
		session.Attempts++
		a.recordIdentityFailure(ctx, creds.Email)

		remaining := a.cfg.MaxAttempts - session.Attempts
		status := model.LoginFailed
		if remaining <= 0 {
			remaining = 0
			status = model.LoginLocked
		}

		a.metrics.ObserveLogin(string(model.LoginFailed))
		a.audit.Emit(ctx, model.SecurityEvent{
			Kind:   model.EventLoginFailed,
			Email:  creds.Email,
			Origin: model.OriginFromContext(ctx),
		})
		a.logger.Info("Auth service: login failed",
			"attempts", session.Attempts,
			"remaining", remaining)

		return session, model.LoginResult{Status: status, Remaining: remaining}, nil
	}

	userID := user.ID
	user, err = a.users.RecordLogin(ctx, userID, a.now().UTC(), model.OriginFromContext(ctx))
	if err != nil {
		a.logger.Error("Auth service: failed to record login",
			"user_id", userID,
			"error", err.Error())
		return session, model.LoginResult{}, fmt.Errorf("failed to record login: %w", err)
	}

	if a.lockouts != nil {
		if err := a.lockouts.Clear(ctx, user.Email); err != nil {
			a.logger.Error("Auth service: failed to clear identity lockout",
				"user_id", user.ID,
				"error", err.Error())
		}
	}

	a.metrics.ObserveLogin(string(model.LoginSuccess))
	a.audit.Emit(ctx, model.SecurityEvent{
		Kind:   model.EventLoginSuccess,
		UserID: user.ID,
		Email:  user.Email,
		Origin: model.OriginFromContext(ctx),
	})
	a.logger.Info("Auth service: user logged in",
		"user_id", user.ID)

	return model.LoginSession{UserID: user.ID}, model.LoginResult{Status: model.LoginSuccess, User: user}, nil
}

// verify checks every factor. Every mismatch reports ok=false without saying which one.
func (a *Auth) verify(ctx context.Context, creds model.Credentials) (model.User, bool, error) {
	user, err := a.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, false, nil
		}
		return model.User{}, false, fmt.Errorf("failed to get user by email: %w", err)
	}

	passwordOK := a.crypto.VerifyPassword(creds.Password, user.PasswordHash)
	postcodeOK := subtle.ConstantTimeCompare([]byte(creds.Postcode), []byte(user.Postcode)) == 1
	totpOK := a.crypto.VerifyTOTP(user.TOTPSecret, creds.TOTP)

	return user, passwordOK && postcodeOK && totpOK, nil
}

func (a *Auth) loginRejected(ctx context.Context, email, reason string) {
	a.metrics.ObserveLogin(string(model.LoginLocked))
	a.audit.Emit(ctx, model.SecurityEvent{
		Kind:   model.EventLoginFailed,
		Email:  email,
		Origin: model.OriginFromContext(ctx),
		Detail: reason,
	})
	a.logger.Info("Auth service: login locked",
		"reason", reason)
}

// identityLocked fails open: a lockout store outage falls back to the session counter.
func (a *Auth) identityLocked(ctx context.Context, email string) bool {
	if a.lockouts == nil || a.cfg.LockoutThreshold <= 0 || email == "" {
		return false
	}

	n, err := a.lockouts.Failures(ctx, email)
	if err != nil {
		a.logger.Error("Auth service: failed to read identity lockout",
			"error", err.Error())
		return false
	}
	return n >= a.cfg.LockoutThreshold
}

func (a *Auth) recordIdentityFailure(ctx context.Context, email string) {
	if a.lockouts == nil || a.cfg.LockoutThreshold <= 0 || email == "" {
		return
	}

	if _, err := a.lockouts.RecordFailure(ctx, email); err != nil {
		a.logger.Error("Auth service: failed to record identity failure",
			"error", err.Error())
	}
}

// ResetAttempts clears the session counter. It requires no credentials and
// leaves identity lockouts in place.
func (a *Auth) ResetAttempts(ctx context.Context, session model.LoginSession) model.LoginSession {
	previous := session.Attempts
	session.Counting = true
	session.Attempts = 0

	a.audit.Emit(ctx, model.SecurityEvent{
		Kind:   model.EventAttemptsReset,
		UserID: session.UserID,
		Origin: model.OriginFromContext(ctx),
		Detail: fmt.Sprintf("previous attempts %d", previous),
	})

	return session
}

// Logout returns the session to Anonymous.
func (a *Auth) Logout(ctx context.Context, session model.LoginSession) (model.LoginSession, error) {
	if session.State() != model.StateAuthenticated {
		return session, model.ErrAuthentication
	}

	event := model.SecurityEvent{
		Kind:   model.EventLogout,
		UserID: session.UserID,
		Origin: model.OriginFromContext(ctx),
	}
	if user, err := a.users.GetByID(ctx, session.UserID); err == nil {
		event.Email = user.Email
	}
	a.audit.Emit(ctx, event)

	a.logger.Info("Auth service: user logged out",
		"user_id", session.UserID)

	return model.LoginSession{}, nil
}

// ChangePassword replaces the password after checking the current one.
func (a *Auth) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if !a.crypto.VerifyPassword(current, user.PasswordHash) {
		a.logger.Info("Auth service: current password mismatch",
			"user_id", userID)
		return model.ErrAuthentication
	}
	if current == next || a.crypto.VerifyPassword(next, user.PasswordHash) {
		return model.NewValidationError("new_password", "matches the current password")
	}
	if err := validatePassword("new_password", next); err != nil {
		return err
	}

	hash, err := a.crypto.HashPassword(next)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.users.UpdatePassword(ctx, userID, hash); err != nil {
		a.logger.Error("Auth service: failed to update password",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.audit.Emit(ctx, model.SecurityEvent{
		Kind:   model.EventPasswordChanged,
		UserID: user.ID,
		Email:  user.Email,
		Origin: model.OriginFromContext(ctx),
	})

	return nil
}

// Account returns the caller's profile.
func (a *Auth) Account(ctx context.Context, userID int64) (model.Profile, error) {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user.Profile(), nil
}

// User loads the identity bound to an authenticated session.
func (a *Auth) User(ctx context.Context, userID int64) (model.User, error) {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// EnsureAdmin registers the bootstrap admin when no admin exists yet.
func (a *Auth) EnsureAdmin(ctx context.Context, params model.RegistrationParams) (bool, model.Registration, error) {
	admins, err := a.users.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, model.Registration{}, fmt.Errorf("failed to list admins: %w", err)
	}
	if len(admins) > 0 {
		return false, model.Registration{}, nil
	}

	reg, err := a.Register(ctx, params, &model.User{Role: model.RoleAdmin})
	if err != nil {
		return false, model.Registration{}, fmt.Errorf("failed to register admin: %w", err)
	}

	a.logger.Info("Auth service: bootstrap admin created",
		"user_id", reg.User.ID,
		"email", reg.User.Email)

	return true, reg, nil
}
