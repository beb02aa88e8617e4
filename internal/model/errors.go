package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is the class of every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateEmail is returned when registering an email that is already taken.
	ErrDuplicateEmail = fmt.Errorf("%w: email is already registered", ErrValidation)
	// ErrAuthentication is the undifferentiated login failure.
	ErrAuthentication = errors.New("invalid credentials")
	// ErrLocked is returned while a login context is locked out.
	ErrLocked = errors.New("login attempts exhausted")
	// ErrDecryption is returned when a ciphertext cannot be opened with the given key.
	ErrDecryption = errors.New("unable to decrypt")
	// ErrConcurrency is returned when a lifecycle operation lost a race. Safe to retry.
	ErrConcurrency = errors.New("concurrent modification, retry")
	// ErrForbidden is returned when the acting identity lacks the required role.
	ErrForbidden = errors.New("access denied")
	// ErrNoActiveRound is returned when no unplayed master draw exists.
	ErrNoActiveRound = errors.New("no active round")
	// ErrNoEntries is returned when closing a round nobody entered.
	ErrNoEntries = errors.New("no entries for this round")
	// ErrRoundUnsettled is returned when opening a round while the previous one still has claimed entries.
	ErrRoundUnsettled = errors.New("previous round is not fully settled")
	// ErrAlreadyAuthenticated is returned on login attempts from an authenticated session.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
	// ErrArchiveUnavailable is returned when no archive storage is configured.
	ErrArchiveUnavailable = errors.New("archive storage is not configured")
	// ErrEnrollmentUnavailable is returned when a 2FA enrollment token is missing, expired or used.
	ErrEnrollmentUnavailable = errors.New("two-factor enrollment unavailable")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Is reports ValidationError as part of the ErrValidation class.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
