package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginSession_State(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   LoginSession
		want SessionState
	}{
		{name: "fresh", in: LoginSession{}, want: StateAnonymous},
		{name: "counting", in: LoginSession{Counting: true, Attempts: 2}, want: StateAuthenticating},
		{name: "bound", in: LoginSession{UserID: 7}, want: StateAuthenticated},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.State())
		})
	}
}

func TestLoginResult_Err(t *testing.T) {
	assert.NoError(t, LoginResult{Status: LoginSuccess}.Err())
	assert.ErrorIs(t, LoginResult{Status: LoginFailed}.Err(), ErrAuthentication)
	assert.ErrorIs(t, LoginResult{Status: LoginLocked}.Err(), ErrLocked)
}

func TestValidationError_Class(t *testing.T) {
	err := NewValidationError("phone", "must match XXXX-XXX-XXXX")
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "phone: must match XXXX-XXX-XXXX", err.Error())
	assert.True(t, errors.Is(ErrDuplicateEmail, ErrValidation))
	assert.False(t, errors.Is(ErrAuthentication, ErrValidation))
}
