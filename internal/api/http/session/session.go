// Package session maps the cookie session onto model.LoginSession.
package session

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/dtroode/lottery-server/internal/model"
)

// CookieName is the name of the session cookie.
const CookieName = "lottery_session"

const (
	keyUserID     = "user_id"
	keyCounting   = "counting"
	keyAttempts   = "attempts"
	keyEnrollment = "enrollment"
)

// Load reads the login context of the current request.
func Load(c *gin.Context) model.LoginSession {
	s := sessions.Default(c)

	var ls model.LoginSession
	if v, ok := s.Get(keyUserID).(int64); ok {
		ls.UserID = v
	}
	if v, ok := s.Get(keyCounting).(bool); ok {
		ls.Counting = v
	}
	if v, ok := s.Get(keyAttempts).(int); ok {
		ls.Attempts = v
	}
	return ls
}

// Save replaces the login context of the current request.
func Save(c *gin.Context, ls model.LoginSession) error {
	s := sessions.Default(c)

	if ls.UserID != 0 {
		s.Set(keyUserID, ls.UserID)
	} else {
		s.Delete(keyUserID)
	}

	if ls.Counting {
		s.Set(keyCounting, true)
		s.Set(keyAttempts, ls.Attempts)
	} else {
		s.Delete(keyCounting)
		s.Delete(keyAttempts)
	}

	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// SetEnrollmentToken remembers a pending 2FA enrollment for this client.
func SetEnrollmentToken(c *gin.Context, token string) error {
	s := sessions.Default(c)
	s.Set(keyEnrollment, token)
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// TakeEnrollmentToken returns and forgets the pending enrollment token.
func TakeEnrollmentToken(c *gin.Context) (string, error) {
	s := sessions.Default(c)
	token, _ := s.Get(keyEnrollment).(string)
	if token == "" {
		return "", nil
	}

	s.Delete(keyEnrollment)
	if err := s.Save(); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	return token, nil
}
