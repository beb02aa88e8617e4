package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/lottery-server/internal/api/http/session"
	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/model"
)

// UserKey is the gin context key holding the authenticated model.User.
const UserKey = "user"

// UserLoader resolves session identities.
type UserLoader interface {
	User(ctx context.Context, userID int64) (model.User, error)
}

// Authenticate resolves the session identity and injects it into the request.
type Authenticate struct {
	users          UserLoader
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(users UserLoader, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{users: users, contextManager: contextManager, logger: logger}
}

// Required aborts with 401 unless the session is bound to an existing user.
func (m *Authenticate) Required(c *gin.Context) {
	if !m.identify(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.Next()
}

// Optional injects the user when the session has one and always continues.
func (m *Authenticate) Optional(c *gin.Context) {
	m.identify(c)
	c.Next()
}

func (m *Authenticate) identify(c *gin.Context) bool {
	ls := session.Load(c)
	if ls.UserID == 0 {
		return false
	}

	ctx := c.Request.Context()
	user, err := m.users.User(ctx, ls.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			m.logger.Warn("authenticate middleware: session user no longer exists", "user_id", ls.UserID)
			if err := session.Save(c, model.LoginSession{}); err != nil {
				m.logger.Error("authenticate middleware: failed to clear session", "error", err)
			}
			return false
		}
		m.logger.Error("authenticate middleware: failed to load user", "user_id", ls.UserID, "error", err)
		return false
	}

	c.Set(UserKey, user)
	c.Request = c.Request.WithContext(m.contextManager.SetUserIDToContext(ctx, user.ID))
	return true
}

// CurrentUser returns the user injected by Authenticate.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
