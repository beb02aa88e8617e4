package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/lottery-server/internal/api/http/middleware"
	"github.com/dtroode/lottery-server/internal/api/http/session"
	"github.com/dtroode/lottery-server/internal/model"
)

var (
	participant = model.User{ID: 2, Email: "p@example.com", Role: model.RoleParticipant}
	admin       = model.User{ID: 1, Email: "admin@example.com", Role: model.RoleAdmin}
)

// newEngine returns a gin engine with cookie sessions; a non-nil user is injected as the caller.
func newEngine(user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(session.CookieName, cookie.NewStore([]byte("test-secret"))))
	if user != nil {
		u := *user
		r.Use(func(c *gin.Context) {
			c.Set(middleware.UserKey, u)
			c.Next()
		})
	}
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
