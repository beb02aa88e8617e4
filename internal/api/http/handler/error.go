package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/lottery-server/internal/api/http/middleware"
	"github.com/dtroode/lottery-server/internal/model"
)

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Remaining *int   `json:"remaining,omitempty"`
}

func statusFor(err error) (int, errorResponse) {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, errorResponse{Error: vErr.Error(), Field: vErr.Field}
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, model.ErrAuthentication):
		return http.StatusUnauthorized, errorResponse{Error: model.ErrAuthentication.Error()}
	case errors.Is(err, model.ErrLocked):
		return http.StatusLocked, errorResponse{Error: model.ErrLocked.Error()}
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: model.ErrForbidden.Error()}
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "resource not found"}
	case errors.Is(err, model.ErrNoActiveRound):
		return http.StatusNotFound, errorResponse{Error: model.ErrNoActiveRound.Error()}
	case errors.Is(err, model.ErrEnrollmentUnavailable):
		return http.StatusGone, errorResponse{Error: model.ErrEnrollmentUnavailable.Error()}
	case errors.Is(err, model.ErrNoEntries),
		errors.Is(err, model.ErrRoundUnsettled),
		errors.Is(err, model.ErrConcurrency),
		errors.Is(err, model.ErrAlreadyAuthenticated):
		return http.StatusConflict, errorResponse{Error: err.Error()}
	case errors.Is(err, model.ErrArchiveUnavailable):
		return http.StatusServiceUnavailable, errorResponse{Error: model.ErrArchiveUnavailable.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
	}
}

func handleError(c *gin.Context, err error) {
	status, resp := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, resp)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func currentUser(c *gin.Context) (model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	}
	return user, ok
}
