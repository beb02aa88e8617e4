package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/lottery-server/internal/api/http/middleware"
	"github.com/dtroode/lottery-server/internal/api/http/session"
	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/model"
)

// AuthService defines registration, login and account operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegistrationParams, actor *model.User) (model.Registration, error)
	ProvisioningURI(ctx context.Context, enrollmentToken string) (model.Enrollment, error)
	AttemptLogin(ctx context.Context, session model.LoginSession, creds model.Credentials) (model.LoginSession, model.LoginResult, error)
	ResetAttempts(ctx context.Context, session model.LoginSession) model.LoginSession
	Logout(ctx context.Context, session model.LoginSession) (model.LoginSession, error)
	ChangePassword(ctx context.Context, userID int64, current, next string) error
	Account(ctx context.Context, userID int64) (model.Profile, error)
	User(ctx context.Context, userID int64) (model.User, error)
}

// Auth handles authentication endpoints.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{authService: authService, logger: logger}
}

type registerRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	Firstname       string `json:"firstname" binding:"required"`
	Lastname        string `json:"lastname" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	DOB             string `json:"dob" binding:"required"`
	Postcode        string `json:"postcode" binding:"required"`
}

type registerResponse struct {
	User            model.Profile `json:"user"`
	EnrollmentToken string        `json:"enrollment_token,omitempty"`
}

// Register creates an identity. An administrator caller creates another administrator.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid registration form: passwords must match and every field is required")
		return
	}

	var actor *model.User
	if user, ok := middleware.CurrentUser(c); ok {
		actor = &user
	}

	reg, err := h.authService.Register(c.Request.Context(), model.RegistrationParams{
		Email:     req.Email,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
		DOB:       req.DOB,
		Postcode:  req.Postcode,
	}, actor)
	if err != nil {
		handleError(c, err)
		return
	}

	// Self-registration reaches the token only through the session; an admin
	// hands it to the new account holder.
	resp := registerResponse{User: reg.User.Profile()}
	if actor == nil {
		if err := session.SetEnrollmentToken(c, reg.EnrollmentToken); err != nil {
			h.logger.Error("auth handler: failed to remember enrollment", "user_id", reg.User.ID, "error", err)
			handleError(c, fmt.Errorf("failed to store enrollment token: %w", err))
			return
		}
	} else {
		resp.EnrollmentToken = reg.EnrollmentToken
	}

	c.JSON(http.StatusCreated, resp)
}

// Setup2FA shows the TOTP provisioning URI once.
func (h *Auth) Setup2FA(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		var err error
		if token, err = session.TakeEnrollmentToken(c); err != nil {
			handleError(c, err)
			return
		}
	}
	if token == "" {
		handleError(c, model.ErrEnrollmentUnavailable)
		return
	}

	enrollment, err := h.authService.ProvisioningURI(c.Request.Context(), token)
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.JSON(http.StatusOK, enrollment)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Postcode string `json:"postcode" binding:"required"`
	TOTP     string `json:"totp" binding:"required"`
}

type loginResponse struct {
	User model.Profile `json:"user"`
}

// Login runs one login attempt against the session's counter.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email, password, postcode and totp are required")
		return
	}

	next, result, err := h.authService.AttemptLogin(c.Request.Context(), session.Load(c), model.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Postcode: req.Postcode,
		TOTP:     req.TOTP,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	if err := session.Save(c, next); err != nil {
		handleError(c, err)
		return
	}

	if result.Status == model.LoginSuccess {
		c.JSON(http.StatusOK, loginResponse{User: result.User.Profile()})
		return
	}

	status, resp := statusFor(result.Err())
	remaining := result.Remaining
	resp.Remaining = &remaining
	c.JSON(status, resp)
}

// Reset clears the session's attempt counter.
func (h *Auth) Reset(c *gin.Context) {
	next := h.authService.ResetAttempts(c.Request.Context(), session.Load(c))
	if err := session.Save(c, next); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Logout ends the authenticated session.
func (h *Auth) Logout(c *gin.Context) {
	next, err := h.authService.Logout(c.Request.Context(), session.Load(c))
	if err != nil {
		handleError(c, err)
		return
	}
	if err := session.Save(c, next); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Account returns the caller's profile.
func (h *Auth) Account(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.authService.Account(c.Request.Context(), user.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// ChangePassword replaces the caller's password.
func (h *Auth) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "current_password, new_password and a matching confirm_password are required")
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
