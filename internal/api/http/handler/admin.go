package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/model"
)

// AdminService defines administrator reporting operations.
type AdminService interface {
	Participants(ctx context.Context, admin model.User) ([]model.Profile, error)
	UserActivity(ctx context.Context, admin model.User) ([]model.Activity, error)
	RecentSecurityEvents(ctx context.Context, admin model.User, limit int) ([]model.SecurityEvent, error)
	ArchiveSecurityEvents(ctx context.Context, admin model.User, before time.Time) (model.ArchiveResult, error)
	SecurityArchives(ctx context.Context, admin model.User) ([]model.ArchiveObject, error)
}

// Admin handles administrator reporting endpoints.
type Admin struct {
	adminService AdminService
	logger       *logger.Logger
}

// NewAdmin creates a new Admin handler.
func NewAdmin(adminService AdminService, logger *logger.Logger) *Admin {
	return &Admin{adminService: adminService, logger: logger}
}

// Participants lists participant profiles.
func (h *Admin) Participants(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profiles, err := h.adminService.Participants(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}
	if profiles == nil {
		profiles = []model.Profile{}
	}
	c.JSON(http.StatusOK, gin.H{"users": profiles})
}

// Activity lists participant login telemetry.
func (h *Admin) Activity(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	activity, err := h.adminService.UserActivity(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}
	if activity == nil {
		activity = []model.Activity{}
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

// SecurityEvents lists the most recent security events. ?limit= overrides the default.
func (h *Admin) SecurityEvents(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	events, err := h.adminService.RecentSecurityEvents(c.Request.Context(), user, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	if events == nil {
		events = []model.SecurityEvent{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

type archiveRequest struct {
	Before *time.Time `json:"before"`
}

// ArchiveSecurityEvents moves events older than the cutoff to object storage.
// An empty body archives everything up to now.
func (h *Admin) ArchiveSecurityEvents(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req archiveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "before must be an RFC 3339 timestamp")
			return
		}
	}

	var before time.Time
	if req.Before != nil {
		before = *req.Before
	}

	result, err := h.adminService.ArchiveSecurityEvents(c.Request.Context(), user, before)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SecurityArchives lists archived event batches.
func (h *Admin) SecurityArchives(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	objects, err := h.adminService.SecurityArchives(c.Request.Context(), user)
	if err != nil {
		handleError(c, err)
		return
	}
	if objects == nil {
		objects = []model.ArchiveObject{}
	}
	c.JSON(http.StatusOK, gin.H{"archives": objects})
}
