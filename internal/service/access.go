package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/model"
)

// Access enforces per-operation role sets.
type Access struct {
	audit  model.Auditor
	logger *logger.Logger
}

func NewAccess(audit model.Auditor, logger *logger.Logger) *Access {
	return &Access{
		audit:  audit,
		logger: logger,
	}
}

// Authorize returns ErrForbidden unless actor holds one of roles.
// A zero actor is never authorized.
func (a *Access) Authorize(ctx context.Context, actor model.User, roles ...model.Role) error {
	if actor.ID != 0 && slices.Contains(roles, actor.Role) {
		return nil
	}

	required := make([]string, len(roles))
	for i, r := range roles {
		required[i] = string(r)
	}

	a.logger.Warn("Access service: access denied",
		"user_id", actor.ID,
		"role", string(actor.Role),
		"required", strings.Join(required, ","))

	a.audit.Emit(ctx, model.SecurityEvent{
		Kind:   model.EventAccessDenied,
		UserID: actor.ID,
		Email:  actor.Email,
		Origin: model.OriginFromContext(ctx),
		Detail: fmt.Sprintf("requires %s", strings.Join(required, " or ")),
	})

	return model.ErrForbidden
}
