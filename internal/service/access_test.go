package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/lottery-server/internal/mocks"
	"github.com/dtroode/lottery-server/internal/model"
	"github.com/dtroode/lottery-server/internal/testutil"
)

func TestAccess_Authorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		actor   model.User
		roles   []model.Role
		allowed bool
	}{
		{name: "admin on admin op", actor: model.User{ID: 1, Role: model.RoleAdmin}, roles: []model.Role{model.RoleAdmin}, allowed: true},
		{name: "participant on admin op", actor: model.User{ID: 2, Role: model.RoleParticipant}, roles: []model.Role{model.RoleAdmin}},
		{name: "either role", actor: model.User{ID: 2, Role: model.RoleParticipant}, roles: []model.Role{model.RoleParticipant, model.RoleAdmin}, allowed: true},
		{name: "anonymous", actor: model.User{Role: model.RoleAdmin}, roles: []model.Role{model.RoleAdmin}},
		{name: "no roles", actor: model.User{ID: 1, Role: model.RoleAdmin}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auditor := mocks.NewAuditor(t)
			if !tt.allowed {
				auditor.On("Emit", mock.Anything, mock.MatchedBy(func(e model.SecurityEvent) bool {
					return e.Kind == model.EventAccessDenied && e.UserID == tt.actor.ID && e.Origin == "203.0.113.9"
				})).Once()
			}

			a := NewAccess(auditor, testutil.MakeNoopLogger())
			ctx := model.WithOrigin(context.Background(), "203.0.113.9")

			err := a.Authorize(ctx, tt.actor, tt.roles...)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, model.ErrForbidden)
		})
	}
}
