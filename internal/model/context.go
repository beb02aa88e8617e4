package model

import (
	"context"
)

type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID int64) context.Context
	GetUserIDFromContext(ctx context.Context) (int64, bool)
}

type originKey struct{}

// WithOrigin stores the request origin address for audit events.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFromContext returns the origin stored by WithOrigin.
func OriginFromContext(ctx context.Context) string {
	origin, _ := ctx.Value(originKey{}).(string)
	return origin
}
