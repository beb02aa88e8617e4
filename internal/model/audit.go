package model

import (
	"context"
	"time"
)

// SecurityEventKind enumerates audited security events.
type SecurityEventKind string

const (
	EventRegistration    SecurityEventKind = "registration"
	EventLoginFailed     SecurityEventKind = "login_failed"
	EventLoginSuccess    SecurityEventKind = "login_success"
	EventLogout          SecurityEventKind = "logout"
	EventAccessDenied    SecurityEventKind = "access_denied"
	EventAttemptsReset   SecurityEventKind = "attempts_reset"
	EventPasswordChanged SecurityEventKind = "password_changed"
	EventEntryVoided     SecurityEventKind = "entry_voided"
)

// SecurityEvent is one audit record.
type SecurityEvent struct {
	ID        int64             `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Kind      SecurityEventKind `json:"kind"`
	UserID    int64             `json:"user_id,omitempty"`
	Email     string            `json:"email,omitempty"`
	Origin    string            `json:"origin,omitempty"`
	Detail    string            `json:"detail,omitempty"`
}

// SecuritySink receives audit events.
type SecuritySink interface {
	Record(ctx context.Context, event SecurityEvent) error
}

// SecurityEventStore persists audit events for review and archival.
type SecurityEventStore interface {
	SecuritySink
	Recent(ctx context.Context, limit int) ([]SecurityEvent, error)
	ListBefore(ctx context.Context, cutoff time.Time) ([]SecurityEvent, error)
	// DeleteIDs removes exactly the given events.
	DeleteIDs(ctx context.Context, ids []int64) (int, error)
}

// Auditor emits security events to every configured sink.
type Auditor interface {
	Emit(ctx context.Context, event SecurityEvent)
}
