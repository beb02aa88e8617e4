package audit

import (
	"context"
	"log/slog"

	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.SecuritySink = (*FileSink)(nil)

// FileSink writes events as JSON lines to a security log.
type FileSink struct {
	log *logger.Logger
}

// NewFileSink creates a FileSink writing through log.
func NewFileSink(log *logger.Logger) *FileSink {
	return &FileSink{log: log}
}

// Record writes one line per event. Failed logins are logged at warn level.
func (s *FileSink) Record(ctx context.Context, event model.SecurityEvent) error {
	level := slog.LevelInfo
	if event.Kind == model.EventLoginFailed || event.Kind == model.EventAccessDenied {
		level = slog.LevelWarn
	}

	s.log.LogAttrs(ctx, level, "SECURITY - "+string(event.Kind),
		slog.Time("event_time", event.Timestamp),
		slog.Int64("user_id", event.UserID),
		slog.String("email", event.Email),
		slog.String("origin", event.Origin),
		slog.String("detail", event.Detail),
	)
	return nil
}
