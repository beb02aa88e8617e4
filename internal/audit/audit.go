// Package audit fans security events out to the configured sinks.
package audit

import (
	"context"
	"time"

	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.Auditor = (*Publisher)(nil)

// Publisher delivers each event to every sink. A failing sink does not stop the others.
type Publisher struct {
	sinks  []model.SecuritySink
	logger *logger.Logger
	now    func() time.Time
}

// NewPublisher creates a Publisher over sinks. Nil sinks are skipped.
func NewPublisher(logger *logger.Logger, sinks ...model.SecuritySink) *Publisher {
	p := &Publisher{logger: logger, now: time.Now}
	for _, s := range sinks {
		if s != nil {
			p.sinks = append(p.sinks, s)
		}
	}
	return p
}

// Emit stamps the event and records it in every sink.
func (p *Publisher) Emit(ctx context.Context, event model.SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now().UTC()
	}

	for _, s := range p.sinks {
		if err := s.Record(ctx, event); err != nil {
			p.logger.Error("Audit: failed to record security event",
				"kind", string(event.Kind),
				"user_id", event.UserID,
				"error", err.Error())
		}
	}
}
