package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.SecurityEventStore = (*SecurityEventRepository)(nil)

const securityEventColumns = `id, occurred_at, kind, user_id, email, origin, detail`

type SecurityEventRepository struct {
	db *Connection
}

func NewSecurityEventRepository(db *Connection) *SecurityEventRepository {
	return &SecurityEventRepository{
		db: db,
	}
}

func (r *SecurityEventRepository) Record(ctx context.Context, event model.SecurityEvent) error {
	query := `INSERT INTO security_events (occurred_at, kind, user_id, email, origin, detail)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	var userID *int64
	if event.UserID != 0 {
		userID = &event.UserID
	}

	_, err := r.db.conn(ctx).Exec(ctx, query,
		event.Timestamp, event.Kind, userID, event.Email, event.Origin, event.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record security event: %w", err)
	}

	return nil
}

func (r *SecurityEventRepository) Recent(ctx context.Context, limit int) ([]model.SecurityEvent, error) {
	query := `SELECT ` + securityEventColumns + ` FROM security_events
			  ORDER BY occurred_at DESC, id DESC LIMIT $1`

	events, err := r.query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent security events: %w", err)
	}

	return events, nil
}

func (r *SecurityEventRepository) ListBefore(ctx context.Context, cutoff time.Time) ([]model.SecurityEvent, error) {
	query := `SELECT ` + securityEventColumns + ` FROM security_events
			  WHERE occurred_at < $1 ORDER BY occurred_at, id`

	events, err := r.query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list security events: %w", err)
	}

	return events, nil
}

func (r *SecurityEventRepository) DeleteIDs(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM security_events WHERE id = ANY($1)`

	tag, err := r.db.conn(ctx).Exec(ctx, query, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to delete security events: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *SecurityEventRepository) query(ctx context.Context, query string, args ...any) ([]model.SecurityEvent, error) {
	rows, err := r.db.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.SecurityEvent
	for rows.Next() {
		var (
			e      model.SecurityEvent
			userID *int64
		)
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Kind, &userID, &e.Email, &e.Origin, &e.Detail); err != nil {
			return nil, err
		}
		if userID != nil {
			e.UserID = *userID
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
