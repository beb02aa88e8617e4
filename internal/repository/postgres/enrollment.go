package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.EnrollmentStore = (*EnrollmentRepository)(nil)

type EnrollmentRepository struct {
	db *Connection
}

func NewEnrollmentRepository(db *Connection) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

func (r *EnrollmentRepository) Create(ctx context.Context, enrollment model.PendingEnrollment) error {
	query := `INSERT INTO pending_enrollments (jti, user_id, expires_at, consumed)
			  VALUES ($1, $2, $3, $4)`

	_, err := r.db.conn(ctx).Exec(ctx, query,
		enrollment.JTI, enrollment.UserID, enrollment.ExpiresAt, enrollment.Consumed,
	)
	if err != nil {
		return fmt.Errorf("failed to create pending enrollment: %w", err)
	}

	return nil
}

// Consume flips the consumed flag only for a live, unused enrollment.
func (r *EnrollmentRepository) Consume(ctx context.Context, jti string) (int64, error) {
	query := `UPDATE pending_enrollments SET consumed = TRUE
			  WHERE jti = $1 AND NOT consumed AND expires_at > now()
			  RETURNING user_id`

	var userID int64
	err := r.db.conn(ctx).QueryRow(ctx, query, jti).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, model.ErrNotFound
		}
		return 0, fmt.Errorf("failed to consume enrollment: %w", err)
	}

	return userID, nil
}
