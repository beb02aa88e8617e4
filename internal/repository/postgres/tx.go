package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.Transactor = (*Connection)(nil)

// roundLockKey identifies the advisory lock serializing round lifecycle operations.
const roundLockKey int64 = 0x6c6f74746f

const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

type txKey struct{}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok
}

// InRoundTx runs fn in a transaction holding the round advisory lock.
// Nested calls join the outer transaction.
func (s *Connection) InRoundTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return mapError(fmt.Errorf("failed to begin round transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if s.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return mapError(fmt.Errorf("failed to set lock timeout: %w", err))
		}
	}
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", roundLockKey); err != nil {
		return mapError(fmt.Errorf("failed to acquire round lock: %w", err))
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return mapError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(fmt.Errorf("failed to commit round transaction: %w", err))
	}
	return nil
}

// InUnitOfWork runs fn under a savepoint of the current transaction, or in its own transaction.
func (s *Connection) InUnitOfWork(ctx context.Context, fn func(ctx context.Context) error) error {
	var (
		unit pgx.Tx
		err  error
	)
	if outer, ok := txFromContext(ctx); ok {
		unit, err = outer.Begin(ctx)
	} else {
		unit, err = s.Pool.Begin(ctx)
	}
	if err != nil {
		return mapError(fmt.Errorf("failed to begin unit of work: %w", err))
	}
	defer func() { _ = unit.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(context.WithValue(ctx, txKey{}, unit)); err != nil {
		return mapError(err)
	}

	if err := unit.Commit(ctx); err != nil {
		return mapError(fmt.Errorf("failed to commit unit of work: %w", err))
	}
	return nil
}

// mapError translates lock and serialization failures into model.ErrConcurrency.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return fmt.Errorf("%w: %s", model.ErrConcurrency, pgErr.Message)
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
