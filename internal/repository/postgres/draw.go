package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.DrawStore = (*DrawRepository)(nil)

const drawColumns = `id, owner_id, numbers, is_master, played, matches_master, round, created_at`

type DrawRepository struct {
	db *Connection
}

func NewDrawRepository(db *Connection) *DrawRepository {
	return &DrawRepository{
		db: db,
	}
}

func scanDraw(row pgx.Row) (model.Draw, error) {
	var d model.Draw
	err := row.Scan(&d.ID, &d.OwnerID, &d.Numbers, &d.IsMaster, &d.Played, &d.MatchesMaster, &d.Round, &d.CreatedAt)
	return d, err
}

func (r *DrawRepository) queryDraws(ctx context.Context, query string, args ...any) ([]model.Draw, error) {
	rows, err := r.db.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var draws []model.Draw
	for rows.Next() {
		d, err := scanDraw(rows)
		if err != nil {
			return nil, err
		}
		draws = append(draws, d)
	}
	return draws, rows.Err()
}

func (r *DrawRepository) Create(ctx context.Context, draw model.Draw) (model.Draw, error) {
	query := `INSERT INTO draws (owner_id, numbers, is_master, played, matches_master, round)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + drawColumns

	saved, err := scanDraw(r.db.conn(ctx).QueryRow(ctx, query,
		draw.OwnerID, draw.Numbers, draw.IsMaster, draw.Played, draw.MatchesMaster, draw.Round,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Draw{}, fmt.Errorf("%w: another master draw is open", model.ErrConcurrency)
		}
		return model.Draw{}, fmt.Errorf("failed to create draw: %w", err)
	}

	return saved, nil
}

func (r *DrawRepository) GetOpenMaster(ctx context.Context) (model.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws WHERE is_master AND NOT played FOR UPDATE`

	d, err := scanDraw(r.db.conn(ctx).QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Draw{}, model.ErrNotFound
		}
		return model.Draw{}, fmt.Errorf("failed to get open master draw: %w", err)
	}

	return d, nil
}

func (r *DrawRepository) GetLatestMaster(ctx context.Context) (model.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws WHERE is_master ORDER BY round DESC, id DESC LIMIT 1`

	d, err := scanDraw(r.db.conn(ctx).QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Draw{}, model.ErrNotFound
		}
		return model.Draw{}, fmt.Errorf("failed to get latest master draw: %w", err)
	}

	return d, nil
}

func (r *DrawRepository) DeleteMaster(ctx context.Context, id int64) error {
	query := `DELETE FROM draws WHERE id = $1 AND is_master AND NOT played`

	tag, err := r.db.conn(ctx).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete master draw: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *DrawRepository) MarkMasterPlayed(ctx context.Context, id int64) error {
	query := `UPDATE draws SET played = TRUE WHERE id = $1 AND is_master AND NOT played`

	tag, err := r.db.conn(ctx).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark master draw played: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *DrawRepository) CountOpenEntries(ctx context.Context) (int, error) {
	query := `SELECT count(*) FROM draws WHERE NOT is_master AND NOT played AND round = 0`

	var n int
	if err := r.db.conn(ctx).QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count open entries: %w", err)
	}

	return n, nil
}

func (r *DrawRepository) ClaimEntries(ctx context.Context, round int) (int, error) {
	query := `UPDATE draws SET round = $1 WHERE NOT is_master AND NOT played AND round = 0`

	tag, err := r.db.conn(ctx).Exec(ctx, query, round)
	if err != nil {
		return 0, fmt.Errorf("failed to claim entries: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *DrawRepository) ListClaimed(ctx context.Context, round int) ([]model.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws
			  WHERE NOT is_master AND NOT played AND round = $1
			  ORDER BY id`

	draws, err := r.queryDraws(ctx, query, round)
	if err != nil {
		return nil, fmt.Errorf("failed to list claimed entries: %w", err)
	}

	return draws, nil
}

func (r *DrawRepository) SettleEntry(ctx context.Context, id int64, matches bool) (bool, error) {
	query := `UPDATE draws SET played = TRUE, matches_master = $2
			  WHERE id = $1 AND NOT is_master AND NOT played`

	tag, err := r.db.conn(ctx).Exec(ctx, query, id, matches)
	if err != nil {
		return false, fmt.Errorf("failed to settle entry: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *DrawRepository) ListByOwner(ctx context.Context, ownerID int64, played bool) ([]model.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws
			  WHERE owner_id = $1 AND NOT is_master AND played = $2
			  ORDER BY created_at, id`

	draws, err := r.queryDraws(ctx, query, ownerID, played)
	if err != nil {
		return nil, fmt.Errorf("failed to list draws by owner: %w", err)
	}

	return draws, nil
}

func (r *DrawRepository) DeletePlayed(ctx context.Context, ownerID int64) (int, error) {
	query := `DELETE FROM draws WHERE owner_id = $1 AND NOT is_master AND played`

	tag, err := r.db.conn(ctx).Exec(ctx, query, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete played draws: %w", err)
	}

	return int(tag.RowsAffected()), nil
}
