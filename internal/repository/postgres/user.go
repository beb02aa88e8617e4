package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/lottery-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, email, password_hash, totp_secret, postcode, firstname, lastname, phone, dob, role,
	public_key, private_key, registered_at, current_login, last_login, ip_current, ip_last, successful_logins`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.TOTPSecret, &user.Postcode,
		&user.Firstname, &user.Lastname, &user.Phone, &user.DOB, &user.Role,
		&user.PublicKey, &user.PrivateKey, &user.RegisteredAt, &user.CurrentLogin, &user.LastLogin,
		&user.IPCurrent, &user.IPLast, &user.SuccessfulLogins,
	)
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.conn(ctx).QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (email, password_hash, totp_secret, postcode, firstname, lastname, phone, dob, role,
			  public_key, private_key, registered_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.conn(ctx).QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.TOTPSecret, user.Postcode, user.Firstname, user.Lastname,
		user.Phone, user.DOB, user.Role, user.PublicKey, user.PrivateKey, user.RegisteredAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrDuplicateEmail
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`

	rows, err := r.db.conn(ctx).Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// RecordLogin shifts current login telemetry into the last-login slots in one statement.
func (r *UserRepository) RecordLogin(ctx context.Context, id int64, at time.Time, origin string) (model.User, error) {
	query := `UPDATE users
			  SET last_login = current_login,
			      ip_last = ip_current,
			      current_login = $2,
			      ip_current = $3,
			      successful_logins = successful_logins + 1
			  WHERE id = $1
			  RETURNING ` + userColumns

	user, err := scanUser(r.db.conn(ctx).QueryRow(ctx, query, id, at, origin))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to record login: %w", err)
	}

	return user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash []byte) error {
	query := `UPDATE users SET password_hash = $2 WHERE id = $1`

	tag, err := r.db.conn(ctx).Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
