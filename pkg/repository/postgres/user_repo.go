package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/captable/pkg/apperr"
	"github.com/artem13815/captable/pkg/auth"
)

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_disabled BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);
	`)
	return err
}

const userColumns = `id, email, password_hash, full_name, role, is_active, is_disabled, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, user.ID, strings.ToLower(user.Email), user.PasswordHash, user.FullName,
		string(user.Role), user.IsActive, user.IsDisabled, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: email already registered", apperr.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE email = $1
	`, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, user auth.User) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $2, full_name = $3, is_active = $4, is_disabled = $5, updated_at = $6
		WHERE id = $1
	`, user.ID, strings.ToLower(user.Email), user.FullName, user.IsActive, user.IsDisabled, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: email already registered", apperr.ErrConflict)
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: user", apperr.ErrNotFound)
	}
	return nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role auth.Role, limit, offset int) ([]auth.User, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE role = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`, string(role), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []auth.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (auth.User, error) {
	var u auth.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &role,
		&u.IsActive, &u.IsDisabled, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, fmt.Errorf("%w: user", apperr.ErrNotFound)
		}
		return auth.User{}, err
	}
	u.Role = auth.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
