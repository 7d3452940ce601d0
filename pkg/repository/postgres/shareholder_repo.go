package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/captable/pkg/apperr"
	"github.com/artem13815/captable/pkg/shareholder"
)

// ShareholderProfileRepository stores the optional 1:1 profile rows keyed by
// user id.
type ShareholderProfileRepository struct {
	pool *pgxpool.Pool
}

func NewShareholderProfileRepository(pool *pgxpool.Pool) (*ShareholderProfileRepository, error) {
	r := &ShareholderProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ShareholderProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS shareholder_profiles (
			id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT ''
		);
	`)
	return err
}

func (r *ShareholderProfileRepository) Upsert(ctx context.Context, p shareholder.Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO shareholder_profiles (id, address, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET address = EXCLUDED.address, phone = EXCLUDED.phone
	`, p.ID, p.Address, p.Phone)
	return err
}

func (r *ShareholderProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (shareholder.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, address, phone FROM shareholder_profiles WHERE id = $1
	`, userID)
	var p shareholder.Profile
	if err := row.Scan(&p.ID, &p.Address, &p.Phone); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shareholder.Profile{}, fmt.Errorf("%w: shareholder profile", apperr.ErrNotFound)
		}
		return shareholder.Profile{}, err
	}
	return p, nil
}
