package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/captable/pkg/apperr"
	"github.com/artem13815/captable/pkg/issuance"
)

// IssuanceRepository stores share issuances. Rows are immutable after
// creation except for the back-filled certificate URL; Delete exists only
// for the creation rollback path.
type IssuanceRepository struct {
	pool *pgxpool.Pool
}

func NewIssuanceRepository(pool *pgxpool.Pool) (*IssuanceRepository, error) {
	r := &IssuanceRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *IssuanceRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS share_issuances (
			id UUID PRIMARY KEY,
			shareholder_id UUID NOT NULL REFERENCES users(id),
			number_of_shares BIGINT NOT NULL CHECK (number_of_shares > 0),
			price_per_share DOUBLE PRECISION CHECK (price_per_share >= 0),
			issue_date TIMESTAMPTZ NOT NULL,
			certificate_url TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_share_issuances_shareholder ON share_issuances(shareholder_id);
	`)
	return err
}

const issuanceColumns = `id, shareholder_id, number_of_shares, price_per_share, issue_date, certificate_url`

func (r *IssuanceRepository) Create(ctx context.Context, iss issuance.Issuance) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO share_issuances (`+issuanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, iss.ID, iss.ShareholderID, iss.NumberOfShares, iss.PricePerShare, iss.IssueDate, iss.CertificateURL)
	return err
}

func (r *IssuanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM share_issuances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: issuance", apperr.ErrNotFound)
	}
	return nil
}

func (r *IssuanceRepository) GetByID(ctx context.Context, id uuid.UUID) (issuance.Issuance, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+issuanceColumns+`
		FROM share_issuances WHERE id = $1
	`, id)
	return scanIssuance(row)
}

func (r *IssuanceRepository) List(ctx context.Context, limit, offset int) ([]issuance.Issuance, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+issuanceColumns+`
		FROM share_issuances
		ORDER BY issue_date, id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIssuances(rows)
}

func (r *IssuanceRepository) ListByShareholder(ctx context.Context, shareholderID uuid.UUID, limit, offset int) ([]issuance.Issuance, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+issuanceColumns+`
		FROM share_issuances
		WHERE shareholder_id = $1
		ORDER BY issue_date, id
		LIMIT $2 OFFSET $3
	`, shareholderID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectIssuances(rows)
}

func (r *IssuanceRepository) SetCertificateURL(ctx context.Context, id uuid.UUID, url string) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE share_issuances SET certificate_url = $2 WHERE id = $1
	`, id, url)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: issuance", apperr.ErrNotFound)
	}
	return nil
}

func (r *IssuanceRepository) GroupTotals(ctx context.Context) ([]issuance.ShareholderTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.shareholder_id, COALESCE(u.full_name, '') AS full_name,
			SUM(i.number_of_shares) AS total_shares
		FROM share_issuances i
		LEFT JOIN users u ON u.id = i.shareholder_id
		GROUP BY i.shareholder_id, u.full_name
		ORDER BY total_shares DESC, i.shareholder_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var totals []issuance.ShareholderTotal
	for rows.Next() {
		var t issuance.ShareholderTotal
		if err := rows.Scan(&t.ShareholderID, &t.FullName, &t.TotalShares); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *IssuanceRepository) TotalByShareholder(ctx context.Context, shareholderID uuid.UUID) (int64, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(number_of_shares), 0)
		FROM share_issuances WHERE shareholder_id = $1
	`, shareholderID)
	var total int64
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func scanIssuance(row pgx.Row) (issuance.Issuance, error) {
	var iss issuance.Issuance
	if err := row.Scan(&iss.ID, &iss.ShareholderID, &iss.NumberOfShares,
		&iss.PricePerShare, &iss.IssueDate, &iss.CertificateURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return issuance.Issuance{}, fmt.Errorf("%w: issuance", apperr.ErrNotFound)
		}
		return issuance.Issuance{}, err
	}
	iss.IssueDate = iss.IssueDate.UTC()
	return iss, nil
}

func collectIssuances(rows pgx.Rows) ([]issuance.Issuance, error) {
	var out []issuance.Issuance
	for rows.Next() {
		iss, err := scanIssuance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, iss)
	}
	return out, rows.Err()
}
