package issuance

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Issuance is an immutable-after-creation grant of shares to one shareholder.
// Total holdings are the sum of a shareholder's issuance rows, computed on
// read; there is no transfer or revocation path.
type Issuance struct {
	ID             uuid.UUID
	ShareholderID  uuid.UUID
	NumberOfShares int64
	PricePerShare  *float64
	IssueDate      time.Time
	CertificateURL string
}

// ShareholderTotal is one GROUP BY row of the distribution query. FullName is
// empty when the user record is missing.
type ShareholderTotal struct {
	ShareholderID uuid.UUID
	FullName      string
	TotalShares   int64
}

// DistributionEntry is one shareholder's slice of all shares ever issued.
type DistributionEntry struct {
	ShareholderID   uuid.UUID
	ShareholderName string
	TotalShares     int64
	Percentage      float64
}

// Repository persists issuances.
type Repository interface {
	Create(ctx context.Context, iss Issuance) error
	// Delete removes a row; only used to roll back a failed creation.
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (Issuance, error)
	List(ctx context.Context, limit, offset int) ([]Issuance, error)
	ListByShareholder(ctx context.Context, shareholderID uuid.UUID, limit, offset int) ([]Issuance, error)
	SetCertificateURL(ctx context.Context, id uuid.UUID, url string) error
	GroupTotals(ctx context.Context) ([]ShareholderTotal, error)
	TotalByShareholder(ctx context.Context, shareholderID uuid.UUID) (int64, error)
}
