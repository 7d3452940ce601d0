package shareholder

import (
	"context"

	"github.com/google/uuid"

	"github.com/artem13815/captable/pkg/auth"
)

// Profile is the optional 1:1 extension of a shareholder user.
type Profile struct {
	ID      uuid.UUID
	Address string
	Phone   string
}

// WithShares is a shareholder together with the profile (when present) and
// the sum of all their issuance rows.
type WithShares struct {
	User        auth.User
	Profile     *Profile
	TotalShares int64
}

// ProfileRepository persists shareholder profiles.
type ProfileRepository interface {
	Upsert(ctx context.Context, p Profile) error
	// GetByUserID returns apperr.ErrNotFound when no profile exists.
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
}

// ShareTotals is the slice of the issuance store this module reads.
type ShareTotals interface {
	TotalByShareholder(ctx context.Context, shareholderID uuid.UUID) (int64, error)
}
