package auth

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations may be in-memory, SQL, NoSQL, etc.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Update(ctx context.Context, user User) error
	ListByRole(ctx context.Context, role Role, limit, offset int) ([]User, error)
}
