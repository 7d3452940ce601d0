package shareholder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/captable/pkg/apperr"
	"github.com/artem13815/captable/pkg/auth"
)

// UseCase is the admin-facing shareholder management surface.
type UseCase interface {
	List(ctx context.Context, limit, offset int) ([]WithShares, error)
	GetByID(ctx context.Context, id uuid.UUID) (WithShares, error)
	Create(ctx context.Context, in CreateInput) (WithShares, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (WithShares, error)
	// Deactivate soft-disables the account; rows are never hard-deleted.
	Deactivate(ctx context.Context, id uuid.UUID) (WithShares, error)
}

type ProfileInput struct {
	Address string
	Phone   string
}

type CreateInput struct {
	Email    string
	Password string
	FullName string
	Profile  *ProfileInput
}

// UpdateInput carries partial updates; nil fields are left untouched.
type UpdateInput struct {
	Email      *string
	FullName   *string
	IsActive   *bool
	IsDisabled *bool
	Profile    *ProfileInput
}

type service struct {
	users    auth.UserRepository
	profiles ProfileRepository
	shares   ShareTotals
}

func NewService(users auth.UserRepository, profiles ProfileRepository, shares ShareTotals) UseCase {
	return &service{users: users, profiles: profiles, shares: shares}
}

func (s *service) List(ctx context.Context, limit, offset int) ([]WithShares, error) {
	users, err := s.users.ListByRole(ctx, auth.RoleShareholder, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]WithShares, 0, len(users))
	for _, u := range users {
		ws, err := s.assemble(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (WithShares, error) {
	u, err := s.shareholderByID(ctx, id)
	if err != nil {
		return WithShares{}, err
	}
	return s.assemble(ctx, u)
}

func (s *service) Create(ctx context.Context, in CreateInput) (WithShares, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		return WithShares{}, fmt.Errorf("%w: email and password are required", apperr.ErrValidation)
	}
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return WithShares{}, fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return WithShares{}, err
	}
	now := time.Now().UTC()
	user := auth.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(passwordHash),
		FullName:     in.FullName,
		Role:         auth.RoleShareholder,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return WithShares{}, err
	}

	ws := WithShares{User: user}
	if in.Profile != nil {
		p := Profile{ID: user.ID, Address: in.Profile.Address, Phone: in.Profile.Phone}
		if err := s.profiles.Upsert(ctx, p); err != nil {
			return WithShares{}, err
		}
		ws.Profile = &p
	}
	return ws, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (WithShares, error) {
	u, err := s.shareholderByID(ctx, id)
	if err != nil {
		return WithShares{}, err
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return WithShares{}, fmt.Errorf("%w: email cannot be empty", apperr.ErrValidation)
		}
		u.Email = email
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.IsDisabled != nil {
		u.IsDisabled = *in.IsDisabled
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return WithShares{}, err
	}
	if in.Profile != nil {
		p := Profile{ID: u.ID, Address: in.Profile.Address, Phone: in.Profile.Phone}
		if err := s.profiles.Upsert(ctx, p); err != nil {
			return WithShares{}, err
		}
	}
	return s.assemble(ctx, u)
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) (WithShares, error) {
	u, err := s.shareholderByID(ctx, id)
	if err != nil {
		return WithShares{}, err
	}
	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return WithShares{}, err
	}
	return s.assemble(ctx, u)
}

func (s *service) shareholderByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil || u.Role != auth.RoleShareholder {
		return auth.User{}, fmt.Errorf("%w: shareholder not found", apperr.ErrNotFound)
	}
	return u, nil
}

func (s *service) assemble(ctx context.Context, u auth.User) (WithShares, error) {
	ws := WithShares{User: u}

	p, err := s.profiles.GetByUserID(ctx, u.ID)
	switch {
	case err == nil:
		ws.Profile = &p
	case !errors.Is(err, apperr.ErrNotFound):
		return WithShares{}, err
	}

	total, err := s.shares.TotalByShareholder(ctx, u.ID)
	if err != nil {
		return WithShares{}, err
	}
	ws.TotalShares = total
	return ws, nil
}
