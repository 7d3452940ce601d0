package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/captable/pkg/apperr"
)

// AuthUseCase describes authentication, token refresh and user registration.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (User, error)
	EnsureAdmin(ctx context.Context, email, password, fullName string) error
}

type AuthResult struct {
	User   User
	Tokens TokenPair
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     Role
}

type authService struct {
	repo   UserRepository
	tokens TokenIssuer
	log    zerolog.Logger
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenIssuer, log zerolog.Logger) AuthUseCase {
	return &authService{repo: repo, tokens: tokens, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: incorrect email or password", apperr.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, fmt.Errorf("%w: incorrect email or password", apperr.ErrUnauthorized)
	}
	if user.IsDisabled || !user.IsActive {
		return AuthResult{}, fmt.Errorf("%w: account is disabled", apperr.ErrUnauthorized)
	}
	pair, err := s.tokens.Pair(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Tokens: pair}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	email, err := s.tokens.VerifyRefresh(ctx, refreshToken)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: invalid refresh token", apperr.ErrUnauthorized)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: user not found", apperr.ErrUnauthorized)
	}
	if user.IsDisabled || !user.IsActive {
		return AuthResult{}, fmt.Errorf("%w: account is disabled", apperr.ErrUnauthorized)
	}
	pair, err := s.tokens.Pair(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Tokens: pair}, nil
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		return User{}, fmt.Errorf("%w: email and password are required", apperr.ErrValidation)
	}
	if in.Role != RoleAdmin && in.Role != RoleShareholder {
		return User{}, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, in.Role)
	}

	// If user exists, fail fast (best-effort check); the unique index on
	// email is the real guarantee.
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(passwordHash),
		FullName:     in.FullName,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// EnsureAdmin creates the initial admin account if it does not exist yet.
// Called once at startup.
func (s *authService) EnsureAdmin(ctx context.Context, email, password, fullName string) error {
	_, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	if _, err := s.Register(ctx, RegisterInput{
		Email:    email,
		Password: password,
		FullName: fullName,
		Role:     RoleAdmin,
	}); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Msg("created initial admin user")
	return nil
}
