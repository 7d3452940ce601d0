package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes administrators from shareholders.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleShareholder Role = "shareholder"
)

// User is a domain entity representing a system user. Accounts are never
// hard-deleted; deactivation and disabling are soft flags.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	IsActive     bool
	IsDisabled   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
