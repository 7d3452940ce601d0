package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/captable/pkg/auth"
)

const userLocal = "currentUser"

// NewAuthMiddleware returns a Fiber middleware that validates a Bearer access
// token (HS256) and resolves it to a live user. On success the user entity is
// stored in c.Locals; disabled or deactivated accounts are rejected.
func NewAuthMiddleware(gen *Generator, users auth.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		var tokenStr string
		if strings.Contains(authHeader, " ") {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = strings.TrimSpace(parts[1])
			} else {
				// Fallback: treat entire header as token (for non-standard clients)
				tokenStr = strings.TrimSpace(authHeader)
			}
		} else {
			tokenStr = strings.TrimSpace(authHeader)
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		email, err := gen.Verify(tokenStr, KindAccess)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		user, err := users.GetByEmail(c.Context(), email)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "user not found"})
		}
		if user.IsDisabled || !user.IsActive {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "account is disabled"})
		}
		c.Locals(userLocal, user)
		return c.Next()
	}
}

// RequireAdmin rejects non-admin users. Must run after NewAuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(userLocal).(auth.User)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "authentication required"})
		}
		if user.Role != auth.RoleAdmin {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "admin privileges required"})
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user stored by NewAuthMiddleware.
func CurrentUser(c *fiber.Ctx) (auth.User, bool) {
	user, ok := c.Locals(userLocal).(auth.User)
	return user, ok
}
