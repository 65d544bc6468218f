package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"salon-booking-api/internal/auth"
	"salon-booking-api/internal/model"
)

const (
	CtxUserIDKey = "uid"
	CtxRoleKey   = "role"
	CtxEmailKey  = "email"
)

// Protect parses Authorization: Bearer <token> and stores the verified
// claims in request locals. Tokens are stateless; nothing is looked up.
func Protect(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "no token")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "authorization must be 'Bearer <token>'")
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxRoleKey, claims.Role)
		c.Locals(CtxEmailKey, claims.Email)
		return c.Next()
	}
}

// RequireRole gates a route to the given role set. An empty set admits any
// authenticated identity.
func RequireRole(allowed ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(allowed) == 0 {
			return c.Next()
		}
		role, ok := c.Locals(CtxRoleKey).(model.Role)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "role not available")
		}
		for _, r := range allowed {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient role")
	}
}
