package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nikhilr05/civicreport/internal/httperr"
	"github.com/nikhilr05/civicreport/internal/services"
)

// AdminRequired gates moderation-sensitive routes. A missing header is
// 401; a present but invalid, expired or non-admin token is 403.
func AdminRequired(tokens *services.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return httperr.Respond(c, nil, httperr.NewMissingCredentials())
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" {
			return httperr.Respond(c, nil, httperr.NewInvalidToken())
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			return httperr.Respond(c, nil, httperr.NewInvalidToken())
		}
		if claims.Role != "admin" {
			return httperr.Respond(c, nil, httperr.NewForbidden("admins only"))
		}

		c.Locals("admin_id", claims.Subject)
		return c.Next()
	}
}
