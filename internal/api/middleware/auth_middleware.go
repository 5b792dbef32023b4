package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/smbsocial/postpilot/configs"
	"github.com/smbsocial/postpilot/pkg/utils"
)

type AuthMiddleware struct {
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// AuthMiddleware guards the operator API with a bearer admin token.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")

		if tokenString == "" || tokenString == header {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing bearer token",
			})
		}

		if _, err := utils.ValidateAdminToken(m.cfg.SecretKey, tokenString); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}
		return c.Next()
	}
}
