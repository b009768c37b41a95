package middleware

import (
	"strings"

	"studyspace-client/internal/config"
	"studyspace-client/internal/pkg/jwt"
	"studyspace-client/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates bearer-token authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Token missing")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.Stub.JWTSecret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Token expired")
			}
			return response.Unauthorized(c, "Token invalid")
		}

		c.Locals("username", claims.Username)

		return c.Next()
	}
}
