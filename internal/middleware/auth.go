// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"log"
	"strings"

	"xyzhotel/internal/models"
	"xyzhotel/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// TokenParser validates an access token and returns its claims.
type TokenParser interface {
	ParseToken(token string) (*models.AdminClaims, error)
}

// AuthMiddleware guards the back-office routes. It extracts the bearer
// token from the Authorization header, validates it and stores the
// administrator claims in the request context.
type AuthMiddleware struct {
	tokens TokenParser
}

func NewAuthMiddleware(tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		log.Println("Missing Authorization header")
		return utils.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Println("Invalid Authorization format")
		return utils.Unauthorized(c, "invalid authorization format")
	}

	claims, err := m.tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return utils.Unauthorized(c, "invalid token")
	}
	if claims.Role != "admin" {
		log.Printf("Token for %s lacks the admin role", claims.Username)
		return utils.Error(c, fiber.StatusForbidden, "FORBIDDEN", "access denied")
	}

	c.Locals(utils.ClaimsKey, claims)
	return c.Next()
}
