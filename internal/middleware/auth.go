// Package middleware provides authentication, logging, metrics and
// rate-limiting middleware for the application.
package middleware

import (
	"strings"

	"ripple/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// ExternalIDKeyLocal is the Fiber locals key carrying the authenticated
// caller's provider-issued identity id. Handlers resolve it to a local user.
const ExternalIDKeyLocal = "externalID"

// AuthRequired is a middleware that enforces authentication for protected
// routes. The bearer token's subject claim carries the external identity id
// issued by the identity provider.
func AuthRequired(c *fiber.Ctx) error {
	externalID, ok := bearerSubject(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or missing bearer token",
		})
	}

	c.Locals(ExternalIDKeyLocal, externalID)
	return c.Next()
}

// OptionalAuth resolves the caller's identity when a valid bearer token is
// present and continues anonymously otherwise. Feeds and search are readable
// without authentication but annotate per-viewer state when it is available.
func OptionalAuth(c *fiber.Ctx) error {
	if externalID, ok := bearerSubject(c); ok {
		c.Locals(ExternalIDKeyLocal, externalID)
	}
	return c.Next()
}

// bearerSubject parses and validates the Authorization header and returns
// the token's subject claim.
func bearerSubject(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
