// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserByExternalID handles GET /api/users/:externalId. Clients hold the
// provider-issued identity id after sign-in and use this endpoint to resolve
// the local profile.
func (s *Server) GetUserByExternalID(c *fiber.Ctx) error {
	ctx := c.Context()

	// Authentication is enforced by the route middleware; any signed-in
	// caller may resolve any identity.
	if _, err := s.currentUser(c); err != nil {
		return respondError(c, err)
	}

	externalID := c.Params("externalId")
	user, err := s.userService.GetUserByExternalID(ctx, externalID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user.Summary())
}

// GetFeatureFlags handles GET /api/feature-flags, returning the effective
// flag states for the caller (percentage rollouts resolve per user).
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	viewerID := s.optionalUserID(c)
	return c.JSON(s.featureFlags.Snapshot(viewerID))
}
