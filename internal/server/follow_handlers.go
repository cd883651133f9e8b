// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/users/:id/follow.
// A first call follows the target, a second call unfollows; the response
// always carries the authoritative state after the call.
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	ctx := c.Context()
	user, err := s.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.followService.ToggleFollow(ctx, user.ID, targetID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// GetFollowState handles GET /api/users/:id/follow. Profile pages use it to
// render the initial follow-button state.
func (s *Server) GetFollowState(c *fiber.Ctx) error {
	ctx := c.Context()
	user, err := s.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.followService.IsFollowing(ctx, user.ID, targetID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"following": following})
}

// GetFollowStats handles GET /api/users/:id/follow-stats
func (s *Server) GetFollowStats(c *fiber.Ctx) error {
	ctx := c.Context()
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	followers, following, err := s.followService.Counts(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"followers": followers,
		"following": following,
	})
}
