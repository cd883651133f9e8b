// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetHomeFeed handles GET /api/feed. The home timeline covers the viewer's
// own posts plus everyone they follow, newest first. Anonymous callers get
// an empty feed.
func (s *Server) GetHomeFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, defaultPageSize)
	viewerID := s.optionalUserID(c)

	posts, err := s.feedService.HomeFeed(ctx, viewerID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(posts)
}

// GetProfileFeed handles GET /api/users/:username/posts
func (s *Server) GetProfileFeed(c *fiber.Ctx) error {
	ctx := c.Context()
	username := c.Params("username")
	page := parsePagination(c, defaultPageSize)
	viewerID := s.optionalUserID(c)

	posts, err := s.feedService.ProfileFeed(ctx, username, page.Limit, page.Offset, viewerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(posts)
}
