// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// Search handles GET /api/search?q=... matching usernames, display names and
// post content case-insensitively. A blank query returns empty result lists.
func (s *Server) Search(c *fiber.Ctx) error {
	ctx := c.Context()
	page := parsePagination(c, defaultPageSize)
	viewerID := s.optionalUserID(c)

	results, err := s.searchService.Search(ctx, c.Query("q"), page.Limit, page.Offset, viewerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(results)
}
