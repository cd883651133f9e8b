// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	user, err := s.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errInvalidBody())
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: user.ID,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID := s.optionalUserID(c)

	post, err := s.postService.GetPost(ctx, id, viewerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.Context()
	user, err := s.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, user.ID, postID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/like.
// A first call likes the post, a second call removes the like; the response
// always carries the authoritative state after the call.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.Context()
	user, err := s.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.likeService.ToggleLike(ctx, user.ID, postID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// CreateReply handles POST /api/posts/:id/replies
func (s *Server) CreateReply(c *fiber.Ctx) error {
	ctx := c.Context()
	user, err := s.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, errInvalidBody())
	}

	reply, err := s.postService.CreateReply(ctx, service.CreateReplyInput{
		AuthorID: user.ID,
		PostID:   postID,
		Content:  req.Content,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(reply)
}

// GetReplies handles GET /api/posts/:id/replies
func (s *Server) GetReplies(c *fiber.Ctx) error {
	ctx := c.Context()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, defaultPageSize)

	replies, err := s.postService.ListReplies(ctx, postID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(replies)
}

// DeleteReply handles DELETE /api/replies/:id
func (s *Server) DeleteReply(c *fiber.Ctx) error {
	ctx := c.Context()
	user, err := s.currentUser(c)
	if err != nil {
		return respondError(c, err)
	}
	replyID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeleteReply(ctx, user.ID, replyID); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
