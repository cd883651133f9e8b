// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const (
	defaultPageSize    = 20
	maxPaginationLimit = 100
)

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// errInvalidBody is the shared malformed-JSON-body validation error.
func errInvalidBody() error {
	return models.NewValidationError("Invalid request body")
}

// respondError maps an application error to its HTTP status and writes the
// standard error body. The error also lands on the request span; handlers
// return nil after the response is committed, so the tracing middleware
// never sees it.
func respondError(c *fiber.Ctx, err error) error {
	observability.RecordErrorInContext(c.UserContext(), err)
	return models.RespondWithError(c, models.HTTPStatus(err), err)
}

// currentUser resolves the authenticated caller's external identity to the
// local user row. A valid token whose subject has never been synced through
// the identity webhook is treated as unauthenticated.
func (s *Server) currentUser(c *fiber.Ctx) (*models.User, error) {
	externalID, ok := c.Locals(middleware.ExternalIDKeyLocal).(string)
	if !ok || externalID == "" {
		return nil, models.NewUnauthorizedError("Authorization required")
	}

	user, err := s.userService.GetUserByExternalID(c.Context(), externalID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeUserNotFound {
			return nil, models.NewUnauthorizedError("Unknown user identity")
		}
		return nil, err
	}
	return user, nil
}

// optionalUserID resolves the caller's local user ID when OptionalAuth
// attached an identity, and returns 0 for anonymous requests. An identity
// without a synced local row also reads as anonymous.
func (s *Server) optionalUserID(c *fiber.Ctx) uint {
	externalID, ok := c.Locals(middleware.ExternalIDKeyLocal).(string)
	if !ok || externalID == "" {
		return 0
	}

	user, err := s.userService.GetUserByExternalID(c.Context(), externalID)
	if err != nil {
		return 0
	}
	return user.ID
}
