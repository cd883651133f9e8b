package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the service and presentation layers.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeDuplicateUser = "DUPLICATE_USER"
	CodeUserNotFound  = "USER_NOT_FOUND"
	CodeStore         = "STORE_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewDuplicateUserError reports an identity-sync insert for an external ID
// that already has a local user row.
func NewDuplicateUserError(externalID string) *AppError {
	return &AppError{
		Code:    CodeDuplicateUser,
		Message: fmt.Sprintf("user with external ID %s already exists", externalID),
	}
}

// NewUserNotFoundError reports an identity-sync update for an external ID
// with no local user row.
func NewUserNotFoundError(externalID string) *AppError {
	return &AppError{
		Code:    CodeUserNotFound,
		Message: fmt.Sprintf("user with external ID %s not found", externalID),
	}
}

// NewStoreError wraps an underlying persistence failure. The wrapped error is
// logged server-side; callers only ever see the generic message.
func NewStoreError(err error) *AppError {
	return &AppError{
		Code:    CodeStore,
		Message: "Internal server error",
		Err:     err,
	}
}

// HTTPStatus maps an application error to its HTTP status code. Unknown
// errors are treated as internal failures.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound, CodeUserNotFound:
		return fiber.StatusNotFound
	case CodeDuplicateUser:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response. Internal error
// details are never exposed to the caller.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
	} else {
		response = ErrorResponse{
			Error: "Internal server error",
		}
	}

	return c.Status(status).JSON(response)
}
