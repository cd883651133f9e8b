// Package service contains the application's business logic layer.
package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// UserService syncs local users from identity-provider lifecycle events and
// resolves users for the rest of the application.
type UserService struct {
	userRepo repository.UserRepository
}

// UserAttributes is the typed partial payload of an identity lifecycle event.
// Nil fields were absent from the event and must be left untouched on update.
type UserAttributes struct {
	Username  *string
	FirstName *string
	LastName  *string
	ImageURL  *string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SyncUserCreated inserts the local user row for a provider "created" event.
// Duplicate delivery is surfaced as DuplicateUserError; dedup is the delivery
// layer's job, not ours.
func (s *UserService) SyncUserCreated(ctx context.Context, externalID string, attrs UserAttributes) (*models.User, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, models.NewValidationError("external id is required")
	}

	username := fallbackUsername(externalID)
	if attrs.Username != nil && strings.TrimSpace(*attrs.Username) != "" {
		username = strings.TrimSpace(*attrs.Username)
	}

	user := &models.User{
		ExternalID: externalID,
		Username:   username,
		Name:       displayName(attrs.FirstName, attrs.LastName, username),
	}
	if attrs.ImageURL != nil {
		user.Image = *attrs.ImageURL
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		observability.IdentitySyncs.WithLabelValues("created", "error").Inc()
		return nil, err
	}
	observability.IdentitySyncs.WithLabelValues("created", "ok").Inc()
	return user, nil
}

// SyncUserUpdated applies only the fields present in a provider "updated"
// event. Absent fields keep their current values.
func (s *UserService) SyncUserUpdated(ctx context.Context, externalID string, attrs UserAttributes) (*models.User, error) {
	user, err := s.userRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		observability.IdentitySyncs.WithLabelValues("updated", "error").Inc()
		return nil, err
	}

	if attrs.Username != nil && strings.TrimSpace(*attrs.Username) != "" {
		user.Username = strings.TrimSpace(*attrs.Username)
	}
	if attrs.FirstName != nil || attrs.LastName != nil {
		user.Name = displayName(attrs.FirstName, attrs.LastName, user.Username)
	}
	if attrs.ImageURL != nil {
		user.Image = *attrs.ImageURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		observability.IdentitySyncs.WithLabelValues("updated", "error").Inc()
		return nil, err
	}
	observability.IdentitySyncs.WithLabelValues("updated", "ok").Inc()
	return user, nil
}

// GetUserByExternalID resolves the local user for a provider identity id.
func (s *UserService) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return s.userRepo.GetByExternalID(ctx, externalID)
}

// GetUserByUsername resolves a user by handle; returns NotFoundError when the
// handle is unknown.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

// fallbackUsername derives a handle when the provider supplies none.
func fallbackUsername(externalID string) string {
	suffix := externalID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return "user" + suffix
}

// displayName joins the provided name parts, falling back to the username
// when the event carries no name fields.
func displayName(first, last *string, username string) string {
	var parts []string
	if first != nil && strings.TrimSpace(*first) != "" {
		parts = append(parts, strings.TrimSpace(*first))
	}
	if last != nil && strings.TrimSpace(*last) != "" {
		parts = append(parts, strings.TrimSpace(*last))
	}
	if len(parts) == 0 {
		return username
	}
	return strings.Join(parts, " ")
}
