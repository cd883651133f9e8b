package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// FollowService manages follow edges between users with strict toggle
// semantics.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// FollowResult is the authoritative state after a toggle.
type FollowResult struct {
	Following bool `json:"following"`
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// ToggleFollow flips the (follower, target) follow edge. Self-follow is
// rejected.
func (s *FollowService) ToggleFollow(ctx context.Context, followerID, targetID uint) (*FollowResult, error) {
	if followerID == 0 {
		return nil, models.NewUnauthorizedError("authentication required")
	}
	if followerID == targetID {
		return nil, models.NewValidationError("you cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	following, err := s.followRepo.IsFollowing(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}

	var nowFollowing bool
	if following {
		if _, err := s.followRepo.Unfollow(ctx, followerID, targetID); err != nil {
			return nil, err
		}
		nowFollowing = false
		observability.EdgeToggles.WithLabelValues("follow", "remove").Inc()
	} else {
		if _, err := s.followRepo.Follow(ctx, followerID, targetID); err != nil {
			return nil, err
		}
		nowFollowing = true
		observability.EdgeToggles.WithLabelValues("follow", "add").Inc()
	}

	return &FollowResult{Following: nowFollowing}, nil
}

// IsFollowing reports whether follower currently follows target.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, targetID)
}

// Counts returns follower/following totals for a user.
func (s *FollowService) Counts(ctx context.Context, userID uint) (followers, following int64, err error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, 0, err
	}
	return s.followRepo.Counts(ctx, userID)
}
