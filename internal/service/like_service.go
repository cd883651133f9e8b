package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// LikeService manages like edges between users and posts with strict toggle
// semantics.
type LikeService struct {
	postRepo repository.PostRepository
}

// LikeResult is the authoritative state after a toggle, returned so clients
// can reconcile optimistic predictions.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// NewLikeService returns a new LikeService.
func NewLikeService(postRepo repository.PostRepository) *LikeService {
	return &LikeService{postRepo: postRepo}
}

// ToggleLike flips the (user, post) like edge. A concurrent duplicate toggle
// losing the insert/delete race converges on the surviving state instead of
// erroring.
func (s *LikeService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("authentication required")
	}

	// Erroring on an unknown post (rather than silently no-opping) keeps the
	// behavior consistent with the rest of the action surface.
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	var nowLiked bool
	if liked {
		if _, err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
		// Whether we deleted the row or a concurrent toggle beat us to it,
		// the edge is gone.
		nowLiked = false
		observability.EdgeToggles.WithLabelValues("like", "remove").Inc()
	} else {
		if _, err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
		nowLiked = true
		observability.EdgeToggles.WithLabelValues("like", "add").Inc()
	}

	count, err := s.postRepo.LikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: nowLiked, LikeCount: count}, nil
}
