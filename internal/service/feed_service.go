package service

import (
	"context"

	"ripple/internal/featureflags"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// replyPreviewCount is how many recent replies ride along on each feed entry
// when the reply_previews flag is on.
const replyPreviewCount = 2

// FeedService assembles profile and home timelines. Feeds are pure reads;
// all ordering comes from the store (created_at descending, id as tiebreak).
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	replyRepo  repository.ReplyRepository
	flags      *featureflags.Manager
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	replyRepo repository.ReplyRepository,
	flags *featureflags.Manager,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
		replyRepo:  replyRepo,
		flags:      flags,
	}
}

// HomeFeed returns posts authored by the viewer and everyone the viewer
// follows, newest first. Anonymous viewers get an empty feed; there is no
// anonymous home timeline.
func (s *FeedService) HomeFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	if viewerID == 0 {
		return []*models.Post{}, nil
	}

	followingIDs, err := s.followRepo.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followingIDs, viewerID)

	posts, err := s.postRepo.GetByAuthorIDs(ctx, authorIDs, limit, offset, viewerID)
	if err != nil {
		return nil, err
	}

	if err := s.attachReplyPreviews(ctx, posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

// ProfileFeed returns all posts by the named author, newest first, annotated
// with the requesting viewer's like state.
func (s *FeedService) ProfileFeed(ctx context.Context, username string, limit, offset int, viewerID uint) ([]*models.Post, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	posts, err := s.postRepo.GetByAuthorIDs(ctx, []uint{author.ID}, limit, offset, viewerID)
	if err != nil {
		return nil, err
	}

	if err := s.attachReplyPreviews(ctx, posts, viewerID); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *FeedService) attachReplyPreviews(ctx context.Context, posts []*models.Post, viewerID uint) error {
	if len(posts) == 0 || !s.flags.Enabled(featureflags.FlagReplyPreviews, viewerID) {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	previews, err := s.replyRepo.LatestByPostIDs(ctx, postIDs, replyPreviewCount)
	if err != nil {
		return err
	}
	for _, p := range posts {
		p.RepliesPreview = previews[p.ID]
	}
	return nil
}
