package service

import (
	"context"
	"testing"

	"ripple/internal/featureflags"
	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedService_HomeFeed(t *testing.T) {
	t.Parallel()

	t.Run("Anonymous viewer gets an empty feed", func(t *testing.T) {
		svc := NewFeedService(noopPostRepo(), noopFollowRepo(), noopUserRepo(), noopReplyRepo(), featureflags.NewManager(""))

		posts, err := svc.HomeFeed(context.Background(), 0, 20, 0)
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("Author set is viewer plus followed users", func(t *testing.T) {
		followRepo := noopFollowRepo()
		followRepo.followingIDsFn = func(_ context.Context, _ uint) ([]uint, error) {
			return []uint{2, 3}, nil
		}
		postRepo := noopPostRepo()
		var gotAuthors []uint
		var gotViewer uint
		postRepo.getByAuthorIDsFn = func(_ context.Context, authorIDs []uint, _, _ int, viewerID uint) ([]*models.Post, error) {
			gotAuthors = authorIDs
			gotViewer = viewerID
			return []*models.Post{}, nil
		}
		svc := NewFeedService(postRepo, followRepo, noopUserRepo(), noopReplyRepo(), featureflags.NewManager(""))

		_, err := svc.HomeFeed(context.Background(), 1, 20, 0)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{1, 2, 3}, gotAuthors)
		assert.Equal(t, uint(1), gotViewer)
	})
}

func TestFeedService_ProfileFeed(t *testing.T) {
	t.Parallel()

	t.Run("Unknown author", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, _ string) (*models.User, error) {
			return nil, nil
		}
		svc := NewFeedService(noopPostRepo(), noopFollowRepo(), userRepo, noopReplyRepo(), featureflags.NewManager(""))

		_, err := svc.ProfileFeed(context.Background(), "nobody", 20, 0, 0)
		assertNotFoundError(t, err)
	})

	t.Run("Queries only the resolved author", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 42, Username: username}, nil
		}
		postRepo := noopPostRepo()
		var gotAuthors []uint
		postRepo.getByAuthorIDsFn = func(_ context.Context, authorIDs []uint, _, _ int, _ uint) ([]*models.Post, error) {
			gotAuthors = authorIDs
			return []*models.Post{}, nil
		}
		svc := NewFeedService(postRepo, noopFollowRepo(), userRepo, noopReplyRepo(), featureflags.NewManager(""))

		_, err := svc.ProfileFeed(context.Background(), "otter", 20, 0, 7)
		require.NoError(t, err)
		assert.Equal(t, []uint{42}, gotAuthors)
	})
}

func TestFeedService_ReplyPreviews(t *testing.T) {
	t.Parallel()

	feedPosts := func() []*models.Post {
		return []*models.Post{{ID: 1}, {ID: 2}}
	}

	t.Run("Attached when flag is on", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByAuthorIDsFn = func(_ context.Context, _ []uint, _, _ int, _ uint) ([]*models.Post, error) {
			return feedPosts(), nil
		}
		replyRepo := noopReplyRepo()
		replyRepo.latestByPostIDsFn = func(_ context.Context, postIDs []uint, perPost int) (map[uint][]models.Reply, error) {
			assert.Equal(t, []uint{1, 2}, postIDs)
			assert.Equal(t, 2, perPost)
			return map[uint][]models.Reply{1: {{ID: 9, PostID: 1, Content: "yo"}}}, nil
		}
		svc := NewFeedService(postRepo, noopFollowRepo(), noopUserRepo(), replyRepo, featureflags.NewManager("reply_previews=on"))

		posts, err := svc.HomeFeed(context.Background(), 1, 20, 0)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		require.Len(t, posts[0].RepliesPreview, 1)
		assert.Equal(t, "yo", posts[0].RepliesPreview[0].Content)
		assert.Empty(t, posts[1].RepliesPreview)
	})

	t.Run("Skipped when flag is off", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByAuthorIDsFn = func(_ context.Context, _ []uint, _, _ int, _ uint) ([]*models.Post, error) {
			return feedPosts(), nil
		}
		replyRepo := noopReplyRepo()
		called := false
		replyRepo.latestByPostIDsFn = func(_ context.Context, _ []uint, _ int) (map[uint][]models.Reply, error) {
			called = true
			return nil, nil
		}
		svc := NewFeedService(postRepo, noopFollowRepo(), noopUserRepo(), replyRepo, featureflags.NewManager("reply_previews=off"))

		_, err := svc.HomeFeed(context.Background(), 1, 20, 0)
		require.NoError(t, err)
		assert.False(t, called)
	})
}
