package service

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint, uint) (*models.Post, error)
	getByAuthorIDsFn func(context.Context, []uint, int, int, uint) ([]*models.Post, error)
	searchFn         func(context.Context, string, int, int, uint) ([]*models.Post, error)
	deleteFn         func(context.Context, uint) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	likeFn           func(context.Context, uint, uint) (bool, error)
	unlikeFn         func(context.Context, uint, uint) (bool, error)
	likeCountFn      func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByAuthorIDsFn(ctx, authorIDs, limit, offset, currentUserID)
}
func (s *postRepoStub) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.searchFn(ctx, query, limit, offset, currentUserID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) (bool, error) {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikeCount(ctx context.Context, postID uint) (int64, error) {
	return s.likeCountFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getByAuthorIDsFn: func(_ context.Context, _ []uint, _, _ int, _ uint) ([]*models.Post, error) {
			return []*models.Post{}, nil
		},
		searchFn: func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Post, error) {
			return []*models.Post{}, nil
		},
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
		isLikedFn:   func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:      func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:    func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		likeCountFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// replyRepoStub is a stub for repository.ReplyRepository.
type replyRepoStub struct {
	createFn          func(context.Context, *models.Reply) error
	getByIDFn         func(context.Context, uint) (*models.Reply, error)
	listByPostFn      func(context.Context, uint, int, int) ([]models.Reply, error)
	latestByPostIDsFn func(context.Context, []uint, int) (map[uint][]models.Reply, error)
	deleteFn          func(context.Context, uint) error
	countByPostFn     func(context.Context, uint) (int64, error)
}

func (s *replyRepoStub) Create(ctx context.Context, reply *models.Reply) error {
	return s.createFn(ctx, reply)
}
func (s *replyRepoStub) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	return s.getByIDFn(ctx, id)
}
func (s *replyRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Reply, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *replyRepoStub) LatestByPostIDs(ctx context.Context, postIDs []uint, perPost int) (map[uint][]models.Reply, error) {
	return s.latestByPostIDsFn(ctx, postIDs, perPost)
}
func (s *replyRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *replyRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}

func noopReplyRepo() *replyRepoStub {
	return &replyRepoStub{
		createFn: func(_ context.Context, _ *models.Reply) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Reply, error) {
			return &models.Reply{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _ uint, _, _ int) ([]models.Reply, error) {
			return []models.Reply{}, nil
		},
		latestByPostIDsFn: func(_ context.Context, _ []uint, _ int) (map[uint][]models.Reply, error) {
			return map[uint][]models.Reply{}, nil
		},
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		countByPostFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn         func(context.Context, uint) (*models.User, error)
	getByExternalIDFn func(context.Context, string) (*models.User, error)
	getByUsernameFn   func(context.Context, string) (*models.User, error)
	createFn          func(context.Context, *models.User) error
	updateFn          func(context.Context, *models.User) error
	searchFn          func(context.Context, string, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return s.getByExternalIDFn(ctx, externalID)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByExternalIDFn: func(_ context.Context, externalID string) (*models.User, error) {
			return &models.User{ID: 1, ExternalID: externalID}, nil
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
		searchFn: func(_ context.Context, _ string, _, _ int) ([]models.User, error) {
			return []models.User{}, nil
		},
	}
}

// followRepoStub is a stub for repository.FollowRepository.
type followRepoStub struct {
	followFn       func(context.Context, uint, uint) (bool, error)
	unfollowFn     func(context.Context, uint, uint) (bool, error)
	isFollowingFn  func(context.Context, uint, uint) (bool, error)
	followingIDsFn func(context.Context, uint) ([]uint, error)
	countsFn       func(context.Context, uint) (int64, int64, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.followFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.unfollowFn(ctx, followerID, followingID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, followerID)
}
func (s *followRepoStub) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	return s.countsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:       func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unfollowFn:     func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isFollowingFn:  func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followingIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return []uint{}, nil },
		countsFn:       func(_ context.Context, _ uint) (int64, int64, error) { return 0, 0, nil },
	}
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}
