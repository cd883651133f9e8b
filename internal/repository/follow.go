package repository

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow-edge data operations.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID uint) (bool, error)
	Unfollow(ctx context.Context, followerID, followingID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	FollowingIDs(ctx context.Context, followerID uint) ([]uint, error)
	Counts(ctx context.Context, userID uint) (followers int64, following int64, err error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the follow edge if absent. Returns whether a row was
// created; the unique index on the ordered pair absorbs concurrent inserts.
func (r *followRepository) Follow(ctx context.Context, followerID, followingID uint) (bool, error) {
	defer observability.TrackQuery("create", "follows")()

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{FollowerID: followerID, FollowingID: followingID})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, models.NewStoreError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Unfollow removes the follow edge if present. Returns whether a row was deleted.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	defer observability.TrackQuery("delete", "follows")()

	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, models.NewStoreError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

// FollowingIDs returns the ids of all users the given user follows.
func (r *followRepository) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	ids := []uint{}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return ids, nil
}

// Counts returns the follower and following totals for a user.
func (r *followRepository) Counts(ctx context.Context, userID uint) (int64, int64, error) {
	var followers, following int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&followers).Error; err != nil {
		return 0, 0, models.NewStoreError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&following).Error; err != nil {
		return 0, 0, models.NewStoreError(err)
	}
	return followers, following, nil
}
