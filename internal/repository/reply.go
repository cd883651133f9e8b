package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// ReplyRepository defines the interface for reply data operations.
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	GetByID(ctx context.Context, id uint) (*models.Reply, error)
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Reply, error)
	LatestByPostIDs(ctx context.Context, postIDs []uint, perPost int) (map[uint][]models.Reply, error)
	Delete(ctx context.Context, id uint) error
	CountByPost(ctx context.Context, postID uint) (int64, error)
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new reply repository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) error {
	defer observability.TrackQuery("create", "replies")()

	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidatePost(ctx, reply.PostID)
	return nil
}

func (r *replyRepository) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.WithContext(ctx).Preload("Author").First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Reply", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &reply, nil
}

// ListByPost returns replies on a post, newest first.
func (r *replyRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Reply, error) {
	replies := []models.Reply{}
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&replies).Error; err != nil {
		return nil, models.NewStoreError(err)
	}
	return replies, nil
}

// LatestByPostIDs returns up to perPost most recent replies for each of the
// given posts, keyed by post id. The rows are fetched in one query and
// trimmed in memory; feed pages are small enough that the over-fetch is
// cheaper than a window-function query the sqlite test driver cannot run.
func (r *replyRepository) LatestByPostIDs(ctx context.Context, postIDs []uint, perPost int) (map[uint][]models.Reply, error) {
	out := make(map[uint][]models.Reply, len(postIDs))
	if len(postIDs) == 0 || perPost <= 0 {
		return out, nil
	}

	var replies []models.Reply
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id IN ?", postIDs).
		Order("created_at DESC, id DESC").
		Find(&replies).Error; err != nil {
		return nil, models.NewStoreError(err)
	}

	for _, reply := range replies {
		if len(out[reply.PostID]) < perPost {
			out[reply.PostID] = append(out[reply.PostID], reply)
		}
	}
	return out, nil
}

func (r *replyRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "replies")()

	var reply models.Reply
	if err := r.db.WithContext(ctx).First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Reply", id)
		}
		return models.NewStoreError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.Reply{}, id).Error; err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidatePost(ctx, reply.PostID)
	return nil
}

func (r *replyRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reply{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewStoreError(err)
	}
	return count, nil
}
