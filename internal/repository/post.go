package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post and like-edge data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) (bool, error)
	Unlike(ctx context.Context, userID, postID uint) (bool, error)
	LikeCount(ctx context.Context, postID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	var err error
	if currentUserID == 0 {
		// Anonymous reads carry no per-viewer state, so they are safe to cache.
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
			return r.applyPostDetails(r.db.WithContext(ctx), 0).
				Preload("Author").
				First(&post, id).Error
		})
	} else {
		err = r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Author").
			First(&post, id).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, models.NewStoreError(err)
	}
	return &post, nil
}

// GetByAuthorIDs returns posts by any of the given authors, newest first with
// id as the tiebreak so pagination is stable under equal timestamps.
func (r *postRepository) GetByAuthorIDs(ctx context.Context, authorIDs []uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	posts := []*models.Post{}
	if len(authorIDs) == 0 {
		return posts, nil
	}

	defer observability.TrackQuery("list", "posts")()
	ctx, span := observability.TraceRepositoryMethod(ctx, "GetByAuthorIDs", "posts")
	defer span.End()

	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("author_id IN ?", authorIDs).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return posts, nil
}

// Search matches posts whose content contains the query, case-insensitively.
func (r *postRepository) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	posts := []*models.Post{}
	ctx, span := observability.TraceRepositoryMethod(ctx, "Search", "posts")
	defer span.End()

	like := "%" + query + "%"
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Where("LOWER(content) LIKE LOWER(?)", like).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return posts, nil
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM replies WHERE replies.post_id = posts.id) as replies_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// Delete removes a post together with its likes and replies in one
// transaction. Rows are hard-deleted so the computed counts never see
// orphans.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewStoreError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

// Like inserts the like edge if absent. Returns whether a row was created;
// a concurrent duplicate insert loses the race and reports no change.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: userID, PostID: postID})
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, models.NewStoreError(res.Error)
	}
	if res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
		return true, nil
	}
	return false, nil
}

// Unlike removes the like edge if present. Returns whether a row was deleted.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, models.NewStoreError(res.Error)
	}
	if res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
		return true, nil
	}
	return false, nil
}

func (r *postRepository) LikeCount(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewStoreError(err)
	}
	return count, nil
}
