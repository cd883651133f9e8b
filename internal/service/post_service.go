package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// PostService creates and deletes posts and replies, enforcing content
// validation and authorship-based authorization.
type PostService struct {
	postRepo  repository.PostRepository
	replyRepo repository.ReplyRepository
}

type CreatePostInput struct {
	AuthorID uint
	Content  string
}

type CreateReplyInput struct {
	AuthorID uint
	PostID   uint
	Content  string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, replyRepo repository.ReplyRepository) *PostService {
	return &PostService{postRepo: postRepo, replyRepo: replyRepo}
}

// validateContent trims the input and enforces the length contract. The
// returned string is what gets persisted.
func validateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	length := utf8.RuneCountInString(trimmed)
	if length == 0 {
		return "", models.NewValidationError("content must not be empty")
	}
	if length > models.MaxContentLength {
		return "", models.NewValidationError("content must be at most 140 characters")
	}
	return trimmed, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.AuthorID == 0 {
		return nil, models.NewUnauthorizedError("authentication required")
	}
	content, err := validateContent(in.Content)
	if err != nil {
		return nil, err
	}

	post := &models.Post{AuthorID: in.AuthorID, Content: content}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.WithLabelValues("post").Inc()

	return s.postRepo.GetByID(ctx, post.ID, in.AuthorID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

// DeletePost removes a post and cascades its likes and replies. Only the
// author may delete.
func (s *PostService) DeletePost(ctx context.Context, requesterID, postID uint) error {
	if requesterID == 0 {
		return models.NewUnauthorizedError("authentication required")
	}

	post, err := s.postRepo.GetByID(ctx, postID, requesterID)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return models.NewForbiddenError("you can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, postID)
}

func (s *PostService) CreateReply(ctx context.Context, in CreateReplyInput) (*models.Reply, error) {
	if in.AuthorID == 0 {
		return nil, models.NewUnauthorizedError("authentication required")
	}
	content, err := validateContent(in.Content)
	if err != nil {
		return nil, err
	}

	// The parent post must resolve before the reply row exists.
	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	reply := &models.Reply{AuthorID: in.AuthorID, PostID: in.PostID, Content: content}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	observability.PostsCreated.WithLabelValues("reply").Inc()

	return s.replyRepo.GetByID(ctx, reply.ID)
}

// DeleteReply removes a reply. Only the reply's author may delete.
func (s *PostService) DeleteReply(ctx context.Context, requesterID, replyID uint) error {
	if requesterID == 0 {
		return models.NewUnauthorizedError("authentication required")
	}

	reply, err := s.replyRepo.GetByID(ctx, replyID)
	if err != nil {
		return err
	}
	if reply.AuthorID != requesterID {
		return models.NewForbiddenError("you can only delete your own replies")
	}

	return s.replyRepo.Delete(ctx, replyID)
}

// ListReplies returns a bounded page of replies on a post, newest first.
func (s *PostService) ListReplies(ctx context.Context, postID uint, limit, offset int) ([]models.Reply, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.replyRepo.ListByPost(ctx, postID, limit, offset)
}
