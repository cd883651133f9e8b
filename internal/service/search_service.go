package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// SearchService runs case-insensitive substring search over users and posts.
type SearchService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// SearchResults holds the two independently matched result lists. Both
// slices are always initialized so empty results serialize as [] rather
// than null.
type SearchResults struct {
	Users []models.User  `json:"users"`
	Posts []*models.Post `json:"posts"`
}

// NewSearchService returns a new SearchService.
func NewSearchService(userRepo repository.UserRepository, postRepo repository.PostRepository) *SearchService {
	return &SearchService{userRepo: userRepo, postRepo: postRepo}
}

// Search matches users by username or display name and posts by content.
// A blank query returns empty lists; there is no browse-all fallback.
func (s *SearchService) Search(ctx context.Context, query string, limit, offset int, currentUserID uint) (*SearchResults, error) {
	results := &SearchResults{
		Users: []models.User{},
		Posts: []*models.Post{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}

	users, err := s.userRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.Search(ctx, query, limit, offset, currentUserID)
	if err != nil {
		return nil, err
	}

	if users != nil {
		results.Users = users
	}
	if posts != nil {
		results.Posts = posts
	}
	return results, nil
}
