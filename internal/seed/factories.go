// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// externalID fabricates a provider-style identity id.
func externalID() string {
	return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

// CreateUser constructs and persists a sample `models.User` shaped like a
// row synced from the identity provider. Optional override functions may
// modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	user := &models.User{
		ExternalID: externalID(),
		Username:   strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Name:       first + " " + last,
		Image:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post without persisting it, with content capped at
// the service limit and a realistic created_at spread over the last days.
func (f *Factory) BuildPost(author *models.User, maxDays int, overrides ...func(*models.Post)) *models.Post {
	if maxDays <= 0 {
		maxDays = 30
	}

	post := &models.Post{
		AuthorID: author.ID,
		Content:  clampContent(gofakeit.Sentence(f.rng.Intn(12) + 3)),
	}

	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateReply persists a reply to the given post, timestamped after the post.
func (f *Factory) CreateReply(author *models.User, post *models.Post) (*models.Reply, error) {
	reply := &models.Reply{
		PostID:   post.ID,
		AuthorID: author.ID,
		Content:  clampContent(gofakeit.Sentence(f.rng.Intn(8) + 2)),
	}
	reply.CreatedAt = post.CreatedAt.Add(time.Duration(f.rng.Intn(600)+1) * time.Minute)

	if err := f.db.Create(reply).Error; err != nil {
		return nil, err
	}
	return reply, nil
}

// CreateLike inserts a like edge, ignoring duplicates.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error
}

// CreateFollow inserts a follow edge, ignoring duplicates and self-follows.
func (f *Factory) CreateFollow(follower, following *models.User) error {
	if follower.ID == following.ID {
		return nil
	}
	return f.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{FollowerID: follower.ID, FollowingID: following.ID}).Error
}

// clampContent trims generated text to the post content limit.
func clampContent(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > models.MaxContentLength {
		return strings.TrimSpace(string(runes[:models.MaxContentLength]))
	}
	if s == "" {
		return "..."
	}
	return s
}
