package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with a realistic social mesh: users with
// provider-style identities, follow edges, posts, replies and likes.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the given DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Edges go first so foreign keys never
// dangle mid-cleanup.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Like{}, &models.Follow{}, &models.Reply{}, &models.Post{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// SeedSocialMesh creates numUsers users and a follow graph between them.
// Each user follows a random subset of the others.
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}

	if len(users) > 1 {
		for _, follower := range users {
			// follow between 10% and 40% of the mesh
			count := len(users)/10 + s.rng.Intn(len(users)/3+1)
			for i := 0; i < count; i++ {
				target := users[s.rng.Intn(len(users))]
				if err := s.factory.CreateFollow(follower, target); err != nil {
					return nil, fmt.Errorf("creating follow edge: %w", err)
				}
			}
		}
	}

	log.Printf("seeded %d users with follow mesh", len(users))
	return users, nil
}

// SeedEngagement spreads numPosts posts across the given users and layers
// replies and likes on top.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[s.rng.Intn(len(users))]
		posts = append(posts, s.factory.BuildPost(author, 30))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("creating posts: %w", err)
	}

	for _, post := range posts {
		for i, n := 0, s.rng.Intn(4); i < n; i++ {
			replier := users[s.rng.Intn(len(users))]
			if _, err := s.factory.CreateReply(replier, post); err != nil {
				return nil, fmt.Errorf("creating reply: %w", err)
			}
		}
		for i, n := 0, s.rng.Intn(len(users)/2+1); i < n; i++ {
			liker := users[s.rng.Intn(len(users))]
			if err := s.factory.CreateLike(liker, post); err != nil {
				return nil, fmt.Errorf("creating like: %w", err)
			}
		}
	}

	log.Printf("seeded %d posts with replies and likes", len(posts))
	return posts, nil
}
