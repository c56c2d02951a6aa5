// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"corkboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
}

// DefaultPassword is shared by every seeded account so local logins are easy.
const DefaultPassword = "Corkboard1"

var tagPalette = []struct {
	Name        string
	Description string
	Colour      string
}{
	{"announcement", "Official board announcements", "#d9480f"},
	{"question", "Looking for answers", "#1864ab"},
	{"discussion", "Open-ended threads", "#2b8a3e"},
	{"event", "Upcoming dates worth pinning", "#862e9c"},
	{"for-sale", "Marketplace listings", "#e67700"},
	{"lost-found", "Lost and found notices", "#495057"},
}

// Run populates the store with an admin account, fake users, the tag
// palette, and randomly tagged posts with comments.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := models.User{
		FirstName: "Ada",
		LastName:  "Admin",
		Email:     "admin@corkboard.local",
		Password:  string(hashed),
		Admin:     true,
		AddedOn:   time.Now(),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	users := []models.User{admin}
	for i := 0; i < opts.NumUsers; i++ {
		bio := gofakeit.Sentence(8)
		user := models.User{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password:  string(hashed),
			Bio:       &bio,
			AddedOn:   time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}

	var tags []models.Tag
	for _, p := range tagPalette {
		desc := p.Description
		tag := models.Tag{
			Name:        p.Name,
			Description: &desc,
			Colour:      p.Colour,
			AddedOn:     time.Now(),
		}
		if err := db.Create(&tag).Error; err != nil {
			return fmt.Errorf("failed to seed tag: %w", err)
		}
		tags = append(tags, tag)
	}

	var posts []models.Post
	for i := 0; i < opts.NumPosts; i++ {
		creator := users[r.Intn(len(users))]
		post := models.Post{
			CreatorID: creator.ID,
			Title:     gofakeit.Sentence(5),
			Content:   gofakeit.Paragraph(1, 3, 5, "\n"),
			AddedOn:   time.Now().Add(-time.Duration(r.Intn(60*24)) * time.Hour),
		}
		// A third of posts get an expiry a few weeks out.
		if r.Intn(3) == 0 {
			expires := time.Now().Add(time.Duration(7+r.Intn(21)) * 24 * time.Hour)
			post.ExpiresOn = &expires
		}
		if err := db.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to seed post: %w", err)
		}

		for _, tag := range pickTags(r, tags) {
			link := models.PostTag{PostID: post.ID, TagID: tag.ID}
			if err := db.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to seed post tag: %w", err)
			}
		}
		posts = append(posts, post)
	}

	for i := 0; i < opts.NumComments && len(posts) > 0; i++ {
		author := users[r.Intn(len(users))]
		comment := models.Comment{
			PostID:  posts[r.Intn(len(posts))].ID,
			UserID:  author.ID,
			Content: gofakeit.Sentence(12),
			AddedOn: time.Now().Add(-time.Duration(r.Intn(30*24)) * time.Hour),
		}
		if err := db.Create(&comment).Error; err != nil {
			return fmt.Errorf("failed to seed comment: %w", err)
		}
	}

	return nil
}

// pickTags selects up to three distinct tags for a post.
func pickTags(r *rand.Rand, tags []models.Tag) []models.Tag {
	n := r.Intn(4)
	if n > len(tags) {
		n = len(tags)
	}
	perm := r.Perm(len(tags))
	picked := make([]models.Tag, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, tags[idx])
	}
	return picked
}
