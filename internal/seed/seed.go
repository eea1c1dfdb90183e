// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var tagNames = []string{
	"golang", "webdev", "databases", "devops", "cloud", "testing",
	"career", "opinion", "tutorial", "performance", "security",
	"frontend", "backend", "tooling", "open-source",
}

// Seed populates the database with demo users, posts, follows, and bookmarks.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("Created %d users", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	if err := createFollows(db, users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	if err := createBookmarks(db, users, posts); err != nil {
		return fmt.Errorf("failed to create bookmarks: %w", err)
	}

	log.Println("Seeding completed.")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE bookmarks, tags_on_posts, tags, posts, follows, accounts, profiles, users RESTART IDENTITY CASCADE;`).Error
	}
	for _, table := range []string{"bookmarks", "tags_on_posts", "tags", "posts", "follows", "accounts", "profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	hash := string(hashed)

	// A predictable account for manual testing.
	if count >= 1 {
		demo := models.User{
			Email:        "demo@example.com",
			PasswordHash: &hash,
			Avatar:       strPtr("https://i.pravatar.cc/150?u=demo"),
			Role:         models.RoleUser,
			Profile: &models.Profile{
				FirstName: "Demo",
				LastName:  strPtr("Writer"),
			},
		}
		if err := db.Create(&demo).Error; err == nil {
			users = append(users, demo)
		}
	}

	for i := len(users); i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		email := strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", first, last, i))
		user := models.User{
			Email:        email,
			PasswordHash: &hash,
			Avatar:       strPtr(fmt.Sprintf("https://i.pravatar.cc/150?u=%s", email)),
			Role:         models.RoleUser,
			Profile: &models.Profile{
				FirstName: first,
				LastName:  &last,
			},
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	tags, err := ensureTags(db)
	if err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		post := models.Post{
			Title:    gofakeit.Sentence(5),
			Content:  gofakeit.Paragraph(2, 4, 8, "\n\n"),
			AuthorID: author.ID,
			// Spread creation times over the last 90 days.
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if r.Intn(3) == 0 {
			post.CoverImage = strPtr(fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()))
		}
		for _, idx := range r.Perm(len(tags))[:r.Intn(4)] {
			post.Tags = append(post.Tags, tags[idx])
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func ensureTags(db *gorm.DB) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		var tag models.Tag
		if err := db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// createFollows gives every user a handful of random follows.
func createFollows(db *gorm.DB, users []models.User) error {
	if len(users) < 2 {
		return nil
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		targets := r.Perm(len(users))
		wanted := r.Intn(min(len(users)-1, 8)) + 1
		for _, idx := range targets {
			if wanted == 0 {
				break
			}
			target := users[idx]
			if target.ID == user.ID {
				continue
			}
			follow := models.Follow{FollowerID: user.ID, FollowingID: target.ID}
			if err := db.Create(&follow).Error; err == nil {
				wanted--
			}
		}
	}
	return nil
}

func createBookmarks(db *gorm.DB, users []models.User, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		for _, idx := range r.Perm(len(posts))[:r.Intn(min(len(posts), 5))] {
			bookmark := models.Bookmark{UserID: user.ID, PostID: posts[idx].ID}
			// Duplicates are fine to skip.
			_ = db.Create(&bookmark).Error
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
