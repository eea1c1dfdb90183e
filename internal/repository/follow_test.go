package repository

import (
	"context"
	"fmt"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSQLiteDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Account{},
		&models.Follow{},
		&models.Post{},
		&models.Tag{},
		&models.Bookmark{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{Email: email, Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestFollowRepository_CreateAndDuplicate(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	err := repo.Create(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	require.NoError(t, err)

	err = repo.Create(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	assert.Error(t, err)
	assert.True(t, models.IsConflict(err))

	exists, err := repo.Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestFollowRepository_Delete(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")

	require.NoError(t, repo.Create(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))
	require.NoError(t, repo.Delete(ctx, alice.ID, bob.ID))

	// Deleting a follow that no longer exists reports NotFound.
	err := repo.Delete(ctx, alice.ID, bob.ID)
	assert.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestFollowRepository_FollowersAndFollowing(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	target := seedUser(t, db, "target@example.com")
	var fans []*models.User
	for i := 0; i < 3; i++ {
		fan := seedUser(t, db, fmt.Sprintf("fan%d@example.com", i))
		require.NoError(t, repo.Create(ctx, &models.Follow{FollowerID: fan.ID, FollowingID: target.ID}))
		fans = append(fans, fan)
	}
	require.NoError(t, repo.Create(ctx, &models.Follow{FollowerID: target.ID, FollowingID: fans[0].ID}))

	followers, err := repo.Followers(ctx, target.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, followers, 3)

	following, err := repo.Following(ctx, target.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, following, 1)
	assert.Equal(t, fans[0].ID, following[0].ID)

	followerCount, followingCount, err := repo.Counts(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), followerCount)
	assert.Equal(t, int64(1), followingCount)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := setupSQLiteDB(t)
	userRepo := NewUserRepository(db)
	followRepo := NewFollowRepository(db)
	postRepo := NewPostRepository(db)
	bookmarkRepo := NewBookmarkRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author@example.com")
	require.NoError(t, db.Create(&models.Profile{UserID: author.ID, FirstName: "Avery"}).Error)
	require.NoError(t, db.Create(&models.Account{UserID: author.ID, Provider: "google", ProviderAccountID: "g-123"}).Error)

	fan := seedUser(t, db, "fan@example.com")
	require.NoError(t, followRepo.Create(ctx, &models.Follow{FollowerID: fan.ID, FollowingID: author.ID}))
	require.NoError(t, followRepo.Create(ctx, &models.Follow{FollowerID: author.ID, FollowingID: fan.ID}))

	post := &models.Post{Title: "Hello", Content: "First post", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(ctx, post, []string{"intro", "golang"}))
	require.NoError(t, bookmarkRepo.Create(ctx, &models.Bookmark{UserID: fan.ID, PostID: post.ID}))

	require.NoError(t, userRepo.Delete(ctx, author.ID))

	var count int64
	db.Model(&models.Profile{}).Where("user_id = ?", author.ID).Count(&count)
	assert.Zero(t, count, "profile should be removed with its user")

	db.Model(&models.Account{}).Where("user_id = ?", author.ID).Count(&count)
	assert.Zero(t, count, "linked accounts should be removed with their user")

	db.Model(&models.Follow{}).Where("follower_id = ? OR following_id = ?", author.ID, author.ID).Count(&count)
	assert.Zero(t, count, "follow edges in both directions should be removed")

	db.Model(&models.Post{}).Where("author_id = ?", author.ID).Count(&count)
	assert.Zero(t, count, "authored posts should be removed")

	db.Model(&models.Bookmark{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Zero(t, count, "bookmarks of deleted posts should be removed")

	// The fan is untouched.
	fetched, err := userRepo.GetByID(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, fan.Email, fetched.Email)

	err = userRepo.Delete(ctx, author.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestBookmarkRepository(t *testing.T) {
	db := setupSQLiteDB(t)
	postRepo := NewPostRepository(db)
	bookmarkRepo := NewBookmarkRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author@example.com")
	reader := seedUser(t, db, "reader@example.com")

	post := &models.Post{Title: "Saved", Content: "body", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(ctx, post, nil))

	require.NoError(t, bookmarkRepo.Create(ctx, &models.Bookmark{UserID: reader.ID, PostID: post.ID}))

	err := bookmarkRepo.Create(ctx, &models.Bookmark{UserID: reader.ID, PostID: post.ID})
	assert.True(t, models.IsConflict(err))

	list, err := bookmarkRepo.ListByUser(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Post)
	assert.Equal(t, "Saved", list[0].Post.Title)

	require.NoError(t, bookmarkRepo.Delete(ctx, reader.ID, post.ID))
	err = bookmarkRepo.Delete(ctx, reader.ID, post.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestPostRepository_TagsReused(t *testing.T) {
	db := setupSQLiteDB(t)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "author@example.com")

	first := &models.Post{Title: "One", Content: "a", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(ctx, first, []string{"golang", "notes"}))

	second := &models.Post{Title: "Two", Content: "b", AuthorID: author.ID}
	require.NoError(t, postRepo.Create(ctx, second, []string{"golang"}))

	var tagCount int64
	db.Model(&models.Tag{}).Count(&tagCount)
	assert.Equal(t, int64(2), tagCount, "tag names should be deduplicated across posts")

	fetched, err := postRepo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Tags, 2)
}
