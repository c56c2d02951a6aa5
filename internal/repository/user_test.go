package repository

import (
	"context"
	"testing"

	"corkboard/internal/database"
	"corkboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory store with foreign keys enabled and
// the schema bootstrapped. The pool is pinned to one connection so the
// in-memory database survives for the length of the test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := database.Bootstrap(db); err != nil {
		t.Fatalf("Failed to bootstrap schema: %v", err)
	}

	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "$2a$10$notarealhashbutlongenough1234567890abcdefgh",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Password:  "hash",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID, "insert should backfill the store-assigned id")
	assert.False(t, user.AddedOn.IsZero())

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.FirstName)
	assert.Equal(t, "grace@example.com", got.Email)
	assert.False(t, got.Admin)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	newTestUser(t, db, "dup@example.com")

	err := repo.Create(ctx, &models.User{
		FirstName: "Second",
		LastName:  "User",
		Email:     "dup@example.com",
		Password:  "hash",
	})
	require.Error(t, err)
	assert.True(t, models.IsConflict(err))

	var count int64
	db.Model(&models.User{}).Where("email = ?", "dup@example.com").Count(&count)
	assert.EqualValues(t, 1, count, "only one row should exist after the conflict")
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByID(context.Background(), 99)
	assert.Nil(t, user)
	assert.True(t, models.IsNotFound(err))
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := newTestUser(t, db, "findme@example.com")

	got, err := repo.GetByEmail(ctx, "findme@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	// Unknown emails are an absent value, not an error, for the login path.
	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_GetEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := newTestUser(t, db, "field@example.com")

	email, err := repo.GetEmail(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "field@example.com", email)

	_, err = repo.GetEmail(ctx, 1234)
	assert.True(t, models.IsNotFound(err))
}

func TestUserRepository_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := newTestUser(t, db, "exists@example.com")

	exists, err := repo.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 555)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "exists@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := newTestUser(t, db, "update@example.com")
	bio := "Updated bio"
	user.Bio = &bio
	user.Admin = true

	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "Updated bio", *got.Bio)
	assert.True(t, got.Admin)
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	commentRepo := NewCommentRepository(db)
	tagRepo := NewTagRepository(db)

	victim := newTestUser(t, db, "victim@example.com")
	bystander := newTestUser(t, db, "bystander@example.com")

	tag := &models.Tag{Name: "news", Colour: "#fff"}
	require.NoError(t, tagRepo.Create(ctx, tag))

	// The victim's post, tagged, with a comment from the bystander.
	post := &models.Post{CreatorID: victim.ID, Title: "Mine", Content: "body"}
	require.NoError(t, postRepo.Create(ctx, post))
	require.NoError(t, postRepo.AddTag(ctx, post.ID, tag.ID))
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{
		PostID: post.ID, UserID: bystander.ID, Content: "nice post",
	}))

	// The victim also commented on someone else's post.
	otherPost := &models.Post{CreatorID: bystander.ID, Title: "Other", Content: "body"}
	require.NoError(t, postRepo.Create(ctx, otherPost))
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{
		PostID: otherPost.ID, UserID: victim.ID, Content: "drive-by comment",
	}))

	require.NoError(t, userRepo.Delete(ctx, victim.ID))

	var postCount, commentCount, linkCount int64
	db.Model(&models.Post{}).Where("creator_id = ?", victim.ID).Count(&postCount)
	assert.Zero(t, postCount, "the victim's posts should be gone")

	db.Model(&models.Comment{}).Count(&commentCount)
	assert.Zero(t, commentCount, "comments on the victim's posts and by the victim should be gone")

	db.Model(&models.PostTag{}).Where("post_id = ?", post.ID).Count(&linkCount)
	assert.Zero(t, linkCount, "tag links of the victim's posts should be gone")

	// The tag itself and the bystander's post survive.
	_, err := tagRepo.GetByID(ctx, tag.ID)
	assert.NoError(t, err)
	exists, err := postRepo.Exists(ctx, otherPost.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	newTestUser(t, db, "a@example.com")
	newTestUser(t, db, "b@example.com")

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
