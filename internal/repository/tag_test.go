package repository

import (
	"context"
	"testing"

	"corkboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	desc := "Release announcements"
	tag := &models.Tag{Name: "releases", Description: &desc, Colour: "#ff8800"}
	require.NoError(t, repo.Create(ctx, tag))
	assert.NotZero(t, tag.ID)

	got, err := repo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "releases", got.Name)
	assert.Equal(t, "#ff8800", got.Colour)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Release announcements", *got.Description)
}

func TestTagRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)

	tag, err := repo.GetByID(context.Background(), 77)
	assert.Nil(t, tag)
	assert.True(t, models.IsNotFound(err))
}

func TestTagRepository_Exists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	tag := newTestTag(t, db, "exists")

	exists, err := repo.Exists(ctx, tag.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, 321)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTagRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	tag := newTestTag(t, db, "before")
	tag.Name = "after"
	tag.Colour = "#000"
	require.NoError(t, repo.Update(ctx, tag))

	got, err := repo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
	assert.Equal(t, "#000", got.Colour)
}

func TestTagRepository_DeleteCascadesLinksOnly(t *testing.T) {
	db := setupTestDB(t)
	tagRepo := NewTagRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author@example.com")
	post := newTestPost(t, db, author.ID, "Still here")
	tag := newTestTag(t, db, "doomed")
	require.NoError(t, postRepo.AddTag(ctx, post.ID, tag.ID))

	require.NoError(t, tagRepo.Delete(ctx, tag.ID))

	var linkCount int64
	db.Model(&models.PostTag{}).Where("tag_id = ?", tag.ID).Count(&linkCount)
	assert.Zero(t, linkCount, "links to the tag should be gone")

	// The post itself is untouched.
	exists, err := postRepo.Exists(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTagRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTagRepository(db)

	newTestTag(t, db, "a")
	newTestTag(t, db, "b")
	newTestTag(t, db, "c")

	tags, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 3)
}
