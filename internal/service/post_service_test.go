package service

import (
	"context"
	"testing"
	"time"

	"corkboard/internal/models"
	"corkboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(
		repository.NewPostRepository(db),
		repository.NewTagRepository(db),
		repository.NewUserRepository(db),
	)
}

func seedTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Colour: "#abcdef"}
	require.NoError(t, repository.NewTagRepository(db).Create(context.Background(), tag))
	return tag
}

func TestPostService_CreatePost(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	author := registerTestUser(t, newUserService(db), "author@example.com", "Sup3rSecret")
	tag := seedTag(t, db, "go")

	expires := time.Now().Add(24 * time.Hour)
	post, err := svc.CreatePost(ctx, CreatePostInput{
		CreatorID: author.ID,
		Title:     "Hello",
		Content:   "World",
		ExpiresOn: &expires,
		TagIDs:    []uint{tag.ID},
	})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, "Hello", post.Title)
	require.NotNil(t, post.ExpiresOn)

	tags, err := svc.GetPostTags(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, tag.ID, tags[0].ID)
}

func TestPostService_CreatePost_UnknownCreator(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)

	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		CreatorID: 42,
		Title:     "Orphan",
		Content:   "No author",
	})
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestPostService_CreatePost_UnknownTag(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)

	author := registerTestUser(t, newUserService(db), "author@example.com", "Sup3rSecret")

	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		CreatorID: author.ID,
		Title:     "Badly tagged",
		Content:   "body",
		TagIDs:    []uint{999},
	})
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))

	// The failed create must not leave a post behind.
	posts, err := svc.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostService_UpdatePost_Patch(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	author := registerTestUser(t, newUserService(db), "author@example.com", "Sup3rSecret")
	post, err := svc.CreatePost(ctx, CreatePostInput{
		CreatorID: author.ID, Title: "Original", Content: "keep me",
	})
	require.NoError(t, err)

	title := "Renamed"
	updated, err := svc.UpdatePost(ctx, UpdatePostInput{PostID: post.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "keep me", updated.Content, "fields not named in the patch keep their values")
}

func TestPostService_UpdatePost_ReplacesTags(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	author := registerTestUser(t, newUserService(db), "author@example.com", "Sup3rSecret")
	t1 := seedTag(t, db, "one")
	t2 := seedTag(t, db, "two")
	t3 := seedTag(t, db, "three")

	post, err := svc.CreatePost(ctx, CreatePostInput{
		CreatorID: author.ID, Title: "Tagged", Content: "body",
		TagIDs: []uint{t1.ID, t2.ID},
	})
	require.NoError(t, err)

	_, err = svc.UpdatePost(ctx, UpdatePostInput{PostID: post.ID, TagIDs: []uint{t3.ID}})
	require.NoError(t, err)

	tags, err := svc.GetPostTags(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, t3.ID, tags[0].ID)

	// A nil TagIDs leaves the links alone.
	content := "edited"
	_, err = svc.UpdatePost(ctx, UpdatePostInput{PostID: post.ID, Content: &content})
	require.NoError(t, err)

	tags, err = svc.GetPostTags(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestPostService_DeletePost(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()

	author := registerTestUser(t, newUserService(db), "author@example.com", "Sup3rSecret")
	post, err := svc.CreatePost(ctx, CreatePostInput{
		CreatorID: author.ID, Title: "Doomed", Content: "body",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, post.ID))

	_, err = svc.GetPost(ctx, post.ID)
	assert.True(t, models.IsNotFound(err))

	err = svc.DeletePost(ctx, post.ID)
	assert.True(t, models.IsNotFound(err))
}
