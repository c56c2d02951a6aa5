package repository

import (
	"context"
	"testing"
	"time"

	"corkboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author@example.com")
	commenter := newTestUser(t, db, "commenter@example.com")
	post := newTestPost(t, db, author.ID, "Commented")

	comment := &models.Comment{PostID: post.ID, UserID: commenter.ID, Content: "hello"}
	require.NoError(t, repo.Create(ctx, comment))
	assert.NotZero(t, comment.ID)

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, post.ID, got.PostID)
	assert.Equal(t, commenter.ID, got.UserID)
	assert.Nil(t, got.EditedOn)
	assert.False(t, got.AddedOn.IsZero())
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	comment, err := repo.GetByID(context.Background(), 11)
	assert.Nil(t, comment)
	assert.True(t, models.IsNotFound(err))
}

func TestCommentRepository_GetByPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author@example.com")
	post := newTestPost(t, db, author.ID, "Busy thread")
	other := newTestPost(t, db, author.ID, "Quiet thread")

	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &models.Comment{
			PostID: post.ID, UserID: author.ID, Content: content,
		}))
	}
	require.NoError(t, repo.Create(ctx, &models.Comment{
		PostID: other.ID, UserID: author.ID, Content: "elsewhere",
	}))

	comments, err := repo.GetByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "author@example.com", comments[0].User.Email)
}

func TestCommentRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author@example.com")
	post := newTestPost(t, db, author.ID, "Edited")
	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "typo here"}
	require.NoError(t, repo.Create(ctx, comment))

	now := time.Now()
	comment.Content = "typo fixed"
	comment.EditedOn = &now
	require.NoError(t, repo.Update(ctx, comment))

	got, err := repo.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "typo fixed", got.Content)
	assert.NotNil(t, got.EditedOn)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author@example.com")
	post := newTestPost(t, db, author.ID, "Moderated")
	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "gone soon"}
	require.NoError(t, repo.Create(ctx, comment))

	require.NoError(t, repo.Delete(ctx, comment.ID))

	exists, err := repo.Exists(ctx, comment.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
