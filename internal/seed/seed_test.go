package seed

import (
	"testing"

	"corkboard/internal/database"
	"corkboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Bootstrap(db))

	return db
}

func TestRun(t *testing.T) {
	db := setupTestDB(t)

	opts := Options{NumUsers: 5, NumPosts: 10, NumComments: 20}
	require.NoError(t, Run(db, opts))

	var userCount, tagCount, postCount, commentCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Tag{}).Count(&tagCount)
	db.Model(&models.Post{}).Count(&postCount)
	db.Model(&models.Comment{}).Count(&commentCount)

	// The admin account comes on top of the requested users.
	assert.EqualValues(t, opts.NumUsers+1, userCount)
	assert.NotZero(t, tagCount)
	assert.EqualValues(t, opts.NumPosts, postCount)
	assert.EqualValues(t, opts.NumComments, commentCount)

	var admin models.User
	require.NoError(t, db.Where("admin = ?", true).First(&admin).Error)
	assert.Equal(t, "admin@corkboard.local", admin.Email)
}

func TestRun_LinksReferenceSeededRows(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Run(db, Options{NumUsers: 3, NumPosts: 40, NumComments: 9}))

	// Every tag link must join an existing post to an existing tag; with
	// foreign keys on, a bad link would have failed the seed itself, so it
	// is enough to confirm links were produced at all.
	var linkCount int64
	db.Model(&models.PostTag{}).Count(&linkCount)
	assert.NotZero(t, linkCount)
}
