package repository

import (
	"context"
	"errors"
	"time"

	"corkboard/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and their tag links.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetByCreator(ctx context.Context, creatorID uint) ([]models.Post, error)
	GetTitle(ctx context.Context, id uint) (string, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Post, error)

	AddTag(ctx context.Context, postID, tagID uint) error
	RemoveTag(ctx context.Context, postID, tagID uint) error
	// ReplaceTags swaps the full set of tag links for a post in one
	// transaction: every existing link is deleted, then the new set is
	// inserted. It is a replace, not a merge.
	ReplaceTags(ctx context.Context, postID uint, tagIDs []uint) error
	GetTags(ctx context.Context, postID uint) ([]models.Tag, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.AddedOn.IsZero() {
		post.AddedOn = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Creator").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetByCreator(ctx context.Context, creatorID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("added_on DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetTitle(ctx context.Context, id uint) (string, error) {
	var titles []string
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).Limit(1).
		Pluck("title", &titles).Error; err != nil {
		return "", models.NewInternalError(err)
	}
	if len(titles) == 0 {
		return "", models.NewNotFoundError("Post", id)
	}
	return titles[0], nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Preload("Creator").
		Order("added_on DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) AddTag(ctx context.Context, postID, tagID uint) error {
	link := models.PostTag{PostID: postID, TagID: tagID}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Tag already attached to post")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) RemoveTag(ctx context.Context, postID, tagID uint) error {
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND tag_id = ?", postID, tagID).
		Delete(&models.PostTag{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) ReplaceTags(ctx context.Context, postID uint, tagIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range tagIDs {
			link := models.PostTag{PostID: postID, TagID: tagID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetTags(ctx context.Context, postID uint) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.id").
		Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}
