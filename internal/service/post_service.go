package service

import (
	"context"
	"time"

	"corkboard/internal/models"
	"corkboard/internal/repository"
)

// PostService owns post lifecycle and tag attachment rules.
type PostService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
	userRepo repository.UserRepository
}

// CreatePostInput carries the fields for a new post. TagIDs, when present,
// become the post's initial tag set.
type CreatePostInput struct {
	CreatorID uint
	Title     string
	Content   string
	ExpiresOn *time.Time
	TagIDs    []uint
}

// UpdatePostInput carries optional fields; nil means "keep current value".
// A non-nil TagIDs performs a full replace of the post's tag links, so an
// empty non-nil slice clears them all.
type UpdatePostInput struct {
	PostID    uint
	Title     *string
	Content   *string
	ExpiresOn *time.Time
	TagIDs    []uint
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, tagRepo: tagRepo, userRepo: userRepo}
}

// CreatePost inserts the post and attaches any requested tags. The returned
// post carries the store-assigned id.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	exists, err := s.userRepo.Exists(ctx, in.CreatorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", in.CreatorID)
	}

	if err := s.checkTags(ctx, in.TagIDs); err != nil {
		return nil, err
	}

	post := &models.Post{
		CreatorID: in.CreatorID,
		Title:     in.Title,
		Content:   in.Content,
		ExpiresOn: in.ExpiresOn,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if len(in.TagIDs) > 0 {
		if err := s.postRepo.ReplaceTags(ctx, post.ID, in.TagIDs); err != nil {
			return nil, err
		}
	}

	return post, nil
}

// GetPost returns the full post record with its creator preloaded.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns all posts, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPostTags returns the tags currently attached to a post.
func (s *PostService) GetPostTags(ctx context.Context, postID uint) ([]models.Tag, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.postRepo.GetTags(ctx, postID)
}

// UpdatePost fetches the current row, substitutes only the provided fields,
// and writes it back. A non-nil TagIDs replaces the full tag set.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		post.Content = *in.Content
	}
	if in.ExpiresOn != nil {
		post.ExpiresOn = in.ExpiresOn
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if in.TagIDs != nil {
		if err := s.checkTags(ctx, in.TagIDs); err != nil {
			return nil, err
		}
		if err := s.postRepo.ReplaceTags(ctx, post.ID, in.TagIDs); err != nil {
			return nil, err
		}
	}

	return post, nil
}

// DeletePost removes the post; comments and tag links cascade.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	exists, err := s.postRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Post", id)
	}
	return s.postRepo.Delete(ctx, id)
}

// checkTags verifies every referenced tag exists before linking.
func (s *PostService) checkTags(ctx context.Context, tagIDs []uint) error {
	for _, tagID := range tagIDs {
		exists, err := s.tagRepo.Exists(ctx, tagID)
		if err != nil {
			return err
		}
		if !exists {
			return models.NewNotFoundError("Tag", tagID)
		}
	}
	return nil
}
