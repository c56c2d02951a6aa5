package service

import (
	"context"
	"time"

	"corkboard/internal/models"
	"corkboard/internal/repository"
)

// CommentService owns the comment lifecycle.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

// CreateCommentInput carries the fields for a new comment.
type CreateCommentInput struct {
	PostID  uint
	UserID  uint
	Content string
}

// UpdateCommentInput carries optional fields; nil means "keep current value".
type UpdateCommentInput struct {
	CommentID uint
	Content   *string
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, userRepo: userRepo}
}

// CreateComment inserts the comment after checking both sides of the
// relation exist, and returns it with the store-assigned id.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	postExists, err := s.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if !postExists {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	userExists, err := s.userRepo.Exists(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: in.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// GetComment returns the full comment record.
func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// ListPostComments returns a post's comments in posting order.
func (s *CommentService) ListPostComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return s.commentRepo.GetByPost(ctx, postID)
}

// UpdateComment fetches the current row, substitutes the provided content,
// stamps EditedOn, and writes it back.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		comment.Content = *in.Content
		now := time.Now()
		comment.EditedOn = &now
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes the comment.
func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	exists, err := s.commentRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Comment", id)
	}
	return s.commentRepo.Delete(ctx, id)
}
