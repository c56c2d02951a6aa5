package service

import (
	"context"

	"corkboard/internal/models"
	"corkboard/internal/repository"
)

// TagService owns the tag lifecycle.
type TagService struct {
	tagRepo repository.TagRepository
}

// CreateTagInput carries the fields for a new tag.
type CreateTagInput struct {
	Name        string
	Description *string
	Colour      string
}

// UpdateTagInput carries optional fields; nil means "keep current value".
type UpdateTagInput struct {
	TagID       uint
	Name        *string
	Description *string
	Colour      *string
}

// NewTagService returns a new TagService.
func NewTagService(tagRepo repository.TagRepository) *TagService {
	return &TagService{tagRepo: tagRepo}
}

// CreateTag inserts the tag and returns it with the store-assigned id.
func (s *TagService) CreateTag(ctx context.Context, in CreateTagInput) (*models.Tag, error) {
	tag := &models.Tag{
		Name:        in.Name,
		Description: in.Description,
		Colour:      in.Colour,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// GetTag returns the full tag record.
func (s *TagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

// ListTags returns all tags.
func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

// UpdateTag fetches the current row, substitutes only the provided fields,
// and writes it back.
func (s *TagService) UpdateTag(ctx context.Context, in UpdateTagInput) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, in.TagID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, models.NewValidationError("Name cannot be empty")
		}
		tag.Name = *in.Name
	}
	if in.Description != nil {
		tag.Description = in.Description
	}
	if in.Colour != nil {
		if *in.Colour == "" {
			return nil, models.NewValidationError("Colour cannot be empty")
		}
		tag.Colour = *in.Colour
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// DeleteTag removes the tag; its post links cascade, posts are untouched.
func (s *TagService) DeleteTag(ctx context.Context, id uint) error {
	exists, err := s.tagRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Tag", id)
	}
	return s.tagRepo.Delete(ctx, id)
}
