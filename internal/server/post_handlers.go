package server

import (
	"time"

	"corkboard/internal/models"
	"corkboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title     string     `json:"title"`
		Content   string     `json:"content"`
		ExpiresOn *time.Time `json:"expires_on"`
		TagIDs    []uint     `json:"tag_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" || req.Content == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title and content are required"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		CreatorID: userID,
		Title:     req.Title,
		Content:   req.Content,
		ExpiresOn: req.ExpiresOn,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// GetPostTags handles GET /api/posts/:id/tags
func (s *Server) GetPostTags(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tags, err := s.postService.GetPostTags(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(tags)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.requirePostOwner(c, id); err != nil {
		return nil
	}

	var req struct {
		Title     *string    `json:"title"`
		Content   *string    `json:"content"`
		ExpiresOn *time.Time `json:"expires_on"`
		TagIDs    []uint     `json:"tag_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:    id,
		Title:     req.Title,
		Content:   req.Content,
		ExpiresOn: req.ExpiresOn,
		TagIDs:    req.TagIDs,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.requirePostOwner(c, id); err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// requirePostOwner ensures the current user created the post or is an admin.
// On failure the response is already written and errResponseWritten returned.
func (s *Server) requirePostOwner(c *fiber.Ctx, postID uint) error {
	userID := c.Locals("userID").(uint)

	post, err := s.postRepo.GetByID(c.UserContext(), postID)
	if err != nil {
		_ = respondError(c, err)
		return errResponseWritten
	}

	if post.CreatorID == userID {
		return nil
	}

	admin, err := s.isAdmin(c.UserContext(), userID)
	if err != nil {
		_ = respondError(c, err)
		return errResponseWritten
	}
	if !admin {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("Not the post creator"))
		return errResponseWritten
	}

	return nil
}
