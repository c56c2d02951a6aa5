// Package service implements the business rules on top of the repositories.
package service

import (
	"context"

	"corkboard/internal/models"
	"corkboard/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService owns registration, login verification, and profile updates.
// It is the only place plaintext passwords are handled; they go straight
// into bcrypt and are never stored on a struct or logged.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateUserInput carries optional profile fields; nil means "keep current value".
type UpdateUserInput struct {
	UserID    uint
	FirstName *string
	LastName  *string
	Bio       *string
	Admin     *bool
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register hashes the password with bcrypt and inserts the user. A duplicate
// email surfaces as a CONFLICT error from the unique constraint.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashed),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// AttemptLogin verifies the plaintext against the stored hash. An unknown
// email or a mismatch both yield ok=false; the user is returned only on
// success. Neither the plaintext nor the hash is exposed to callers' logs.
func (s *UserService) AttemptLogin(ctx context.Context, email, password string) (*models.User, bool, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, false, nil
	}

	return user, true, nil
}

// GetUser returns the full user record.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserWithPosts returns the user along with their posts, newest first.
func (s *UserService) GetUserWithPosts(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDWithPosts(ctx, id)
}

// ListUsers returns all users.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateUser fetches the current row, substitutes only the provided fields,
// and writes the whole row back.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.FirstName != nil {
		if *in.FirstName == "" {
			return nil, models.NewValidationError("First name cannot be empty")
		}
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		if *in.LastName == "" {
			return nil, models.NewValidationError("Last name cannot be empty")
		}
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Admin != nil {
		user.Admin = *in.Admin
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes the user; the store cascades to their posts, comments,
// and the post_tags rows of those posts.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("User", id)
	}
	return s.userRepo.Delete(ctx, id)
}
