package service

import (
	"context"
	"strings"

	"memorymap/internal/models"
	"memorymap/internal/repository"
	"memorymap/internal/validation"
)

type ProfileService struct {
	userRepo repository.UserRepository
}

type CreateProfileInput struct {
	ID       uint
	Email    string
	Username string
}

func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// CreateProfile creates the profile row for an account. When no username is
// given it falls back to the part of the email before the @.
func (s *ProfileService) CreateProfile(ctx context.Context, in CreateProfileInput) (*models.User, error) {
	if in.ID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		username = strings.SplitN(in.Email, "@", 2)[0]
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user := &models.User{
		ID:       in.ID,
		Email:    in.Email,
		Username: username,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
