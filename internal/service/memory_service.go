package service

import (
	"context"
	"strings"
	"time"

	"memorymap/internal/models"
	"memorymap/internal/repository"
	"memorymap/internal/validation"
)

type MemoryService struct {
	memoryRepo repository.MemoryRepository
}

type CreateMemoryInput struct {
	UserID      uint
	Title       string
	Description string
	Date        string
	Latitude    float64
	Longitude   float64
	ImageURL    *string
	Tags        []string
}

type ListMemoriesInput struct {
	Limit  int
	Offset int
	UserID uint // when non-zero, list only this user's memories
}

func NewMemoryService(memoryRepo repository.MemoryRepository) *MemoryService {
	return &MemoryService{memoryRepo: memoryRepo}
}

func (s *MemoryService) CreateMemory(ctx context.Context, in CreateMemoryInput) (*models.Memory, error) {
	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	const maxTitleLen = 200
	const maxDescriptionLen = 5000

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if len(description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 5000 characters)")
	}

	date := in.Date
	if date == "" {
		date = time.Now().UTC().Format(models.DateLayout)
	} else if err := validation.ValidateDate(date); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if err := validation.ValidateCoordinate(in.Latitude, in.Longitude); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	memory := &models.Memory{
		Title:       title,
		Description: description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		ImageURL:    in.ImageURL,
		Tags:        models.NormalizeTags(in.Tags),
		Date:        date,
		UserID:      in.UserID,
	}
	if err := s.memoryRepo.Create(ctx, memory); err != nil {
		return nil, err
	}
	return memory, nil
}

func (s *MemoryService) ListMemories(ctx context.Context, in ListMemoriesInput) ([]models.Memory, error) {
	limit := in.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	if in.UserID != 0 {
		return s.memoryRepo.ListByUser(ctx, in.UserID, limit, offset)
	}
	return s.memoryRepo.List(ctx, limit, offset)
}

func (s *MemoryService) GetMemory(ctx context.Context, id uint) (*models.Memory, error) {
	return s.memoryRepo.GetByID(ctx, id)
}

func (s *MemoryService) DeleteMemory(ctx context.Context, userID, memoryID uint) error {
	memory, err := s.memoryRepo.GetByID(ctx, memoryID)
	if err != nil {
		return err
	}
	if memory.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own memories")
	}
	return s.memoryRepo.Delete(ctx, memoryID)
}
