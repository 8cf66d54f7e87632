package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"memorymap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryService_CreateMemory_RequiresUser(t *testing.T) {
	t.Parallel()

	repo := noopMemoryRepo()
	created := false
	repo.createFn = func(context.Context, *models.Memory) error {
		created = true
		return nil
	}
	svc := NewMemoryService(repo)

	_, err := svc.CreateMemory(context.Background(), CreateMemoryInput{
		Title:       "Boğaz'da Gün Batımı",
		Description: "Sunset over the strait",
		Latitude:    41.0082,
		Longitude:   28.9784,
	})
	assertUnauthorizedError(t, err)
	assert.False(t, created, "no insert should happen without an authenticated user")
}

func TestMemoryService_CreateMemory_Validation(t *testing.T) {
	t.Parallel()

	base := CreateMemoryInput{
		UserID:      1,
		Title:       "A memory",
		Description: "Something happened here",
		Latitude:    41.0082,
		Longitude:   28.9784,
	}

	tests := []struct {
		name   string
		mutate func(*CreateMemoryInput)
	}{
		{"empty title", func(in *CreateMemoryInput) { in.Title = "   " }},
		{"title too long", func(in *CreateMemoryInput) { in.Title = strings.Repeat("x", 201) }},
		{"empty description", func(in *CreateMemoryInput) { in.Description = "" }},
		{"bad date", func(in *CreateMemoryInput) { in.Date = "01/06/2024" }},
		{"latitude out of range", func(in *CreateMemoryInput) { in.Latitude = 91 }},
		{"longitude out of range", func(in *CreateMemoryInput) { in.Longitude = -181 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := base
			tt.mutate(&in)
			svc := NewMemoryService(noopMemoryRepo())
			_, err := svc.CreateMemory(context.Background(), in)
			assertValidationError(t, err)
		})
	}
}

func TestMemoryService_CreateMemory_NoImage(t *testing.T) {
	t.Parallel()

	repo := noopMemoryRepo()
	var saved *models.Memory
	repo.createFn = func(_ context.Context, m *models.Memory) error {
		saved = m
		m.ID = 10
		return nil
	}
	svc := NewMemoryService(repo)

	memory, err := svc.CreateMemory(context.Background(), CreateMemoryInput{
		UserID:      1,
		Title:       "İstanbul",
		Description: "Bosphorus walk",
		Latitude:    41.0082,
		Longitude:   28.9784,
		Tags:        []string{"aile", "tatil"},
		Date:        "2024-06-01",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Nil(t, saved.ImageURL, "image_url should stay null when no image was uploaded")
	assert.Equal(t, models.TagList{"aile", "tatil"}, saved.Tags)
	assert.Equal(t, uint(10), memory.ID)
}

func TestMemoryService_CreateMemory_DefaultsDateToToday(t *testing.T) {
	t.Parallel()

	repo := noopMemoryRepo()
	var saved *models.Memory
	repo.createFn = func(_ context.Context, m *models.Memory) error {
		saved = m
		return nil
	}
	svc := NewMemoryService(repo)

	_, err := svc.CreateMemory(context.Background(), CreateMemoryInput{
		UserID:      1,
		Title:       "today",
		Description: "no explicit date",
		Latitude:    0,
		Longitude:   0,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, time.Now().UTC().Format(models.DateLayout), saved.Date)
}

func TestMemoryService_CreateMemory_NormalizesTags(t *testing.T) {
	t.Parallel()

	repo := noopMemoryRepo()
	var saved *models.Memory
	repo.createFn = func(_ context.Context, m *models.Memory) error {
		saved = m
		return nil
	}
	svc := NewMemoryService(repo)

	_, err := svc.CreateMemory(context.Background(), CreateMemoryInput{
		UserID:      1,
		Title:       "tags",
		Description: "tag normalization",
		Tags:        []string{" aile ", "aile", "", "tatil"},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, models.TagList{"aile", "tatil"}, saved.Tags)
}

func TestMemoryService_DeleteMemory_OwnerOnly(t *testing.T) {
	t.Parallel()

	repo := noopMemoryRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Memory, error) {
		return &models.Memory{ID: id, UserID: 2}, nil
	}
	deleted := false
	repo.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}
	svc := NewMemoryService(repo)

	err := svc.DeleteMemory(context.Background(), 1, 5)
	assertUnauthorizedError(t, err)
	assert.False(t, deleted)

	err = svc.DeleteMemory(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestMemoryService_ListMemories(t *testing.T) {
	t.Parallel()

	t.Run("clamps limit", func(t *testing.T) {
		t.Parallel()
		repo := noopMemoryRepo()
		var gotLimit int
		repo.listFn = func(_ context.Context, limit, _ int) ([]models.Memory, error) {
			gotLimit = limit
			return nil, nil
		}
		svc := NewMemoryService(repo)
		_, err := svc.ListMemories(context.Background(), ListMemoriesInput{Limit: 500})
		require.NoError(t, err)
		assert.Equal(t, 20, gotLimit)
	})

	t.Run("filters by user", func(t *testing.T) {
		t.Parallel()
		repo := noopMemoryRepo()
		var gotUserID uint
		repo.listByUserFn = func(_ context.Context, userID uint, _, _ int) ([]models.Memory, error) {
			gotUserID = userID
			return []models.Memory{{ID: 1, UserID: userID}}, nil
		}
		svc := NewMemoryService(repo)
		memories, err := svc.ListMemories(context.Background(), ListMemoriesInput{UserID: 7})
		require.NoError(t, err)
		assert.Equal(t, uint(7), gotUserID)
		assert.Len(t, memories, 1)
	})

	t.Run("repo error propagates", func(t *testing.T) {
		t.Parallel()
		repoErr := errors.New("db down")
		repo := noopMemoryRepo()
		repo.listFn = func(context.Context, int, int) ([]models.Memory, error) {
			return nil, repoErr
		}
		svc := NewMemoryService(repo)
		_, err := svc.ListMemories(context.Background(), ListMemoriesInput{})
		assert.ErrorIs(t, err, repoErr)
	})
}
