package service

import (
	"context"
	"errors"
	"testing"

	"memorymap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepoStub struct {
	createFn     func(context.Context, *models.Memory) error
	getByIDFn    func(context.Context, uint) (*models.Memory, error)
	listFn       func(context.Context, int, int) ([]models.Memory, error)
	listByUserFn func(context.Context, uint, int, int) ([]models.Memory, error)
	deleteFn     func(context.Context, uint) error
}

func (s *memoryRepoStub) Create(ctx context.Context, memory *models.Memory) error {
	return s.createFn(ctx, memory)
}
func (s *memoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Memory, error) {
	return s.getByIDFn(ctx, id)
}
func (s *memoryRepoStub) List(ctx context.Context, limit, offset int) ([]models.Memory, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *memoryRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Memory, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *memoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopMemoryRepo() *memoryRepoStub {
	return &memoryRepoStub{
		createFn:     func(context.Context, *models.Memory) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Memory, error) { return &models.Memory{}, nil },
		listFn:       func(context.Context, int, int) ([]models.Memory, error) { return nil, nil },
		listByUserFn: func(context.Context, uint, int, int) ([]models.Memory, error) { return nil, nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}
