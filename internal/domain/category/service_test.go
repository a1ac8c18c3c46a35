package category_test

import (
	"context"
	"testing"

	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/repository"
	"github.com/rpggio/intentcat/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateGeneratesID(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.CategoryRepository{}
	activities := &mocks.ActivityRepository{}
	repo.On("Create", ctx, tenantID, mock.Anything).Return(nil)
	activities.On("Log", ctx, tenantID, mock.Anything).Return(nil)

	svc := category.NewService(repo, activities, nil)
	cat, err := svc.Create(ctx, tenantID, category.CreateRequest{Name: " Media "})
	require.NoError(t, err)
	require.NotEmpty(t, cat.ID)
	require.Equal(t, "Media", cat.Name)
	activities.AssertNumberOfCalls(t, "Log", 1)
}

func TestCategoryService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	svc := category.NewService(&mocks.CategoryRepository{}, nil, nil)
	_, err := svc.Create(ctx, "tenant1", category.CreateRequest{Name: "  "})
	require.ErrorIs(t, err, category.ErrInvalidInput)
}

func TestCategoryService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.CategoryRepository{}
	repo.On("Get", ctx, tenantID, "missing").Return((*category.Category)(nil), repository.ErrNotFound)

	svc := category.NewService(repo, nil, nil)
	_, err := svc.Get(ctx, tenantID, "missing")
	require.ErrorIs(t, err, category.ErrCategoryNotFound)
}
