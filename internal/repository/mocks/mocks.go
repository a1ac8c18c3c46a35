package mocks

import (
	"context"
	"time"

	"github.com/rpggio/intentcat/internal/domain/activity"
	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/stretchr/testify/mock"
)

// IntentRepository is a mock for intent.IntentRepository.
type IntentRepository struct {
	mock.Mock
}

func (m *IntentRepository) Create(ctx context.Context, tenantID string, in *intent.Intent) error {
	args := m.Called(ctx, tenantID, in)
	return args.Error(0)
}

func (m *IntentRepository) Get(ctx context.Context, tenantID, id string) (*intent.Intent, error) {
	args := m.Called(ctx, tenantID, id)
	if in, ok := args.Get(0).(*intent.Intent); ok {
		return in, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IntentRepository) Update(ctx context.Context, tenantID string, in *intent.Intent) error {
	args := m.Called(ctx, tenantID, in)
	return args.Error(0)
}

func (m *IntentRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *IntentRepository) List(ctx context.Context, tenantID string, opts intent.ListIntentsOptions) ([]intent.IntentRef, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]intent.IntentRef); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// CatalogRepository is a mock for recognition.CatalogRepository.
type CatalogRepository struct {
	mock.Mock
}

func (m *CatalogRepository) ListActive(ctx context.Context, tenantID string, kinds []intent.Kind) ([]intent.Intent, error) {
	args := m.Called(ctx, tenantID, kinds)
	if list, ok := args.Get(0).([]intent.Intent); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CatalogRepository) RecordUsage(ctx context.Context, tenantID, id string, kind intent.Kind, at time.Time) error {
	args := m.Called(ctx, tenantID, id, kind, at)
	return args.Error(0)
}

// CategoryRepository is a mock for category.Repository.
type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) Create(ctx context.Context, tenantID string, cat *category.Category) error {
	args := m.Called(ctx, tenantID, cat)
	return args.Error(0)
}

func (m *CategoryRepository) Get(ctx context.Context, tenantID, id string) (*category.Category, error) {
	args := m.Called(ctx, tenantID, id)
	if cat, ok := args.Get(0).(*category.Category); ok {
		return cat, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryRepository) List(ctx context.Context, tenantID string) ([]category.CategorySummary, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]category.CategorySummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
