package category

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/intentcat/internal/domain/activity"
	"github.com/rpggio/intentcat/internal/repository"
)

// Service handles category operations.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new category service.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, activities: activities, logger: logger}
}

// CreateRequest defines category creation inputs.
type CreateRequest struct {
	ID          string
	Name        string
	Description string
}

// Create creates a new category.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	cat := &Category{
		ID:          id,
		TenantID:    tenantID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, tenantID, cat); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	if s.activities != nil {
		if err := s.activities.Log(ctx, tenantID, &activity.ActivityEntry{
			CategoryID:   &cat.ID,
			ActivityType: activity.TypeCategoryCreated,
			Summary:      fmt.Sprintf("created category %q", cat.Name),
		}); err != nil {
			s.logger.Warn("failed to log activity", "type", activity.TypeCategoryCreated, "category_id", cat.ID, "error", err)
		}
	}

	return cat, nil
}

// Get fetches a category by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Category, error) {
	cat, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("getting category: %w", err)
	}
	return cat, nil
}

// List returns category summaries.
func (s *Service) List(ctx context.Context, tenantID string) ([]CategorySummary, error) {
	return s.repo.List(ctx, tenantID)
}
