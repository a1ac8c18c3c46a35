package intent

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
	"github.com/sahilm/fuzzy"
)

// defaultSearchLimit caps fuzzy search results when the caller gives none.
const defaultSearchLimit = 20

// Service handles intent catalog administration.
type Service struct {
	intents    IntentRepository
	categories CategoryRepository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new intent service.
func NewService(
	intents IntentRepository,
	categories CategoryRepository,
	activities ActivityRepository,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		intents:    intents,
		categories: categories,
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest describes an intent creation request.
type CreateRequest struct {
	CategoryID  string
	Name        string
	Description string
	Keywords    []string
	Kind        Kind
	Status      Status
	Response    string
}

// UpdateRequest describes a partial intent update. Nil fields are left as is.
type UpdateRequest struct {
	ID          string
	CategoryID  *string
	Name        *string
	Description *string
	Keywords    []string
	Response    *string
}

// Create validates and stores a new intent.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Intent, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, tenantID, req.CategoryID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	now := time.Now()
	in := &Intent{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		CategoryID:  req.CategoryID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Keywords:    NormalizeKeywords(req.Keywords),
		Kind:        req.Kind,
		Status:      status,
		Response:    req.Response,
		CreatedAt:   now,
		ModifiedAt:  now,
	}

	if err := s.intents.Create(ctx, tenantID, in); err != nil {
		return nil, fmt.Errorf("creating intent: %w", err)
	}

	s.logActivity(ctx, tenantID, in.ID, activity.TypeIntentCreated, fmt.Sprintf("created %s intent %q", in.Kind, in.Name))
	return in, nil
}

// Update applies a partial update to an existing intent.
func (s *Service) Update(ctx context.Context, tenantID string, req UpdateRequest) (*Intent, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, ErrInvalidInput
	}

	current, err := s.Get(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		updated.Name = name
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.Keywords != nil {
		updated.Keywords = NormalizeKeywords(req.Keywords)
	}
	if req.Response != nil {
		updated.Response = *req.Response
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, tenantID, *req.CategoryID); err != nil {
			return nil, err
		}
		updated.CategoryID = *req.CategoryID
	}
	updated.ModifiedAt = time.Now()

	if err := s.intents.Update(ctx, tenantID, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("updating intent: %w", err)
	}

	s.logActivity(ctx, tenantID, updated.ID, activity.TypeIntentUpdated, fmt.Sprintf("updated intent %q", updated.Name))
	return &updated, nil
}

// SetStatus moves an intent to a new lifecycle status.
func (s *Service) SetStatus(ctx context.Context, tenantID, id string, status Status) (*Intent, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}

	updated := *current
	updated.Status = status
	updated.ModifiedAt = time.Now()

	if err := s.intents.Update(ctx, tenantID, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("setting intent status: %w", err)
	}

	s.logActivity(ctx, tenantID, updated.ID, activity.TypeStatusChanged,
		fmt.Sprintf("status of %q changed from %s to %s", updated.Name, current.Status, status))
	return &updated, nil
}

// Get returns an intent by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Intent, error) {
	in, err := s.intents.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("getting intent: %w", err)
	}
	return in, nil
}

// Delete removes an intent from the catalog.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.intents.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIntentNotFound
		}
		return fmt.Errorf("deleting intent: %w", err)
	}
	s.logActivity(ctx, tenantID, id, activity.TypeIntentDeleted, fmt.Sprintf("deleted intent %s", id))
	return nil
}

// List returns intent references based on options.
func (s *Service) List(ctx context.Context, tenantID string, opts ListIntentsOptions) ([]IntentRef, error) {
	if opts.Kind != nil && !opts.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	if opts.Status != nil && !opts.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.intents.List(ctx, tenantID, opts)
}

// Search ranks intents whose names fuzzily match query. Intended for
// catalog browsing, not recognition.
func (s *Service) Search(ctx context.Context, tenantID, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	refs, err := s.intents.List(ctx, tenantID, ListIntentsOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing intents: %w", err)
	}

	matches := fuzzy.FindFrom(query, refNames(refs))
	results := make([]SearchResult, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(results) == limit {
			break
		}
		results = append(results, SearchResult{Intent: refs[m.Index], Score: m.Score})
	}
	return results, nil
}

// refNames adapts a ref slice to fuzzy.Source.
type refNames []IntentRef

func (r refNames) String(i int) string { return r[i].Name }
func (r refNames) Len() int            { return len(r) }

func (s *Service) ensureCategory(ctx context.Context, tenantID, categoryID string) error {
	if categoryID == "" || s.categories == nil {
		return nil
	}
	if _, err := s.categories.Get(ctx, tenantID, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("loading category: %w", err)
	}
	return nil
}

func (s *Service) logActivity(ctx context.Context, tenantID, intentID string, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	if err := s.activities.Log(ctx, tenantID, &activity.ActivityEntry{
		IntentID:     &intentID,
		ActivityType: typ,
		Summary:      summary,
	}); err != nil {
		s.logger.Warn("failed to log activity", "type", typ, "intent_id", intentID, "error", err)
	}
}
