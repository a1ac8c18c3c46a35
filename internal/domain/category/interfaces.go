package category

import (
	"context"

	"github.com/rpggio/intentcat/internal/domain/activity"
)

// Repository provides persistence for categories.
type Repository interface {
	Create(ctx context.Context, tenantID string, cat *Category) error
	Get(ctx context.Context, tenantID, id string) (*Category, error)
	List(ctx context.Context, tenantID string) ([]CategorySummary, error)
}

// ActivityRepository logs category activities.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}
