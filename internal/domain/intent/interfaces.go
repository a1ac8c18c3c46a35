package intent

import (
	"context"

	"github.com/rpggio/intentcat/internal/domain/activity"
	"github.com/rpggio/intentcat/internal/domain/category"
)

// IntentRepository provides persistence for intents.
type IntentRepository interface {
	Create(ctx context.Context, tenantID string, in *Intent) error
	Get(ctx context.Context, tenantID, id string) (*Intent, error)
	Update(ctx context.Context, tenantID string, in *Intent) error
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts ListIntentsOptions) ([]IntentRef, error)
}

// CategoryRepository resolves category references.
type CategoryRepository interface {
	Get(ctx context.Context, tenantID, id string) (*category.Category, error)
}

// ActivityRepository logs catalog activities.
type ActivityRepository interface {
	Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error
}
