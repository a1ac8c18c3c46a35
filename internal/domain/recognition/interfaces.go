package recognition

import (
	"context"
	"time"

	"github.com/rpggio/intentcat/internal/domain/intent"
)

// CatalogRepository supplies active intents and accepts usage updates.
// RecordUsage must increment atomically per intent.
type CatalogRepository interface {
	ListActive(ctx context.Context, tenantID string, kinds []intent.Kind) ([]intent.Intent, error)
	RecordUsage(ctx context.Context, tenantID, id string, kind intent.Kind, at time.Time) error
}
