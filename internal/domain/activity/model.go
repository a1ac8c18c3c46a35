package activity

import "time"

// ActivityType represents the type of catalog event
type ActivityType string

const (
	TypeIntentCreated   ActivityType = "intent_created"
	TypeIntentUpdated   ActivityType = "intent_updated"
	TypeIntentDeleted   ActivityType = "intent_deleted"
	TypeStatusChanged   ActivityType = "status_changed"
	TypeCategoryCreated ActivityType = "category_created"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	TenantID     string       `json:"tenant_id"`
	IntentID     *string      `json:"intent_id,omitempty"`
	CategoryID   *string      `json:"category_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
