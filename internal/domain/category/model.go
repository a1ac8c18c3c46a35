package category

import "time"

// Category groups related intents. Categories are flat; an intent refers to
// at most one.
type Category struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategorySummary is a lightweight representation for listing
type CategorySummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	IntentCount   int       `json:"intent_count"`
	ActiveIntents int       `json:"active_intents"`
	CreatedAt     time.Time `json:"created_at"`
}
