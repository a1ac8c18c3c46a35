package intent

import "time"

// Kind distinguishes functional intents from conversational ones.
type Kind string

const (
	KindCore    Kind = "core"
	KindNonCore Kind = "non_core"
)

// Kinds lists every intent kind in catalog order.
var Kinds = []Kind{KindCore, KindNonCore}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindCore || k == KindNonCore
}

// Status is the lifecycle status of an intent. Only active intents are
// considered during recognition.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDraft    Status = "draft"
	StatusTesting  Status = "testing"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDraft, StatusTesting:
		return true
	}
	return false
}

// Intent is one recognizable user-request pattern in the catalog.
type Intent struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	CategoryID  string     `json:"category_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Keywords    []string   `json:"keywords"`
	Kind        Kind       `json:"kind"`
	Status      Status     `json:"status"`
	Response    string     `json:"response,omitempty"` // canned reply for non-core intents
	UsageCount  int64      `json:"usage_count"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ModifiedAt  time.Time  `json:"modified_at"`
}

// IntentRef is a lightweight reference to an intent
type IntentRef struct {
	ID         string     `json:"id"`
	CategoryID string     `json:"category_id,omitempty"`
	Name       string     `json:"name"`
	Kind       Kind       `json:"kind"`
	Status     Status     `json:"status"`
	UsageCount int64      `json:"usage_count"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

// Ref returns the lightweight reference for the intent.
func (i Intent) Ref() IntentRef {
	return IntentRef{
		ID:         i.ID,
		CategoryID: i.CategoryID,
		Name:       i.Name,
		Kind:       i.Kind,
		Status:     i.Status,
		UsageCount: i.UsageCount,
		LastUsedAt: i.LastUsedAt,
	}
}

// SearchResult is a fuzzy name-search hit.
type SearchResult struct {
	Intent IntentRef `json:"intent"`
	Score  int       `json:"score"`
}
