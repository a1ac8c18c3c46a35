package mcp

import (
	"github.com/rpggio/intentcat/internal/domain/activity"
	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/rpggio/intentcat/internal/domain/recognition"
)

type RecognizeParams struct {
	Text          string  `json:"text" jsonschema:"free-form user utterance"`
	MinConfidence float64 `json:"min_confidence,omitempty" jsonschema:"matched-bucket threshold in (0, 1]; server default when omitted"`
}

type RecognizeBatchParams struct {
	Texts         []string `json:"texts" jsonschema:"up to 100 utterances; blank entries are skipped"`
	MinConfidence float64  `json:"min_confidence,omitempty" jsonschema:"matched-bucket threshold in (0, 1]; server default when omitted"`
}

type RecognizeBatchResponse struct {
	Results []recognition.BatchEntry `json:"results"`
}

type CreateIntentParams struct {
	CategoryID  string        `json:"category_id,omitempty"`
	Name        string        `json:"name" jsonschema:"canonical phrasing of the intent"`
	Description string        `json:"description,omitempty"`
	Keywords    []string      `json:"keywords,omitempty"`
	Kind        intent.Kind   `json:"kind" jsonschema:"core or non_core"`
	Status      intent.Status `json:"status,omitempty" jsonschema:"active (default), inactive, draft or testing"`
	Response    string        `json:"response,omitempty" jsonschema:"canned reply for non_core intents"`
}

type UpdateIntentParams struct {
	ID          string   `json:"id"`
	CategoryID  *string  `json:"category_id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty" jsonschema:"replaces the keyword list when present"`
	Response    *string  `json:"response,omitempty"`
}

type SetIntentStatusParams struct {
	ID     string        `json:"id"`
	Status intent.Status `json:"status"`
}

type IntentIDParams struct {
	ID string `json:"id"`
}

type DeleteIntentResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ListIntentsParams struct {
	Kind       intent.Kind   `json:"kind,omitempty"`
	Status     intent.Status `json:"status,omitempty"`
	CategoryID string        `json:"category_id,omitempty"`
	Limit      int           `json:"limit,omitempty"`
	Offset     int           `json:"offset,omitempty"`
}

type ListIntentsResponse struct {
	Intents []intent.IntentRef `json:"intents"`
}

type SearchIntentsParams struct {
	Query string `json:"query" jsonschema:"fuzzy pattern matched against intent names"`
	Limit int    `json:"limit,omitempty"`
}

type SearchIntentsResponse struct {
	Results []intent.SearchResult `json:"results"`
}

type CreateCategoryParams struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ListCategoriesParams struct{}

type ListCategoriesResponse struct {
	Categories []category.CategorySummary `json:"categories"`
}

type GetRecentActivityParams struct {
	IntentID   string                `json:"intent_id,omitempty"`
	CategoryID string                `json:"category_id,omitempty"`
	Type       activity.ActivityType `json:"type,omitempty"`
	Limit      int                   `json:"limit,omitempty"`
}

type RecentActivityResponse struct {
	Entries []activity.ActivityEntry `json:"entries"`
}
