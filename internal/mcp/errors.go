package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/rpggio/intentcat/internal/domain/recognition"
	"github.com/rpggio/intentcat/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors become
// INTERNAL without leaking their text.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, recognition.ErrValidation):
		return &APIError{Code: "VALIDATION_FAILED", Message: err.Error(), RecoveryHint: "Send non-empty text, at most 100 batch inputs, min_confidence in (0, 1]"}
	case errors.Is(err, recognition.ErrCatalogUnavailable):
		return &APIError{Code: "CATALOG_UNAVAILABLE", Message: "intent catalog unavailable", RecoveryHint: "Retry later"}
	case errors.Is(err, intent.ErrIntentNotFound):
		return &APIError{Code: "INTENT_NOT_FOUND", Message: "intent not found", RecoveryHint: "Check ID spelling or call list_intents"}
	case errors.Is(err, intent.ErrCategoryNotFound), errors.Is(err, category.ErrCategoryNotFound):
		return &APIError{Code: "CATEGORY_NOT_FOUND", Message: "category not found", RecoveryHint: "Call list_categories"}
	case errors.Is(err, intent.ErrInvalidKind):
		return &APIError{Code: "INVALID_KIND", Message: "invalid intent kind", Details: intent.Kinds}
	case errors.Is(err, intent.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: "invalid intent status", RecoveryHint: "Use active, inactive, draft or testing"}
	case errors.Is(err, intent.ErrInvalidInput), errors.Is(err, category.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, repository.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: "entity already exists", RecoveryHint: "Choose a different ID or name"}
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return &APIError{Code: "CATEGORY_NOT_FOUND", Message: "referenced category does not exist"}
	default:
		return &APIError{Code: "INTERNAL", Message: "internal error"}
	}
}
