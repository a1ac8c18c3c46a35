package intent

import "errors"

var (
	// ErrIntentNotFound indicates the intent doesn't exist.
	ErrIntentNotFound = errors.New("intent not found")
	// ErrCategoryNotFound indicates the referenced category doesn't exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidInput indicates invalid input for intent operations.
	ErrInvalidInput = errors.New("invalid intent input")
	// ErrInvalidKind indicates an unknown intent kind.
	ErrInvalidKind = errors.New("invalid intent kind")
	// ErrInvalidStatus indicates an unknown intent status.
	ErrInvalidStatus = errors.New("invalid intent status")
)
