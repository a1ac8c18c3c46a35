package category

import "errors"

var (
	// ErrCategoryNotFound indicates the category doesn't exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidInput indicates invalid category input.
	ErrInvalidInput = errors.New("invalid category input")
)
