package recognition

import "errors"

var (
	// ErrValidation indicates unusable input: blank text, an empty or
	// oversized batch, or an out-of-range threshold.
	ErrValidation = errors.New("validation failed")
	// ErrCatalogUnavailable indicates active intents could not be loaded.
	ErrCatalogUnavailable = errors.New("intent catalog unavailable")
	// ErrUsagePersist indicates the usage bookkeeping write failed. It is
	// logged and never returned to recognition callers.
	ErrUsagePersist = errors.New("failed to persist intent usage")
)
