package intent

// ListIntentsOptions provides filtering options for listing intents.
type ListIntentsOptions struct {
	Kind       *Kind
	Status     *Status
	CategoryID string
	Limit      int
	Offset     int
}
