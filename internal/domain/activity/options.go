package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	IntentID     *string
	CategoryID   *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
