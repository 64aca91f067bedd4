package activity

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	ItemTitle *string
	SessionID *string
	Type      *Type
	Limit     int
	Offset    int
}
