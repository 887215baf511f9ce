package history

// ListOptions provides filtering options for listing history.
type ListOptions struct {
	Action *Action
	Limit  int
	Offset int
}
