package program

// ListOptions provides filtering options for listing programs, ordered by
// name.
type ListOptions struct {
	Search string
	Status Status
	Level  Level
}
