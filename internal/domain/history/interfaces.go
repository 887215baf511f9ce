package history

import "context"

// Repository reads history entries. Entries are written by the entity
// stores, inside the transaction of the change they describe.
type Repository interface {
	List(ctx context.Context, projectID string, opts ListOptions) ([]Entry, error)
}
