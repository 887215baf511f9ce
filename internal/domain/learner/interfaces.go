package learner

import "context"

// DocumentLookup reports whether an active learner holds a document number.
type DocumentLookup interface {
	ExistsActiveDocument(ctx context.Context, documentNumber string) (bool, error)
}

// Repository provides persistence for learners.
type Repository interface {
	DocumentLookup
	Create(ctx context.Context, l *Learner) error
	// Get returns an active learner.
	Get(ctx context.Context, id string) (*Learner, error)
	// List returns active learners matching search, ordered by last name
	// then first name.
	List(ctx context.Context, search string) ([]Learner, error)
	SoftDelete(ctx context.Context, id string) error
	Stats(ctx context.Context) (Stats, error)
}
