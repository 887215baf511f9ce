package program

import "context"

// Repository provides persistence for programs. Codes are unique.
type Repository interface {
	Create(ctx context.Context, p *Program) error
	Get(ctx context.Context, id string) (*Program, error)
	List(ctx context.Context, opts ListOptions) ([]Program, error)
}
