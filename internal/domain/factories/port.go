package factories

import "context"

// Repository port (interface for the factory table).
type Repository interface {
	List(ctx context.Context) ([]*Factory, error)
}
