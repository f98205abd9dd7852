package recommendations

import "context"

// Repo persists the product catalog.
type Repo interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
}
