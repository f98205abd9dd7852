package recommendations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Product
}

// NewMemoryRepo constructs a MemoryRepo holding products.
func NewMemoryRepo(products ...Product) *MemoryRepo {
	r := &MemoryRepo{data: make(map[string]Product, len(products))}
	for _, p := range products {
		r.data[p.ID] = cloneProduct(p)
	}
	return r
}

// List returns every product ordered by ID.
func (r *MemoryRepo) List(ctx context.Context) ([]Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, len(r.data))
	for _, p := range r.data {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetByID returns a product by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Product, error) {
	if err := ctx.Err(); err != nil {
		return Product{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return cloneProduct(p), nil
}
