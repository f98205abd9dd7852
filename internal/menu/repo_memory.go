package menu

import (
	"context"
	"sync"

	"sales-assistant/internal/llm"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Analysis),
	}
}

// Create stores an analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis.MenuItems = cloneItems(analysis.MenuItems)
	r.data[analysis.ID] = analysis
	return nil
}

// GetByID returns an analysis by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.data[id]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	a.MenuItems = cloneItems(a.MenuItems)
	return a, nil
}

func cloneItems(items []llm.MenuItem) []llm.MenuItem {
	if items == nil {
		return nil
	}
	out := make([]llm.MenuItem, len(items))
	for i, item := range items {
		item.Ingredients = append([]string(nil), item.Ingredients...)
		item.Allergens = append([]string(nil), item.Allergens...)
		out[i] = item
	}
	return out
}
