package menu

import "context"

// Repo defines persistence operations for menu analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, id string) (Analysis, error)
}
