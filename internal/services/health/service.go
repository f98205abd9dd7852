package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	db    Pinger
	store string
}

// NewService constructs a health service. db may be nil when repositories are in memory.
func NewService(db Pinger, storeType string) *Service {
	return &Service{db: db, store: storeType}
}

// Status reports liveness plus the backing dependencies.
func (s *Service) Status(ctx context.Context) map[string]any {
	out := map[string]any{
		"ok":       true,
		"database": "memory",
		"storage":  s.store,
	}
	if s.db == nil {
		return out
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		out["ok"] = false
		out["database"] = "down"
		return out
	}
	out["database"] = "up"
	return out
}
