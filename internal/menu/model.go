package menu

import (
	"time"

	"sales-assistant/internal/llm"
)

// Status is the lifecycle state of a stored analysis.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Analysis is one uploaded menu image and what the analyzer extracted from it.
type Analysis struct {
	ID         string
	FileName   string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	SHA256     string
	Status     Status
	MenuItems  []llm.MenuItem
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Ingredients returns every ingredient across items, in menu order, without duplicates.
func (a Analysis) Ingredients() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, item := range a.MenuItems {
		for _, ing := range item.Ingredients {
			if _, ok := seen[ing]; ok {
				continue
			}
			seen[ing] = struct{}{}
			out = append(out, ing)
		}
	}
	return out
}
