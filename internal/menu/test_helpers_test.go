package menu

import (
	"context"
	"sync"
	"testing"

	"sales-assistant/internal/llm"
	local "sales-assistant/internal/shared/storage/object/local"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type stubAnalyzer struct {
	mu       sync.Mutex
	items    []llm.MenuItem
	err      error
	calls    int
	lastMime string
	lastSize int
}

func (s *stubAnalyzer) AnalyzeMenuImage(ctx context.Context, image []byte, mimeType string) ([]llm.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastMime = mimeType
	s.lastSize = len(image)
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func newTestService(t *testing.T, analyzer *stubAnalyzer) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	return &Service{
		Store:    local.New(t.TempDir()),
		Repo:     repo,
		Analyzer: analyzer,
	}, repo
}

func sampleItems() []llm.MenuItem {
	return []llm.MenuItem{
		{Name: "Margherita Pizza", Price: "$14.99", Ingredients: []string{"tomato sauce", "mozzarella", "basil"}, Allergens: []string{"dairy", "gluten"}},
		{Name: "Pasta Carbonara", Price: "$16.99", Ingredients: []string{"pasta", "eggs", "pecorino", "guanciale"}},
	}
}
