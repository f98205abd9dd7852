package llm

import (
	"context"
	"errors"
)

// MenuItem is one dish extracted from a menu image.
type MenuItem struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"allergens"`
}

// Analyzer abstracts vision providers for menu analysis.
type Analyzer interface {
	AnalyzeMenuImage(ctx context.Context, image []byte, mimeType string) ([]MenuItem, error)
}

var (
	// ErrNotConfigured is returned by the placeholder analyzer.
	ErrNotConfigured = errors.New("LLM not configured: OPENAI_API_KEY is empty")
	// ErrUnparseable is returned when model output is not valid menu JSON, even after repair.
	ErrUnparseable = errors.New("failed to parse menu items")
)

// PlaceholderClient stands in when no provider key is configured.
type PlaceholderClient struct{}

// AnalyzeMenuImage returns ErrNotConfigured.
func (PlaceholderClient) AnalyzeMenuImage(ctx context.Context, image []byte, mimeType string) ([]MenuItem, error) {
	_ = ctx
	_ = image
	_ = mimeType
	return nil, ErrNotConfigured
}

var _ Analyzer = PlaceholderClient{}
