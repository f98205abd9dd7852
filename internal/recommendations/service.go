package recommendations

import (
	"context"
	"errors"
	"math"
	"strings"

	"sales-assistant/internal/shared/telemetry"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// MenuLookup resolves the ingredients of a stored menu analysis.
// It returns ErrAnalysisNotFound for unknown IDs.
type MenuLookup interface {
	Ingredients(ctx context.Context, analysisID string) ([]string, error)
}

// Service serves the product catalog.
type Service struct {
	Repo  Repo
	Menus MenuLookup
}

// List filters, optionally ranks, and pages the catalog.
func (s *Service) List(ctx context.Context, q Query) (Result, error) {
	q = withDefaults(q)
	if err := validate(q); err != nil {
		return Result{}, err
	}

	products, err := s.Repo.List(ctx)
	if err != nil {
		return Result{}, err
	}
	products = applyFilter(products, q.Filter)

	if id := strings.TrimSpace(q.AnalysisID); id != "" && s.Menus != nil {
		ingredients, err := s.Menus.Ingredients(ctx, id)
		if err != nil {
			if errors.Is(err, ErrAnalysisNotFound) {
				return Result{}, ErrAnalysisNotFound
			}
			return Result{}, err
		}
		ranked := Rank(products, ingredients)
		products = products[:0]
		for _, r := range ranked {
			products = append(products, r.Product)
		}
		telemetry.Info("recommendations.ranked", map[string]any{
			"analysis_id": id,
			"ingredients": len(ingredients),
			"products":    len(products),
		})
	}

	total := len(products)
	start, end := pageBounds(total, q.Page, q.PageSize)

	return Result{
		Products: products[start:end],
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// pageBounds returns the slice bounds of page within total items. Pages past
// the end are empty; the page number is compared before multiplying so huge
// values cannot overflow.
func pageBounds(total, page, pageSize int) (int, int) {
	pages := (total + pageSize - 1) / pageSize
	if page-1 >= pages {
		return total, total
	}
	start := (page - 1) * pageSize
	return start, min(start+pageSize, total)
}

func withDefaults(q Query) Query {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

func validate(q Query) error {
	if q.Page < 1 {
		return &ValidationError{Field: "page", Message: "page must be greater than or equal to 1"}
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return &ValidationError{Field: "page_size", Message: "page_size must be between 1 and 100"}
	}
	if q.MinPrice != nil && *q.MinPrice < 0 {
		return &ValidationError{Field: "min_price", Message: "min_price must not be negative"}
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		return &ValidationError{Field: "max_price", Message: "max_price must not be negative"}
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return &ValidationError{Field: "min_price", Message: "min_price must not exceed max_price"}
	}
	return nil
}

func applyFilter(products []Product, f Filter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !hasTag(p, f.Category) || !hasTag(p, f.Tag) {
			continue
		}
		if f.MinPrice != nil && p.PriceCents < toCents(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.PriceCents > toCents(*f.MaxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// hasTag reports whether p carries want. An empty want matches everything.
func hasTag(p Product, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	for _, tag := range p.Tags {
		if strings.EqualFold(strings.TrimSpace(tag), want) {
			return true
		}
	}
	return false
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}
