package recommendations

import "time"

// Product is one catalog entry offered to restaurants.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       string
	PriceCents  int64
	Image       string
	Tags        []string
	Keywords    []string
	CreatedAt   time.Time
}

// Filter narrows the catalog. Category and Tag both match tags, ignoring case.
// Prices are in whole currency units.
type Filter struct {
	Category string
	Tag      string
	MinPrice *float64
	MaxPrice *float64
}

// Query is a paged catalog request. AnalysisID, when set, ranks results by
// ingredient overlap with that menu analysis.
type Query struct {
	Filter
	AnalysisID string
	Page       int
	PageSize   int
}

// Result is one page of products.
type Result struct {
	Products []Product
	Total    int
	Page     int
	PageSize int
}

// Catalog returns the built-in product catalog.
func Catalog() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Premium Mozzarella",
			Description: "High-quality Italian mozzarella cheese",
			Price:       "$24.99/kg",
			PriceCents:  2499,
			Image:       "https://images.unsplash.com/photo-1618164436241-4473940d1f5c",
			Tags:        []string{"Dairy", "Italian", "Premium"},
			Keywords:    []string{"mozzarella", "cheese", "pizza", "caprese", "basil"},
		},
		{
			ID:          "2",
			Name:        "Organic Tomato Sauce",
			Description: "Fresh organic tomato sauce",
			Price:       "$8.99/jar",
			PriceCents:  899,
			Image:       "https://images.unsplash.com/photo-1612251485013-41e6e269c783",
			Tags:        []string{"Organic", "Sauce", "Vegetarian"},
			Keywords:    []string{"tomato", "tomatoes", "sauce", "pasta", "pizza", "marinara"},
		},
	}
}

func cloneProduct(p Product) Product {
	p.Tags = append([]string(nil), p.Tags...)
	p.Keywords = append([]string(nil), p.Keywords...)
	return p
}
