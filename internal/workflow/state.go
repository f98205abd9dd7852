package workflow

import (
	"slices"

	"sales-assistant/internal/apiclient"
)

type (
	MenuItem = apiclient.MenuItem
	Product  = apiclient.Product
)

// State is the transient record of the current upload/recommendation cycle.
type State struct {
	IsLoading  bool
	MenuItems  []MenuItem
	Products   []Product
	HasResults bool
}

// Cleared returns the initial state.
func Cleared() State {
	return State{MenuItems: []MenuItem{}, Products: []Product{}}
}

// StartUpload marks an upload as in flight.
func StartUpload(s State) State {
	s.IsLoading = true
	return s
}

// UploadFailed ends the upload and keeps whatever results were already shown.
func UploadFailed(s State) State {
	s.IsLoading = false
	return s
}

// UploadSucceeded replaces the menu items with items in received order.
func UploadSucceeded(s State, items []MenuItem) State {
	s.MenuItems = cloneItems(items)
	s.HasResults = true
	s.IsLoading = false
	return s
}

// RecommendationsLoaded replaces the product list.
func RecommendationsLoaded(s State, products []Product) State {
	s.Products = cloneProducts(products)
	return s
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.MenuItems = cloneItems(s.MenuItems)
	s.Products = cloneProducts(s.Products)
	return s
}

func cloneItems(items []MenuItem) []MenuItem {
	out := make([]MenuItem, len(items))
	for i, item := range items {
		item.Ingredients = slices.Clone(item.Ingredients)
		item.Allergens = slices.Clone(item.Allergens)
		out[i] = item
	}
	return out
}

func cloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		p.Tags = slices.Clone(p.Tags)
		out[i] = p
	}
	return out
}
