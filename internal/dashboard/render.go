package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sales-assistant/internal/workflow"
)

const (
	noResultsText         = "Upload a menu to see product recommendations"
	noRecommendationsText = "No recommendations available yet"
)

// Render writes the menu analysis and product recommendation panes for s.
func Render(w io.Writer, s workflow.State) error {
	if _, err := fmt.Fprintln(w, "== Menu Analysis =="); err != nil {
		return err
	}
	if s.IsLoading {
		fmt.Fprintln(w, "Analyzing menu... This may take a few seconds.")
	}
	if s.HasResults {
		if err := RenderMenuItems(w, s.MenuItems); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "== Product Recommendations ==")
	if !s.HasResults {
		_, err := fmt.Fprintln(w, noResultsText)
		return err
	}
	return RenderProducts(w, s.Products)
}

// RenderMenuItems writes a table of items. An empty list writes nothing.
func RenderMenuItems(w io.Writer, items []workflow.MenuItem) error {
	if len(items) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tPRICE\tINGREDIENTS\tALLERGENS")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", item.Name, item.Price, joinList(item.Ingredients), joinList(item.Allergens))
	}
	return tw.Flush()
}

// RenderProducts writes one block per product, or the empty-state message.
func RenderProducts(w io.Writer, products []workflow.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, noRecommendationsText)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tPRICE\tTAGS\tDESCRIPTION")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Price, joinList(p.Tags), p.Description)
	}
	return tw.Flush()
}

func joinList(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
