package recommendations

import (
	"sort"
	"strings"
	"unicode"
)

const (
	keywordWeight = 2
	tagWeight     = 1
)

// Ranked is a product with its overlap score against a set of ingredients.
type Ranked struct {
	Product Product
	Score   int
}

// Rank orders products by ingredient overlap. Higher scores come first and
// ties break by ID, so the same input always yields the same order.
// Duplicate IDs keep their first occurrence.
func Rank(products []Product, ingredients []string) []Ranked {
	terms := ingredientTerms(ingredients)
	deduped := dedupe(products)

	out := make([]Ranked, 0, len(deduped))
	for _, p := range deduped {
		out = append(out, Ranked{Product: p, Score: score(p, terms)})
	}
	sortRanked(out)
	return out
}

func score(p Product, terms map[string]bool) int {
	total := 0
	for _, kw := range uniqueLower(p.Keywords) {
		if terms[kw] {
			total += keywordWeight
		}
	}
	for _, tag := range uniqueLower(p.Tags) {
		if terms[tag] {
			total += tagWeight
		}
	}
	return total
}

// ingredientTerms splits ingredient phrases into lower-case words and keeps
// the whole phrase too, so "tomato sauce" matches both "tomato" and "sauce".
func ingredientTerms(ingredients []string) map[string]bool {
	terms := make(map[string]bool, len(ingredients)*2)
	for _, ingredient := range ingredients {
		phrase := strings.ToLower(strings.TrimSpace(ingredient))
		if phrase == "" {
			continue
		}
		terms[phrase] = true
		for _, word := range strings.FieldsFunc(phrase, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			terms[word] = true
		}
	}
	return terms
}

func uniqueLower(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

func dedupe(products []Product) []Product {
	seen := make(map[string]bool, len(products))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, p)
	}
	return out
}

func sortRanked(items []Ranked) {
	sort.SliceStable(items, func(i, j int) bool {
		a := items[i]
		b := items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Product.ID < b.Product.ID
	})
}
