package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseMenuItems extracts menu items from model output. It accepts an object
// with a menu_items array or a bare array, optionally inside a markdown fence.
// Entries without a name, a price or an ingredients array are dropped.
func ParseMenuItems(raw string) ([]MenuItem, error) {
	data := []byte(stripFence(raw))
	if !json.Valid(data) {
		return nil, ErrUnparseable
	}

	var elems []json.RawMessage
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
		}
	case len(trimmed) > 0 && trimmed[0] == '{':
		var envelope struct {
			MenuItems json.RawMessage `json:"menu_items"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
		}
		if len(envelope.MenuItems) == 0 || string(envelope.MenuItems) == "null" {
			return nil, fmt.Errorf("%w: missing menu_items", ErrUnparseable)
		}
		if err := json.Unmarshal(envelope.MenuItems, &elems); err != nil {
			return nil, fmt.Errorf("%w: menu_items is not an array", ErrUnparseable)
		}
	default:
		return nil, ErrUnparseable
	}

	items := make([]MenuItem, 0, len(elems))
	for _, elem := range elems {
		if item, ok := toMenuItem(elem); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func toMenuItem(raw json.RawMessage) (MenuItem, bool) {
	var fields struct {
		Name        json.RawMessage `json:"name"`
		Price       json.RawMessage `json:"price"`
		Ingredients json.RawMessage `json:"ingredients"`
		Allergens   json.RawMessage `json:"allergens"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return MenuItem{}, false
	}

	name, ok := scalarString(fields.Name)
	if !ok || name == "" {
		return MenuItem{}, false
	}
	price, ok := scalarString(fields.Price)
	if !ok || price == "" {
		return MenuItem{}, false
	}
	ingredients, ok := stringList(fields.Ingredients)
	if !ok {
		return MenuItem{}, false
	}
	allergens, ok := stringList(fields.Allergens)
	if !ok {
		allergens = []string{}
	}
	return MenuItem{Name: name, Price: price, Ingredients: ingredients, Allergens: allergens}, true
}

// scalarString accepts a JSON string or number; models sometimes emit prices as numbers.
func scalarString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

func stringList(raw json.RawMessage) ([]string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var values []string
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out, true
}

func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
