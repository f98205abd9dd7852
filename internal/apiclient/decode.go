package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned when a success body does not carry well-formed menu items.
var ErrInvalidFormat = errors.New("invalid response format")

// DecodeMenuItems parses an analyze-menu success body. Every element must carry
// string name and price fields and an ingredients array; allergens may be absent.
// Order is preserved exactly as received.
func DecodeMenuItems(body []byte) ([]MenuItem, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	raw, ok := envelope["menu_items"]
	if !ok {
		return nil, fmt.Errorf("%w: missing menu_items", ErrInvalidFormat)
	}
	if !isArray(raw) {
		return nil, fmt.Errorf("%w: menu_items is not an array", ErrInvalidFormat)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	items := make([]MenuItem, 0, len(elems))
	for i, elem := range elems {
		item, err := decodeMenuItem(elem)
		if err != nil {
			return nil, fmt.Errorf("%w: menu_items[%d]: %v", ErrInvalidFormat, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeMenuItem(raw json.RawMessage) (MenuItem, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return MenuItem{}, errors.New("not an object")
	}

	var item MenuItem
	if err := decodeString(fields, "name", &item.Name); err != nil {
		return MenuItem{}, err
	}
	if err := decodeString(fields, "price", &item.Price); err != nil {
		return MenuItem{}, err
	}

	ingredients, ok := fields["ingredients"]
	if !ok || !isArray(ingredients) {
		return MenuItem{}, errors.New("ingredients must be an array")
	}
	if err := json.Unmarshal(ingredients, &item.Ingredients); err != nil {
		return MenuItem{}, fmt.Errorf("ingredients: %v", err)
	}

	if allergens, ok := fields["allergens"]; ok && !isNull(allergens) {
		if err := json.Unmarshal(allergens, &item.Allergens); err != nil {
			return MenuItem{}, fmt.Errorf("allergens: %v", err)
		}
	}
	return item, nil
}

func decodeString(fields map[string]json.RawMessage, key string, dst *string) error {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		return fmt.Errorf("%s is required", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%s must be a string", key)
	}
	return nil
}

// DecodeProducts parses a recommendations body. The body must be an object
// whose "products" field is an array. Elements are not shape-checked:
// mistyped fields are left zero and the rest of the entry is kept.
func DecodeProducts(body []byte) ([]Product, error) {
	var envelope struct {
		Products json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if !isArray(envelope.Products) {
		return nil, fmt.Errorf("decode products: %w", ErrInvalidFormat)
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(envelope.Products, &elements); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	products := make([]Product, 0, len(elements))
	for _, raw := range elements {
		var p Product
		if err := json.Unmarshal(raw, &p); err != nil {
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &typeErr) {
				return nil, fmt.Errorf("decode product: %w", err)
			}
		}
		products = append(products, p)
	}
	return products, nil
}

// DetailMessage returns the string "detail" field of an error body, or "".
func DetailMessage(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
