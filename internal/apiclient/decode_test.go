package apiclient

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeMenuItems(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []MenuItem
		wantErr bool
	}{
		{
			name: "valid with optional allergens absent",
			body: `{"menu_items":[{"name":"Pasta","price":"$12","ingredients":["flour","egg"]}]}`,
			want: []MenuItem{{Name: "Pasta", Price: "$12", Ingredients: []string{"flour", "egg"}}},
		},
		{
			name: "order and duplicates preserved",
			body: `{"menu_items":[{"name":"Soup","price":"$5","ingredients":["salt","leek","salt"],"allergens":["celery"]}]}`,
			want: []MenuItem{{Name: "Soup", Price: "$5", Ingredients: []string{"salt", "leek", "salt"}, Allergens: []string{"celery"}}},
		},
		{name: "empty list", body: `{"menu_items":[]}`, want: []MenuItem{}},
		{name: "missing field", body: `{"items":[]}`, wantErr: true},
		{name: "not an array", body: `{"menu_items":{"name":"x"}}`, wantErr: true},
		{name: "null list", body: `{"menu_items":null}`, wantErr: true},
		{name: "missing price", body: `{"menu_items":[{"name":"x","ingredients":[]}]}`, wantErr: true},
		{name: "ingredients not array", body: `{"menu_items":[{"name":"x","price":"1","ingredients":"flour"}]}`, wantErr: true},
		{name: "element not object", body: `{"menu_items":["pasta"]}`, wantErr: true},
		{name: "not json", body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMenuItems([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("expected ErrInvalidFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeProductsIsLenient(t *testing.T) {
	body := `{"products":[{"id":"1","name":"Premium Mozzarella","price":"$24.99/kg","tags":["Dairy"]},{"id":2,"name":"Odd"}]}`
	got, err := DecodeProducts([]byte(body))
	if err != nil {
		t.Fatalf("DecodeProducts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	if got[0].Name != "Premium Mozzarella" || got[0].Tags[0] != "Dairy" {
		t.Fatalf("unexpected first product %#v", got[0])
	}
	if got[1].ID != "" || got[1].Name != "Odd" {
		t.Fatalf("expected mistyped id to be left empty, got %#v", got[1])
	}
}

func TestDecodeProductsRejectsGarbage(t *testing.T) {
	if _, err := DecodeProducts([]byte("not json")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDecodeProductsRequiresProductsArray(t *testing.T) {
	for _, body := range []string{
		`{"detail":"oops"}`,
		`{}`,
		`null`,
		`{"products":null}`,
		`{"products":{"id":"1"}}`,
		`{"products":"none"}`,
		`[]`,
	} {
		_, err := DecodeProducts([]byte(body))
		if err == nil {
			t.Fatalf("body %s: expected error", body)
		}
	}

	got, err := DecodeProducts([]byte(`{"products":[]}`))
	if err != nil || len(got) != 0 {
		t.Fatalf("empty array should decode to an empty list, got %v, %v", got, err)
	}
}

func TestDetailMessage(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{body: `{"detail":"server error"}`, want: "server error"},
		{body: `{"detail":[{"msg":"field required"}]}`, want: ""},
		{body: `{}`, want: ""},
		{body: `oops`, want: ""},
	}
	for _, tc := range cases {
		if got := DetailMessage([]byte(tc.body)); got != tc.want {
			t.Fatalf("DetailMessage(%s) = %q, want %q", tc.body, got, tc.want)
		}
	}
}
