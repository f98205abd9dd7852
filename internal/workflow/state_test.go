package workflow

import (
	"reflect"
	"testing"
)

func TestTransitions(t *testing.T) {
	s := Cleared()
	if s.IsLoading || s.HasResults || len(s.MenuItems) != 0 || len(s.Products) != 0 {
		t.Fatalf("unexpected initial state %+v", s)
	}

	s = StartUpload(s)
	if !s.IsLoading {
		t.Fatalf("expected loading")
	}

	items := []MenuItem{{Name: "Pasta", Price: "$12", Ingredients: []string{"flour"}}}
	s = UploadSucceeded(s, items)
	if s.IsLoading || !s.HasResults || !reflect.DeepEqual(s.MenuItems, items) {
		t.Fatalf("unexpected state after success %+v", s)
	}
	items[0].Ingredients[0] = "changed"
	if s.MenuItems[0].Ingredients[0] != "flour" {
		t.Fatalf("state must not alias caller slices")
	}

	products := []Product{{ID: "1", Name: "Premium Mozzarella"}}
	s = RecommendationsLoaded(s, products)

	failed := UploadFailed(StartUpload(s))
	if failed.IsLoading || !reflect.DeepEqual(failed.MenuItems, s.MenuItems) || !reflect.DeepEqual(failed.Products, s.Products) {
		t.Fatalf("failure must keep results: %+v", failed)
	}
}

func TestValidationErrorTexts(t *testing.T) {
	invalid := &ValidationError{Kind: InvalidType, ContentType: "image/gif"}
	if invalid.Title() != "Invalid file type" || invalid.Message() != "Please upload a JPG or PNG image." {
		t.Fatalf("unexpected texts %q %q", invalid.Title(), invalid.Message())
	}
	large := &ValidationError{Kind: TooLarge, Size: MaxFileSize + 1}
	if large.Title() != "File too large" || large.Message() != "Please upload an image smaller than 10MB." {
		t.Fatalf("unexpected texts %q %q", large.Title(), large.Message())
	}
}
