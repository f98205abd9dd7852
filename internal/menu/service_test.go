package menu

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"sales-assistant/internal/llm"
)

func TestAnalyzeStoresAndPersists(t *testing.T) {
	analyzer := &stubAnalyzer{items: sampleItems()}
	svc, repo := newTestService(t, analyzer)

	analysis, err := svc.Analyze(context.Background(), "menu.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.ID == "" || analysis.Status != StatusCompleted {
		t.Fatalf("unexpected analysis %+v", analysis)
	}
	if analyzer.lastMime != "image/png" || analyzer.lastSize != len(pngHeader) {
		t.Fatalf("analyzer got mime=%q size=%d", analyzer.lastMime, analyzer.lastSize)
	}
	if analysis.MenuItems[1].Allergens == nil {
		t.Fatalf("allergens should default to an empty list")
	}

	stored, err := repo.GetByID(context.Background(), analysis.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(stored.MenuItems) != 2 || stored.StorageKey == "" || stored.SHA256 == "" {
		t.Fatalf("unexpected stored analysis %+v", stored)
	}
	if !strings.HasPrefix(stored.StorageKey, "menus/") {
		t.Fatalf("expected menus namespace, got %q", stored.StorageKey)
	}
}

func TestAnalyzeRejectsExtension(t *testing.T) {
	analyzer := &stubAnalyzer{}
	svc, _ := newTestService(t, analyzer)

	for _, name := range []string{"menu.gif", "menu.pdf", "menu"} {
		if _, err := svc.Analyze(context.Background(), name, bytes.NewReader(pngHeader)); !errors.Is(err, ErrFileType) {
			t.Fatalf("%s: expected ErrFileType, got %v", name, err)
		}
	}
	if analyzer.calls != 0 {
		t.Fatalf("analyzer must not run for rejected files")
	}
}

func TestAnalyzeRejectsOversize(t *testing.T) {
	analyzer := &stubAnalyzer{}
	svc, _ := newTestService(t, analyzer)
	svc.MaxUploadBytes = 8

	_, err := svc.Analyze(context.Background(), "menu.JPG", bytes.NewReader(make([]byte, 9)))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestAnalyzeFailureIsRecorded(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("API Error")}
	svc, repo := newTestService(t, analyzer)

	_, err := svc.Analyze(context.Background(), "menu.jpeg", bytes.NewReader(pngHeader))
	var analyzeErr *AnalyzeError
	if !errors.As(err, &analyzeErr) || analyzeErr.Error() != "API Error" {
		t.Fatalf("expected AnalyzeError, got %v", err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()
	if len(repo.data) != 1 {
		t.Fatalf("expected failed analysis to be recorded, got %d", len(repo.data))
	}
	for _, a := range repo.data {
		if a.Status != StatusFailed || a.Error != "API Error" {
			t.Fatalf("unexpected stored analysis %+v", a)
		}
	}
}

func TestNormalizeItemsDropsIncomplete(t *testing.T) {
	got := normalizeItems([]llm.MenuItem{
		{Name: " Soup ", Price: "$5"},
		{Name: "", Price: "$1"},
		{Name: "Bread", Price: " "},
	})
	if len(got) != 1 || got[0].Name != "Soup" || got[0].Ingredients == nil || got[0].Allergens == nil {
		t.Fatalf("unexpected items %+v", got)
	}
}

func TestIngredientsAreDistinctInOrder(t *testing.T) {
	a := Analysis{MenuItems: []llm.MenuItem{
		{Ingredients: []string{"tomato", "basil"}},
		{Ingredients: []string{"pasta", "tomato"}},
	}}
	got := strings.Join(a.Ingredients(), ",")
	if got != "tomato,basil,pasta" {
		t.Fatalf("unexpected ingredients %q", got)
	}
}

func TestGetUnknown(t *testing.T) {
	svc, _ := newTestService(t, &stubAnalyzer{})
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
