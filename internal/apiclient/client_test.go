package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAnalyzeMenuSendsMultipartFile(t *testing.T) {
	var gotName, gotType, gotBody, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != AnalyzeMenuPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAccept = r.Header.Get("Accept")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotName = header.Filename
		gotType = header.Header.Get("Content-Type")
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"menu_items":[]}`))
	}))
	defer srv.Close()

	client := New(srv.URL+"/", srv.Client())
	resp, err := client.AnalyzeMenu(context.Background(), Upload{
		Name:        "menu.png",
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	})
	if err != nil {
		t.Fatalf("AnalyzeMenu: %v", err)
	}
	if !resp.OK() {
		t.Fatalf("expected 2xx, got %d", resp.Status)
	}
	if gotName != "menu.png" || gotType != "image/png" || gotBody != "png-bytes" {
		t.Fatalf("unexpected upload name=%q type=%q body=%q", gotName, gotType, gotBody)
	}
	if gotAccept != "application/json" {
		t.Fatalf("expected Accept application/json, got %q", gotAccept)
	}
}

func TestProductsIsParameterlessGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != ProductsPath || r.URL.RawQuery != "" {
			t.Errorf("unexpected request %s %s?%s", r.Method, r.URL.Path, r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail":"down"}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL, srv.Client()).Products(context.Background())
	if err != nil {
		t.Fatalf("Products: %v", err)
	}
	if resp.OK() || resp.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Status)
	}
	if DetailMessage(resp.Body) != "down" {
		t.Fatalf("unexpected body %s", resp.Body)
	}
}

func TestTransportErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := New(url, nil).Products(context.Background()); err == nil {
		t.Fatalf("expected transport error")
	}
}
