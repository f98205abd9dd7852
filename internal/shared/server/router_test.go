package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"sales-assistant/internal/recommendations"
	"sales-assistant/internal/services/health"
	"sales-assistant/internal/shared/config"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := &recommendations.Service{Repo: recommendations.NewMemoryRepo(recommendations.Catalog()...)}
	return NewRouter(RouterDeps{
		Config:                 config.Config{Env: "dev", CORSAllowOrigin: []string{"http://localhost:3000"}},
		Health:                 health.NewService(nil, "local"),
		RecommendationsHandler: recommendations.NewHandler(svc),
	})
}

func TestHealthEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] != true || body["database"] != "memory" {
		t.Fatalf("unexpected body %v", body)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRootAndMetrics(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), serviceName) {
		t.Fatalf("unexpected root response %d %s", w.Code, w.Body.String())
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/products", nil))

	m := httptest.NewRecorder()
	r.ServeHTTP(m, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if m.Code != http.StatusOK || !strings.Contains(m.Body.String(), "recommendation_requests_total") {
		t.Fatalf("unexpected metrics response %d %s", m.Code, m.Body.String())
	}
}

func TestMenuRoutesAbsentWithoutHandler(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/menu/analyze-menu", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8000", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
