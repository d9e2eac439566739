package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Togather-Foundation/schemaorg/internal/config"
	"github.com/Togather-Foundation/schemaorg/render"
	"github.com/Togather-Foundation/schemaorg/schema"
)

func testEntity() *schema.Entity {
	return schema.NewArticle().
		With("headline", "Understanding Structured Data").
		With("author", schema.NewPerson().With("name", "Jane Doe")).
		With("url", "https://example.org/articles/structured-data").
		With("wordCount", 850)
}

func testHandler(t *testing.T, entity *schema.Entity) http.Handler {
	t.Helper()
	preview, err := NewPreview(entity, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPreview failed: %v", err)
	}
	// Rate limiting off so repeated test requests never trip it.
	return preview.Handler(config.RateLimitConfig{})
}

func TestNewPreviewNilEntity(t *testing.T) {
	if _, err := NewPreview(nil, zerolog.Nop()); err == nil {
		t.Fatal("expected error for nil entity")
	}
}

func TestPreviewIndex(t *testing.T) {
	handler := testHandler(t, testEntity())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store", cc)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"/entity.jsonld", "/entity.microdata", "/entity.rdfa",
		"/embed.html", "/validation", "/healthz", "/metrics", "fetch",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestPreviewIndexMethodNotAllowed(t *testing.T) {
	handler := testHandler(t, testEntity())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); !strings.Contains(allow, "GET") {
		t.Errorf("Allow = %q", allow)
	}
}

func TestPreviewUnknownPathIs404(t *testing.T) {
	handler := testHandler(t, testEntity())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPreviewJSONLD(t *testing.T) {
	handler := testHandler(t, testEntity())

	req := httptest.NewRequest(http.MethodGet, "/entity.jsonld", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, render.MIMEJSONLD) {
		t.Errorf("Content-Type = %q, want %q", ct, render.MIMEJSONLD)
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if doc["@context"] != "https://schema.org" {
		t.Errorf("@context = %v", doc["@context"])
	}
	if doc["@type"] != "Article" {
		t.Errorf("@type = %v", doc["@type"])
	}
}

func TestPreviewTree(t *testing.T) {
	handler := testHandler(t, testEntity())

	req := httptest.NewRequest(http.MethodGet, "/entity.json", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if doc["@type"] != "Article" {
		t.Errorf("@type = %v", doc["@type"])
	}
	author, ok := doc["author"].(map[string]any)
	if !ok {
		t.Fatalf("author = %T, want nested object", doc["author"])
	}
	if author["name"] != "Jane Doe" {
		t.Errorf("author name = %v", author["name"])
	}
}

func TestPreviewMarkupFormats(t *testing.T) {
	handler := testHandler(t, testEntity())

	tests := []struct {
		path string
		want string
	}{
		{"/entity.microdata", `itemtype="https://schema.org/Article"`},
		{"/entity.rdfa", `typeof="Article"`},
		{"/embed.html", `<script type="application/ld+json">`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
				t.Errorf("Content-Type = %q", ct)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body missing %q:\n%s", tt.want, rec.Body.String())
			}
		})
	}
}

func TestPreviewValidation(t *testing.T) {
	handler := testHandler(t, testEntity())

	req := httptest.NewRequest(http.MethodGet, "/validation", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Code     string `json:"code"`
			Property string `json:"property"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if !result.Valid {
		t.Errorf("entity should be valid, got %+v", result)
	}
}

func TestPreviewValidationReportsFindings(t *testing.T) {
	// Missing headline makes the article invalid.
	handler := testHandler(t, schema.NewArticle().With("name", "No Headline"))

	req := httptest.NewRequest(http.MethodGet, "/validation", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var result struct {
		Valid  bool `json:"valid"`
		Errors []struct {
			Code     string `json:"code"`
			Property string `json:"property"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if result.Valid {
		t.Error("article without headline should be invalid")
	}
	if len(result.Errors) != 1 || result.Errors[0].Code != "REQUIRED_PROPERTY_MISSING" {
		t.Errorf("errors = %+v", result.Errors)
	}
}

func TestPreviewHealthz(t *testing.T) {
	handler := testHandler(t, testEntity())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestPreviewMetricsEndpoint(t *testing.T) {
	handler := testHandler(t, testEntity())

	// Render once so the counter exists before scraping.
	warmup := httptest.NewRequest(http.MethodGet, "/entity.jsonld", nil)
	handler.ServeHTTP(httptest.NewRecorder(), warmup)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "schemaorg_renders_total") {
		t.Error("metrics output missing schemaorg_renders_total")
	}
}

func TestPreviewSetsRequestID(t *testing.T) {
	handler := testHandler(t, testEntity())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID should be set on every response")
	}
}

func TestPreviewRateLimiting(t *testing.T) {
	preview, err := NewPreview(testEntity(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPreview failed: %v", err)
	}
	handler := preview.Handler(config.RateLimitConfig{PerSecond: 0.001, Burst: 1})

	first := httptest.NewRequest(http.MethodGet, "/entity.jsonld", nil)
	first.RemoteAddr = "203.0.113.7:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/entity.jsonld", nil)
	second.RemoteAddr = "203.0.113.7:1235"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("429 response should carry Retry-After")
	}

	// Health probes bypass the limiter.
	probe := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	probe.RemoteAddr = "203.0.113.7:1236"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, probe)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
}
