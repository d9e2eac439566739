package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInit(t *testing.T) {
	Init("v1.0.0", "abc123", "2026-08-21")

	if testutil.CollectAndCount(AppInfo) == 0 {
		t.Error("AppInfo metric should be registered")
	}
}

func TestRecordRender(t *testing.T) {
	RecordRender("json-ld", time.Now(), nil)
	RecordRender("microdata", time.Now(), errors.New("boom"))

	if got := testutil.ToFloat64(RendersTotal.WithLabelValues("json-ld", "ok")); got < 1 {
		t.Errorf("renders_total{json-ld,ok} = %f, want >= 1", got)
	}
	if got := testutil.ToFloat64(RendersTotal.WithLabelValues("microdata", "error")); got < 1 {
		t.Errorf("renders_total{microdata,error} = %f, want >= 1", got)
	}
	if testutil.CollectAndCount(RenderDuration) == 0 {
		t.Error("RenderDuration should have observations")
	}
}

func TestRecordValidation(t *testing.T) {
	RecordValidation(true, 0, 0)
	RecordValidation(false, 2, 1)

	if got := testutil.ToFloat64(ValidationsTotal.WithLabelValues("valid")); got < 1 {
		t.Errorf("validations_total{valid} = %f, want >= 1", got)
	}
	if got := testutil.ToFloat64(ValidationsTotal.WithLabelValues("invalid")); got < 1 {
		t.Errorf("validations_total{invalid} = %f, want >= 1", got)
	}
	if got := testutil.ToFloat64(ValidationFindings.WithLabelValues("error")); got < 2 {
		t.Errorf("validation_findings_total{error} = %f, want >= 2", got)
	}
	if got := testutil.ToFloat64(ValidationFindings.WithLabelValues("warning")); got < 1 {
		t.Errorf("validation_findings_total{warning} = %f, want >= 1", got)
	}
}

func TestHTTPMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	wrapped := HTTPMiddleware(handler)

	req := httptest.NewRequest("GET", "/entity.jsonld", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if testutil.CollectAndCount(HTTPRequestsTotal) == 0 {
		t.Error("HTTPRequestsTotal should have recorded the request")
	}
	if testutil.CollectAndCount(HTTPRequestDuration) == 0 {
		t.Error("HTTPRequestDuration should have recorded the request")
	}
}

func TestHTTPMiddlewareStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"OK", http.StatusOK},
		{"Not Found", http.StatusNotFound},
		{"Too Many Requests", http.StatusTooManyRequests},
		{"Internal Server Error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			})

			wrapped := HTTPMiddleware(handler)
			req := httptest.NewRequest("GET", "/entity.jsonld", nil)
			rec := httptest.NewRecorder()

			wrapped.ServeHTTP(rec, req)

			if rec.Code != tt.statusCode {
				t.Errorf("expected status %d, got %d", tt.statusCode, rec.Code)
			}
		})
	}
}

func TestStatusWriterDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	content := []byte("Hello, World!")
	_, _ = w.Write(content)

	if w.status != http.StatusOK {
		t.Errorf("status without WriteHeader = %d, want 200", w.status)
	}
	if w.bytes != len(content) {
		t.Errorf("bytes = %d, want %d", w.bytes, len(content))
	}
}
