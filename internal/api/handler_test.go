package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nutriscope/nutriscope/pkg/additive"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	registry, err := additive.Default()
	if err != nil {
		t.Fatalf("load default registry: %v", err)
	}
	return NewHandler(nil, nil, nil, registry, NewSummaryCache(4))
}

func TestGetAdditive(t *testing.T) {
	mux := http.NewServeMux()
	testHandler(t).RegisterRoutes(mux)

	tests := []struct {
		name       string
		key        string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "lookup by code",
			key:        "e102",
			wantStatus: http.StatusOK,
			wantBody:   `"risk_tier": "high"`,
		},
		{
			name:       "lookup by name",
			key:        "aspartame",
			wantStatus: http.StatusOK,
			wantBody:   `"risk_tier": "high"`,
		},
		{
			name:       "case-insensitive",
			key:        "E300",
			wantStatus: http.StatusOK,
			wantBody:   `"risk_tier": "none"`,
		},
		{
			name:       "unknown additive",
			key:        "e9999",
			wantStatus: http.StatusNotFound,
			wantBody:   `"error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/additives/"+tt.key, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q:\n%s", tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRegisteredRoutes(t *testing.T) {
	mux := http.NewServeMux()
	testHandler(t).RegisterRoutes(mux)

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPost, "/api/v1/analyze", "POST /api/v1/analyze"},
		{http.MethodGet, "/api/products", "GET /api/products"},
		{http.MethodGet, "/api/products/p1/reactions", "GET /api/products/{productID}/reactions"},
		{http.MethodGet, "/api/reactions", "GET /api/reactions"},
		{http.MethodGet, "/healthz", "GET /healthz"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		if _, pattern := mux.Handler(req); pattern != tt.want {
			t.Errorf("%s %s matched %q, want %q", tt.method, tt.path, pattern, tt.want)
		}
	}
}

func TestListRecentReactionsRejectsBadLimit(t *testing.T) {
	mux := http.NewServeMux()
	testHandler(t).RegisterRoutes(mux)

	for _, limit := range []string{"abc", "-1", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/api/reactions?limit="+limit, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", limit, rec.Code)
		}
	}
}

func TestHealthzWithoutDatabase(t *testing.T) {
	mux := http.NewServeMux()
	testHandler(t).RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("empty key passes through", func(t *testing.T) {
		h := APIKeyAuth("")(inner)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		h := APIKeyAuth("secret")(inner)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-API-Key", "wrong")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("matching key accepted", func(t *testing.T) {
		h := APIKeyAuth("secret")(inner)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-API-Key", "secret")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})
}
