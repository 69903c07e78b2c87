package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveSecured(cfg SecurityConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	called := false
	handler := SecurityMiddleware(cfg, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(method, "/sequence", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec, called
}

func TestDefaultSecurityConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultSecurityConfig()
	if !cfg.EnableCORS || len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("CORS defaults = %+v", cfg)
	}
	if cfg.MaxCount != 100_000 {
		t.Errorf("MaxCount = %d, want 100000", cfg.MaxCount)
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		rec, called := serveSecured(DefaultSecurityConfig(), method, "")
		if !called {
			t.Errorf("%s: next handler not called", method)
		}
		for header, want := range map[string]string{
			"X-Content-Type-Options":  "nosniff",
			"X-Frame-Options":         "DENY",
			"X-XSS-Protection":        "1; mode=block",
			"Referrer-Policy":         "strict-origin-when-cross-origin",
			"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
		} {
			if got := rec.Header().Get(header); got != want {
				t.Errorf("%s: %s = %q, want %q", method, header, got, want)
			}
		}
	}
}

func TestCORSOrigins(t *testing.T) {
	t.Parallel()
	specific := SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"http://first.example", "http://second.example"},
		AllowedMethods: []string{http.MethodGet},
	}
	tests := []struct {
		name   string
		cfg    SecurityConfig
		origin string
		want   string
	}{
		{"disabled", SecurityConfig{}, "http://any.example", ""},
		{"wildcard", DefaultSecurityConfig(), "http://any.example", "*"},
		{"wildcard without origin", DefaultSecurityConfig(), "", "*"},
		{"first listed", specific, "http://first.example", "http://first.example"},
		{"second listed", specific, "http://second.example", "http://second.example"},
		{"not listed", specific, "http://evil.example", ""},
		{"no origin", specific, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, _ := serveSecured(tt.cfg, http.MethodGet, tt.origin)
			got := rec.Header().Get("Access-Control-Allow-Origin")
			if got != tt.want {
				t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
			if got == "" {
				return
			}
			for _, h := range []string{"Access-Control-Allow-Methods", "Access-Control-Allow-Headers", "Access-Control-Max-Age"} {
				if rec.Header().Get(h) == "" {
					t.Errorf("%s not set", h)
				}
			}
		})
	}
}

func TestPreflight(t *testing.T) {
	t.Parallel()
	rec, called := serveSecured(DefaultSecurityConfig(), http.MethodOptions, "http://any.example")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if called {
		t.Error("next handler called for OPTIONS")
	}
	if rec.Header().Get("Access-Control-Allow-Methods") != "GET, OPTIONS" {
		t.Errorf("Access-Control-Allow-Methods = %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
}
