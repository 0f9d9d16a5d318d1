// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSUnconfiguredDeniesCrossOrigin(t *testing.T) {
	var called bool
	handler := CORS(nil)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for unconfigured origins", got)
	}
	if !called {
		t.Error("same-origin handling must still reach the handler")
	}
}

func TestCORSUnconfiguredDeniesPreflight(t *testing.T) {
	var called bool
	handler := CORS(nil)(okHandler(&called))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("preflight allowed: Access-Control-Allow-Origin = %q", got)
	}
	if called {
		t.Error("denied preflight must not reach the handler")
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	var called bool
	handler := CORS([]string{"https://app.example.com"})(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if !called {
		t.Error("allowed request did not reach the handler")
	}
}

func TestSecurityHeaders(t *testing.T) {
	var called bool
	handler := SecurityHeaders(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	var called bool
	handler := RateLimit(1, time.Minute, true)(okHandler(&called))

	for i := 0; i < 5; i++ {
		called = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("request %d blocked with limiting disabled", i)
		}
	}
}
