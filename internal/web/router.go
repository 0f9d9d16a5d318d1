// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anirudhkashyap/sidrama/internal/auth"
	"github.com/anirudhkashyap/sidrama/internal/config"
	"github.com/anirudhkashyap/sidrama/internal/logging"
	"github.com/anirudhkashyap/sidrama/internal/middleware"
)

// NewRouter assembles the full middleware stack and route table.
func NewRouter(h *Handler, authSvc *auth.Service, cookies *auth.CookieWriter, cfg *config.SecurityConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitWindow, cfg.RateLimitDisabled))
	r.Use(middleware.Metrics)
	r.Use(authSvc.SessionMiddleware(cookies))

	r.Get("/", h.Index)

	// Credential endpoints get a tighter limiter than page loads.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(10, time.Minute, cfg.RateLimitDisabled))
		r.Post("/login", h.Login)
		r.Post("/register", h.Register)
	})

	r.Post("/logout", h.Logout)
	r.Post("/nav/{page}", h.Navigate)
	r.Post("/shows/view", h.ViewShow)
	r.Post("/shows/back", h.BackToShows)
	r.Post("/reviews/movie/start", h.StartMovieReview)
	r.Post("/reviews/episode/start", h.StartEpisodeReview)
	r.Post("/reviews/submit", h.SubmitReview)
	r.Post("/reviews/cancel", h.CancelReview)

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// Health reports liveness and database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Health check database ping failed")
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  status,
		"service": "sidrama",
	}); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Health response encoding failed")
	}
}
