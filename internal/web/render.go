// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/anirudhkashyap/sidrama/internal/auth"
	"github.com/anirudhkashyap/sidrama/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// placeholderPoster substitutes for catalog rows without artwork.
const placeholderPoster = "https://via.placeholder.com/300x450?text=No+Poster"

var pageFiles = map[string]string{
	auth.PageHome:       "home.html",
	auth.PageMovies:     "movies.html",
	auth.PageTVShows:    "tvshows.html",
	auth.PageMyReviews:  "myreviews.html",
	auth.PageSearch:     "search.html",
	auth.PageStatistics: "statistics.html",
	auth.PageProfile:    "profile.html",
}

var templateFuncs = template.FuncMap{
	"poster": func(url string) string {
		if url == "" {
			return placeholderPoster
		}
		return url
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	"dateptr": func(t *time.Time) string {
		if t == nil {
			return "TBA"
		}
		return t.Format("Jan 2, 2006")
	},
	"rating": func(r float64) string {
		return fmt.Sprintf("%.1f", r)
	},
	"deref": func(f *float64) float64 {
		if f == nil {
			return 0
		}
		return *f
	},
	"year": func(t time.Time) string {
		return t.Format("2006")
	},
	"navpath": navPath,
}

// newTemplates parses one template set per page, each combining the layout
// with the page's content block.
func newTemplates() (map[string]*template.Template, error) {
	sets := make(map[string]*template.Template, len(pageFiles))
	for page, file := range pageFiles {
		t, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parse templates for %s: %w", page, err)
		}
		sets[page] = t
	}
	return sets, nil
}

// render executes the page's template set. A template failure at this point
// means a partial response may already be on the wire, so it is logged
// rather than turned into an error page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data pageData) {
	t, ok := h.templates[page]
	if !ok {
		t = h.templates[auth.PageHome]
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("Template execution failed")
	}
}
