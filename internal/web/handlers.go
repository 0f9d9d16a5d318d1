// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

// Package web holds the page controllers. The whole interface is one
// server-rendered document: GET / renders the session's current page, and
// every POST action mutates session state and redirects back to / for a
// full re-render. The database is re-queried on every render; nothing is
// cached between requests.
package web

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anirudhkashyap/sidrama/internal/auth"
	"github.com/anirudhkashyap/sidrama/internal/config"
	"github.com/anirudhkashyap/sidrama/internal/database"
	"github.com/anirudhkashyap/sidrama/internal/logging"
	"github.com/anirudhkashyap/sidrama/internal/metrics"
	"github.com/anirudhkashyap/sidrama/internal/models"
	"github.com/anirudhkashyap/sidrama/internal/validation"
)

// navSlugs maps URL path segments to page names, in sidebar order.
var navSlugs = []struct {
	Slug string
	Page string
}{
	{"home", auth.PageHome},
	{"movies", auth.PageMovies},
	{"tvshows", auth.PageTVShows},
	{"myreviews", auth.PageMyReviews},
	{"search", auth.PageSearch},
	{"statistics", auth.PageStatistics},
	{"profile", auth.PageProfile},
}

func navPath(page string) string {
	for _, s := range navSlugs {
		if s.Page == page {
			return "/nav/" + s.Slug
		}
	}
	return "/nav/home"
}

func pageForSlug(slug string) (string, bool) {
	for _, s := range navSlugs {
		if s.Slug == slug {
			return s.Page, true
		}
	}
	return "", false
}

// Handler wires the page controllers to their dependencies.
type Handler struct {
	store            Store
	auth             *auth.Service
	cookies          *auth.CookieWriter
	rememberLifetime time.Duration
	catalog          config.CatalogConfig
	templates        map[string]*template.Template
}

// NewHandler builds the controller set and parses the embedded templates.
func NewHandler(store Store, authSvc *auth.Service, cookies *auth.CookieWriter, rememberLifetime time.Duration, catalog config.CatalogConfig) (*Handler, error) {
	templates, err := newTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		store:            store,
		auth:             authSvc,
		cookies:          cookies,
		rememberLifetime: rememberLifetime,
		catalog:          catalog,
		templates:        templates,
	}, nil
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Index renders the session's current page. Unauthenticated sessions always
// get Home with the login/register panel, whatever page the session claims.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	page := auth.PageHome
	sh := shell{ActivePage: page}
	for _, s := range navSlugs {
		sh.Pages = append(sh.Pages, s.Page)
	}
	if session.Authenticated() {
		if p := session.CurrentPage(); p != "" {
			page = p
		}
		sh.LoggedIn = true
		sh.Name = session.Name
		sh.Username = session.Username
		sh.ActivePage = page
		sh.Flashes = session.TakeFlashes()
	} else {
		sh.Flashes = takeFlashCookie(w, r)
	}

	var data any
	switch page {
	case auth.PageMovies:
		data = h.moviesData(r, session)
	case auth.PageTVShows:
		data = h.showsData(r, session)
	case auth.PageMyReviews:
		data = h.myReviewsData(r, session)
	case auth.PageSearch:
		data = h.searchData(r)
	case auth.PageStatistics:
		data = h.statsData(r, session)
	case auth.PageProfile:
		data = h.profileData(r, session)
	default:
		page = auth.PageHome
		data = h.homeData(r)
	}

	h.render(w, r, page, pageData{Shell: sh, Data: data})
}

func (h *Handler) homeData(r *http.Request) homeView {
	ctx := r.Context()
	view := homeView{}

	popular, err := h.store.PopularMovies(ctx, h.catalog.HomeMovies)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Popular movies query failed")
		view.LoadErr = "Could not load the catalog. Please try again."
		return view
	}
	view.Popular = popular

	shows, err := h.store.TopRatedShows(ctx, h.catalog.HomeShows)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Top shows query failed")
		view.LoadErr = "Could not load the catalog. Please try again."
		return view
	}
	view.TopShows = shows
	return view
}

func (h *Handler) moviesData(r *http.Request, session *auth.Session) moviesView {
	ctx := r.Context()
	q := r.URL.Query()
	view := moviesView{
		Name:     q.Get("name"),
		Genre:    q.Get("genre"),
		Searched: true,
	}
	if raw := q.Get("min_rating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			view.MinRating = v
		}
	}

	genres, err := h.store.ListGenres(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Genre list query failed")
	}
	view.Genres = genres

	filter := database.MovieFilter{
		NameContains: view.Name,
		Genre:        view.Genre,
		MinRating:    view.MinRating,
	}
	movies, err := h.store.SearchMovies(ctx, filter, h.catalog.MovieResults)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Movie search failed")
		view.LoadErr = "Could not load movies. Please try again."
		return view
	}

	for _, m := range movies {
		entry := movieEntry{Movie: m}
		if entry.Directors, err = h.store.MovieDirectors(ctx, m.MovieID); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("movie_id", m.MovieID).Msg("Directors lookup failed")
		}
		if entry.Reviews, err = h.store.RecentMovieReviews(ctx, m.Name, h.catalog.RecentReviews); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("movie_id", m.MovieID).Msg("Recent reviews lookup failed")
		}
		if pr := pendingFor(session); pr != nil && pr.Kind == auth.ReviewKindMovie && pr.MovieID == m.MovieID {
			entry.Composing = true
		}
		view.Results = append(view.Results, entry)
	}
	return view
}

func (h *Handler) showsData(r *http.Request, session *auth.Session) showsView {
	ctx := r.Context()
	view := showsView{}

	if viewing := session.ViewingShow(); session.Authenticated() && viewing != 0 {
		show, err := h.store.ShowByID(ctx, viewing)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Int64("show_id", viewing).Msg("Show lookup failed")
			session.SetViewingShow(0)
		} else {
			view.Viewing = show
			episodes, err := h.store.ShowEpisodes(ctx, show.ShowID)
			if err != nil {
				logging.Ctx(ctx).Error().Err(err).Int64("show_id", show.ShowID).Msg("Episodes query failed")
				view.LoadErr = "Could not load episodes. Please try again."
				return view
			}
			for _, e := range episodes {
				entry := episodeEntry{Episode: e}
				if pr := pendingFor(session); pr != nil && pr.Kind == auth.ReviewKindEpisode && pr.EpisodeID == e.EpisodeID {
					entry.Composing = true
				}
				view.Epis = append(view.Epis, entry)
			}
			return view
		}
	}

	shows, err := h.store.ListShows(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Show list query failed")
		view.LoadErr = "Could not load TV shows. Please try again."
		return view
	}
	for _, s := range shows {
		entry := showEntry{TVShow: s}
		if entry.Reviews, err = h.store.RecentEpisodeReviews(ctx, s.Name, h.catalog.RecentEpisodeReviews); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("show_id", s.ShowID).Msg("Episode reviews lookup failed")
		}
		view.Shows = append(view.Shows, entry)
	}
	return view
}

func (h *Handler) myReviewsData(r *http.Request, session *auth.Session) reviewsView {
	ctx := r.Context()
	view := reviewsView{}
	reviews, err := h.store.UserReviews(ctx, session.UserID)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("user_id", session.UserID).Msg("User reviews query failed")
		view.LoadErr = "Could not load your reviews. Please try again."
		return view
	}
	view.Reviews = reviews
	return view
}

func (h *Handler) searchData(r *http.Request) searchView {
	ctx := r.Context()
	q := r.URL.Query()
	view := searchView{
		Mode:  q.Get("mode"),
		Query: q.Get("q"),
	}
	if view.Mode == "" {
		view.Mode = "genre"
	}

	genres, err := h.store.ListGenres(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Genre list query failed")
	}
	view.Genres = genres

	if view.Query == "" {
		return view
	}
	view.Searched = true

	var results []models.SearchResult
	switch view.Mode {
	case "director":
		results, err = h.store.MoviesByDirector(ctx, view.Query)
	case "actor":
		results, err = h.store.MoviesByActor(ctx, view.Query)
	default:
		results, err = h.store.MoviesByGenre(ctx, view.Query)
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("mode", view.Mode).Msg("Search query failed")
		view.LoadErr = "Search is unavailable right now. Please try again."
		return view
	}
	view.Results = results
	return view
}

func (h *Handler) statsData(r *http.Request, session *auth.Session) statsView {
	ctx := r.Context()
	view := statsView{}

	stats, err := h.store.UserStats(ctx, session.UserID)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("user_id", session.UserID).Msg("User stats query failed")
		view.LoadErr = "Could not load statistics. Please try again."
		return view
	}
	view.Stats = stats

	if view.TopMovies, err = h.store.TopMovies(ctx, h.catalog.TopRanked); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Top movies query failed")
	}
	if view.TopShows, err = h.store.TopShows(ctx, h.catalog.TopRanked); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Top shows query failed")
	}
	return view
}

func (h *Handler) profileData(r *http.Request, session *auth.Session) profileView {
	ctx := r.Context()
	view := profileView{}

	user, err := h.store.GetUserByID(ctx, session.UserID)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("user_id", session.UserID).Msg("Profile query failed")
		view.LoadErr = "Could not load your profile. Please try again."
		return view
	}
	view.User = user

	if view.Stats, err = h.store.UserStats(ctx, session.UserID); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("user_id", session.UserID).Msg("User stats query failed")
	}
	return view
}

// Login handles the login form.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req := &models.LoginRequest{
		Username:   r.PostFormValue("username"),
		Password:   r.PostFormValue("password"),
		RememberMe: r.PostFormValue("remember_me") == "on",
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		h.flashUnauth(w, r, "error", verr.UserMessage())
		redirectHome(w, r)
		return
	}

	session, rememberToken, err := h.auth.Login(r.Context(), req)
	if err != nil {
		switch err {
		case auth.ErrBadCredentials, auth.ErrLockedOut:
			h.flashUnauth(w, r, "error", err.Error())
		default:
			logging.Ctx(r.Context()).Error().Err(err).Msg("Login failed")
			h.flashUnauth(w, r, "error", "Login is unavailable right now. Please try again.")
		}
		redirectHome(w, r)
		return
	}

	h.cookies.SetSession(w, session.ID)
	if rememberToken != "" {
		h.cookies.SetRemember(w, rememberToken, h.rememberLifetime)
	}
	session.AddFlash("success", "Welcome back, "+session.Name+"!")
	redirectHome(w, r)
}

// Register handles the registration form. Success does not log the user in;
// it queues a message and shows the login panel.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req := &models.RegisterRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Name:     r.PostFormValue("name"),
		DOB:      r.PostFormValue("dob"),
		Email:    r.PostFormValue("email"),
		PhoneNo:  r.PostFormValue("ph_no"),
		Address:  r.PostFormValue("address"),
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		h.flashUnauth(w, r, "error", verr.UserMessage())
		redirectHome(w, r)
		return
	}

	if _, err := h.auth.Register(r.Context(), req); err != nil {
		switch err {
		case auth.ErrDuplicateUser:
			h.flashUnauth(w, r, "error", err.Error())
		default:
			logging.Ctx(r.Context()).Error().Err(err).Msg("Registration failed")
			h.flashUnauth(w, r, "error", "Registration is unavailable right now. Please try again.")
		}
		redirectHome(w, r)
		return
	}

	h.flashUnauth(w, r, "success", "Account created! Please log in.")
	redirectHome(w, r)
}

// Logout tears the session down and clears both cookies.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := auth.SessionFromContext(r.Context()); ok && session != nil {
		if err := h.auth.Logout(r.Context(), session.ID); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Session delete failed")
		}
	}
	h.cookies.Clear(w)
	redirectHome(w, r)
}

// Navigate switches the session's current page.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || !session.Authenticated() {
		redirectHome(w, r)
		return
	}
	if page, ok := pageForSlug(chi.URLParam(r, "page")); ok {
		session.SetPage(page)
	}
	redirectHome(w, r)
}

// ViewShow enters the episode drill-down for a show.
func (h *Handler) ViewShow(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || !session.Authenticated() {
		redirectHome(w, r)
		return
	}
	showID, err := strconv.ParseInt(r.PostFormValue("show_id"), 10, 64)
	if err != nil || showID <= 0 {
		redirectHome(w, r)
		return
	}
	session.SetViewingShow(showID)
	session.SetPage(auth.PageTVShows)
	redirectHome(w, r)
}

// BackToShows leaves the episode drill-down.
func (h *Handler) BackToShows(w http.ResponseWriter, r *http.Request) {
	if session, ok := auth.SessionFromContext(r.Context()); ok && session.Authenticated() {
		session.SetViewingShow(0)
	}
	redirectHome(w, r)
}

// StartMovieReview opens the review form for a movie. A form already open
// elsewhere is replaced.
func (h *Handler) StartMovieReview(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || !session.Authenticated() {
		redirectHome(w, r)
		return
	}
	movieID, err := strconv.ParseInt(r.PostFormValue("movie_id"), 10, 64)
	if err != nil || movieID <= 0 {
		redirectHome(w, r)
		return
	}
	session.SetPending(&auth.PendingReview{
		Kind:      auth.ReviewKindMovie,
		MovieID:   movieID,
		MovieName: r.PostFormValue("movie_name"),
	})
	session.SetPage(auth.PageMovies)
	redirectHome(w, r)
}

// StartEpisodeReview opens the review form for an episode.
func (h *Handler) StartEpisodeReview(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || !session.Authenticated() {
		redirectHome(w, r)
		return
	}
	episodeID, err := strconv.ParseInt(r.PostFormValue("episode_id"), 10, 64)
	if err != nil || episodeID <= 0 {
		redirectHome(w, r)
		return
	}
	season, _ := strconv.Atoi(r.PostFormValue("season_number"))
	episodeNo, _ := strconv.Atoi(r.PostFormValue("episode_no"))
	session.SetPending(&auth.PendingReview{
		Kind:         auth.ReviewKindEpisode,
		EpisodeID:    episodeID,
		ShowName:     r.PostFormValue("show_name"),
		SeasonNumber: season,
		EpisodeNo:    episodeNo,
	})
	session.SetPage(auth.PageTVShows)
	redirectHome(w, r)
}

// SubmitReview validates and writes the open review. Validation failures
// keep the form open; success and duplicate rejection both close it.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok || !session.Authenticated() {
		redirectHome(w, r)
		return
	}
	pending := session.Pending()
	if pending == nil {
		redirectHome(w, r)
		return
	}

	rating, err := strconv.ParseFloat(r.PostFormValue("rating"), 64)
	if err != nil {
		session.AddFlash("error", "Rating must be a number between 0 and 5.")
		redirectHome(w, r)
		return
	}
	req := &models.ReviewRequest{
		Rating: rating,
		Text:   r.PostFormValue("review_text"),
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		metrics.RecordReviewRejected("validation")
		session.AddFlash("error", verr.UserMessage())
		redirectHome(w, r)
		return
	}

	ctx := r.Context()
	switch pending.Kind {
	case auth.ReviewKindMovie:
		// Check-then-insert: a concurrent duplicate slips past the check
		// and is caught by the unique constraint instead.
		reviewed, err := h.store.HasUserReviewedMovie(ctx, session.UserID, pending.MovieID)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Duplicate review check failed")
			metrics.RecordReviewRejected("error")
			session.AddFlash("error", "Could not submit your review. Please try again.")
			redirectHome(w, r)
			return
		}
		if reviewed {
			metrics.RecordReviewRejected("duplicate")
			session.AddFlash("error", "You have already reviewed this movie.")
			session.SetPending(nil)
			redirectHome(w, r)
			return
		}
		if err := h.store.InsertMovieReview(ctx, session.UserID, pending.MovieID, req.Rating, req.Text); err != nil {
			if database.IsDuplicate(err) {
				metrics.RecordReviewRejected("duplicate")
				session.AddFlash("error", "You have already reviewed this movie.")
				session.SetPending(nil)
			} else {
				logging.Ctx(ctx).Error().Err(err).Msg("Movie review insert failed")
				metrics.RecordReviewRejected("error")
				session.AddFlash("error", "Could not submit your review. Please try again.")
			}
			redirectHome(w, r)
			return
		}
		metrics.RecordReviewSubmitted("movie")
		session.AddFlash("success", "Review submitted for "+pending.MovieName+"!")

	case auth.ReviewKindEpisode:
		// Episodes intentionally skip the duplicate check; repeat reviews
		// of the same episode are accepted.
		if err := h.store.InsertEpisodeReview(ctx, session.UserID, pending.EpisodeID, req.Rating, req.Text); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Episode review insert failed")
			metrics.RecordReviewRejected("error")
			session.AddFlash("error", "Could not submit your review. Please try again.")
			redirectHome(w, r)
			return
		}
		metrics.RecordReviewSubmitted("episode")
		session.AddFlash("success", "Episode review submitted!")
	}

	session.SetPending(nil)
	redirectHome(w, r)
}

// CancelReview closes the open review form without writing anything.
func (h *Handler) CancelReview(w http.ResponseWriter, r *http.Request) {
	if session, ok := auth.SessionFromContext(r.Context()); ok && session.Authenticated() {
		session.SetPending(nil)
	}
	redirectHome(w, r)
}

// flashUnauth records a message for a request that has no session to carry
// it. The message is stored in a short-lived cookie consumed on next render.
func (h *Handler) flashUnauth(w http.ResponseWriter, r *http.Request, kind, message string) {
	if session, ok := auth.SessionFromContext(r.Context()); ok && session.Authenticated() {
		session.AddFlash(kind, message)
		return
	}
	setFlashCookie(w, kind, message)
}

// pendingFor returns the open review form for an authenticated session.
func pendingFor(session *auth.Session) *auth.PendingReview {
	if !session.Authenticated() {
		return nil
	}
	return session.Pending()
}
