// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package web

import (
	"github.com/anirudhkashyap/sidrama/internal/auth"
	"github.com/anirudhkashyap/sidrama/internal/models"
)

// shell is the data every page render gets: identity, active page, and the
// one-shot messages queued by the previous action.
type shell struct {
	LoggedIn   bool
	Name       string
	Username   string
	ActivePage string
	Flashes    []auth.Flash
	Pages      []string
}

// pageData is what the layout template executes against.
type pageData struct {
	Shell shell
	Data  any
}

// homeView backs the Home page.
type homeView struct {
	Popular  []models.PopularMovie
	TopShows []models.TVShow
	LoadErr  string
}

// movieEntry is one expandable movie card on the Movies page.
type movieEntry struct {
	models.Movie
	Reviews   []models.MovieReview
	Composing bool // the open review form targets this movie
}

// moviesView backs the Movies page.
type moviesView struct {
	Genres    []models.Genre
	Name      string
	Genre     string
	MinRating float64
	Results   []movieEntry
	Searched  bool
	LoadErr   string
}

// showEntry is one show card on the TV Shows list.
type showEntry struct {
	models.TVShow
	Reviews []models.EpisodeReview
}

// episodeEntry is one episode row in the drill-down view.
type episodeEntry struct {
	models.Episode
	Composing bool
}

// showsView backs the TV Shows page, both list and drill-down renderings.
type showsView struct {
	Shows   []showEntry
	Viewing *models.TVShow
	Epis    []episodeEntry
	LoadErr string
}

// reviewsView backs the My Reviews page.
type reviewsView struct {
	Reviews []models.UserReview
	LoadErr string
}

// searchView backs the Search page.
type searchView struct {
	Genres   []models.Genre
	Mode     string // "genre", "director", "actor"
	Query    string
	Results  []models.SearchResult
	Searched bool
	LoadErr  string
}

// statsView backs the Statistics page.
type statsView struct {
	Stats     *models.UserStats
	TopMovies []models.RankedMovie
	TopShows  []models.RankedShow
	LoadErr   string
}

// profileView backs the Profile page.
type profileView struct {
	User    *models.User
	Stats   *models.UserStats
	LoadErr string
}
