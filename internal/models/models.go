// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

// Package models defines the transient row types read from the external
// database. The database owns the entities; the application only holds
// per-request copies. Aggregate fields (ratings, review counts) are
// maintained by external triggers and views and are never recomputed here.
package models

import "time"

// User is a registered account. The password hash never leaves the auth
// service; profile reads use this struct without it.
type User struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	DOB      time.Time `json:"dob"`
	Email    string    `json:"email"`
	PhoneNo  string    `json:"ph_no"`
	Address  string    `json:"address"`
}

// Credentials is the credential row used for login verification only.
type Credentials struct {
	UserID       int64
	Username     string
	Name         string
	PasswordHash string
}

// Movie is a catalog movie row, optionally joined with its genres and the
// directors line from movie_details_view.
type Movie struct {
	MovieID     int64     `json:"movie_id"`
	Name        string    `json:"name"`
	ReleaseDate time.Time `json:"release_date"`
	Rating      float64   `json:"ratings"`
	Language    string    `json:"language"`
	PosterURL   string    `json:"poster_url"`
	Description string    `json:"descr"`
	Duration    int       `json:"total_duration"`
	AgeRating   string    `json:"age_rating"`
	BoxOffice   int64     `json:"box_office"`
	Genres      string    `json:"genres"`
	Directors   string    `json:"directors"`
}

// PopularMovie is a row from the popular_movies view joined with Movie.
type PopularMovie struct {
	Movie
	AvgRating    float64 `json:"avg_rating"`
	TotalReviews int     `json:"total_reviews"`
}

// TVShow is a catalog show row with its aggregated genres.
type TVShow struct {
	ShowID      int64     `json:"show_id"`
	Name        string    `json:"name"`
	NumSeasons  int       `json:"num_of_seasons"`
	NumEpisodes int       `json:"num_of_episodes"`
	ReleaseDate time.Time `json:"release_date"`
	Status      string    `json:"status"`
	Rating      float64   `json:"ratings"`
	Language    string    `json:"language"`
	AgeRating   string    `json:"age_rating"`
	Description string    `json:"descr"`
	PosterURL   string    `json:"poster_url"`
	Genres      string    `json:"genres"`
}

// Episode is a single episode of a show.
type Episode struct {
	EpisodeID    int64      `json:"episode_id"`
	ShowID       int64      `json:"show_id"`
	SeasonNumber int        `json:"season_number"`
	EpisodeNo    int        `json:"episode_no"`
	Title        string     `json:"title"`
	Description  string     `json:"ep_descr"`
	Duration     int        `json:"duration"`
	AirDate      *time.Time `json:"air_date"`
}

// Genre is a catalog genre.
type Genre struct {
	GenreID int64  `json:"genre_id"`
	Name    string `json:"name"`
}

// MovieReview is a row from movie_reviews_view.
type MovieReview struct {
	MovieName  string    `json:"movie_name"`
	Username   string    `json:"username"`
	ReviewDate time.Time `json:"review_date"`
	Rating     float64   `json:"rating"`
	ReviewText string    `json:"review_text"`
}

// EpisodeReview is a row from episode_reviews_view.
type EpisodeReview struct {
	ShowName     string    `json:"show_name"`
	SeasonNumber int       `json:"season_number"`
	EpisodeNo    int       `json:"episode_no"`
	Username     string    `json:"username"`
	ReviewDate   time.Time `json:"review_date"`
	Rating       float64   `json:"rating"`
	ReviewText   string    `json:"review_text"`
}

// UserReview is a row from the get_user_reviews function: the user's reviews
// across movies and episodes, with a content_type discriminator.
type UserReview struct {
	ContentName string    `json:"content_name"`
	ContentType string    `json:"content_type"`
	Date        time.Time `json:"date"`
	Rating      float64   `json:"rating"`
	ReviewText  string    `json:"review_text"`
}

// SearchResult is a movie row returned by the external search functions
// (search_movies_by_genre, get_movies_by_director, get_movies_by_actor).
// PersonName carries the matched director or actor name when applicable.
type SearchResult struct {
	Name        string    `json:"name"`
	ReleaseDate time.Time `json:"release_date"`
	Rating      float64   `json:"ratings"`
	PersonName  string    `json:"person_name,omitempty"`
}

// UserStats is a row from user_stats_view. AvgRatingGiven is nil when the
// user has no reviews yet.
type UserStats struct {
	TotalReviews     int      `json:"total_reviews"`
	AvgRatingGiven   *float64 `json:"avg_rating_given"`
	MoviesReviewed   int      `json:"movies_reviewed"`
	EpisodesReviewed int      `json:"episodes_reviewed"`
}

// RankedMovie is a platform top-list entry from popular_movies.
type RankedMovie struct {
	Name         string  `json:"name"`
	AvgRating    float64 `json:"avg_rating"`
	TotalReviews int     `json:"total_reviews"`
}

// RankedShow is a platform top-list entry for shows with at least one
// episode review.
type RankedShow struct {
	Name         string  `json:"name"`
	Rating       float64 `json:"ratings"`
	TotalReviews int     `json:"total_reviews"`
}
