// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package web

import (
	"context"

	"github.com/anirudhkashyap/sidrama/internal/database"
	"github.com/anirudhkashyap/sidrama/internal/models"
)

// Store is the slice of the database gateway the page controllers consume.
// *database.DB satisfies it; tests substitute a fake.
type Store interface {
	// Home
	PopularMovies(ctx context.Context, limit int) ([]models.PopularMovie, error)
	TopRatedShows(ctx context.Context, limit int) ([]models.TVShow, error)

	// Movies
	SearchMovies(ctx context.Context, filter database.MovieFilter, limit int) ([]models.Movie, error)
	MovieDirectors(ctx context.Context, movieID int64) (string, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	RecentMovieReviews(ctx context.Context, movieName string, limit int) ([]models.MovieReview, error)

	// TV Shows
	ListShows(ctx context.Context) ([]models.TVShow, error)
	ShowByID(ctx context.Context, showID int64) (*models.TVShow, error)
	ShowEpisodes(ctx context.Context, showID int64) ([]models.Episode, error)
	RecentEpisodeReviews(ctx context.Context, showName string, limit int) ([]models.EpisodeReview, error)

	// Reviews
	HasUserReviewedMovie(ctx context.Context, userID, movieID int64) (bool, error)
	InsertMovieReview(ctx context.Context, userID, movieID int64, rating float64, text string) error
	InsertEpisodeReview(ctx context.Context, userID, episodeID int64, rating float64, text string) error
	UserReviews(ctx context.Context, userID int64) ([]models.UserReview, error)

	// Search
	MoviesByGenre(ctx context.Context, genreName string) ([]models.SearchResult, error)
	MoviesByDirector(ctx context.Context, directorName string) ([]models.SearchResult, error)
	MoviesByActor(ctx context.Context, actorName string) ([]models.SearchResult, error)

	// Statistics / Profile
	UserStats(ctx context.Context, userID int64) (*models.UserStats, error)
	TopMovies(ctx context.Context, limit int) ([]models.RankedMovie, error)
	TopShows(ctx context.Context, limit int) ([]models.RankedShow, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)

	// Health
	Ping(ctx context.Context) error
}
