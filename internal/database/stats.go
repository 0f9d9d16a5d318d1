// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"context"

	"github.com/anirudhkashyap/sidrama/internal/models"
)

// UserStats reads the user's aggregate review figures from user_stats_view.
// A user with no reviews gets a zeroed row rather than an error.
func (db *DB) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	ctx, cancel := db.opCtx(ctx, "user stats")
	defer cancel()

	var stats models.UserStats
	err := db.pool.QueryRow(ctx, `
		SELECT total_reviews, avg_rating_given, movies_reviewed, episodes_reviewed
		FROM user_stats_view
		WHERE user_id = $1`, userID,
	).Scan(&stats.TotalReviews, &stats.AvgRatingGiven, &stats.MoviesReviewed, &stats.EpisodesReviewed)
	if err != nil {
		err = classify("user stats", err)
		if IsNotFound(err) {
			return &models.UserStats{}, nil
		}
		return nil, err
	}
	return &stats, nil
}

// TopMovies returns the platform's top movies by review activity from
// popular_movies, already ordered by the view.
func (db *DB) TopMovies(ctx context.Context, limit int) ([]models.RankedMovie, error) {
	ctx, cancel := db.opCtx(ctx, "top movies")
	defer cancel()

	rows, err := db.pool.Query(ctx, `
		SELECT movie_name, avg_rating, total_reviews
		FROM popular_movies
		LIMIT $1`, limit)
	if err != nil {
		return nil, classify("top movies", err)
	}
	defer rows.Close()

	var ranked []models.RankedMovie
	for rows.Next() {
		var m models.RankedMovie
		if err := rows.Scan(&m.Name, &m.AvgRating, &m.TotalReviews); err != nil {
			return nil, classify("top movies scan", err)
		}
		ranked = append(ranked, m)
	}
	return ranked, classify("top movies rows", rows.Err())
}

// TopShows returns the platform's top shows among those with at least one
// episode review, ordered by catalog rating.
func (db *DB) TopShows(ctx context.Context, limit int) ([]models.RankedShow, error) {
	ctx, cancel := db.opCtx(ctx, "top shows")
	defer cancel()

	rows, err := db.pool.Query(ctx, `
		SELECT s.name, s.ratings, COUNT(r.review_id) AS total_reviews
		FROM "TVShow" s
		JOIN "Episode" e ON s.show_id = e.show_id
		JOIN "Review" r ON e.episode_id = r.episode_id
		GROUP BY s.show_id, s.name, s.ratings
		ORDER BY s.ratings DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, classify("top shows", err)
	}
	defer rows.Close()

	var ranked []models.RankedShow
	for rows.Next() {
		var s models.RankedShow
		if err := rows.Scan(&s.Name, &s.Rating, &s.TotalReviews); err != nil {
			return nil, classify("top shows scan", err)
		}
		ranked = append(ranked, s)
	}
	return ranked, classify("top shows rows", rows.Err())
}
