// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"context"

	"github.com/anirudhkashyap/sidrama/internal/models"
)

// HasUserReviewedMovie reports whether the user already has a Review row for
// the movie. Callers check this before inserting; the check and the insert
// are separate statements, so two simultaneous submissions can both pass the
// check. The unique constraint on (user_id, movie_id) catches that and the
// insert surfaces ErrDuplicate.
func (db *DB) HasUserReviewedMovie(ctx context.Context, userID, movieID int64) (bool, error) {
	ctx, cancel := db.opCtx(ctx, "has reviewed movie")
	defer cancel()

	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM "Review" WHERE user_id = $1 AND movie_id = $2)`,
		userID, movieID,
	).Scan(&exists)
	if err != nil {
		return false, classify("has reviewed movie", err)
	}
	return exists, nil
}

// InsertMovieReview writes a movie review dated today (database clock).
// Rating aggregation happens in the database trigger on Review.
func (db *DB) InsertMovieReview(ctx context.Context, userID, movieID int64, rating float64, text string) error {
	ctx, cancel := db.opCtx(ctx, "insert movie review")
	defer cancel()

	_, err := db.pool.Exec(ctx,
		`INSERT INTO "Review" (user_id, movie_id, date, rating, review_text)
		 VALUES ($1, $2, CURRENT_DATE, $3, $4)`,
		userID, movieID, rating, text)
	return classify("insert movie review", err)
}

// InsertEpisodeReview writes an episode review dated today. Unlike movies
// there is no prior-review check for episodes; repeat reviews of the same
// episode are accepted.
func (db *DB) InsertEpisodeReview(ctx context.Context, userID, episodeID int64, rating float64, text string) error {
	ctx, cancel := db.opCtx(ctx, "insert episode review")
	defer cancel()

	_, err := db.pool.Exec(ctx,
		`INSERT INTO "Review" (user_id, episode_id, date, rating, review_text)
		 VALUES ($1, $2, CURRENT_DATE, $3, $4)`,
		userID, episodeID, rating, text)
	return classify("insert episode review", err)
}

// UserReviews returns the user's full review history (movies and episodes)
// via the external get_user_reviews function, newest first.
func (db *DB) UserReviews(ctx context.Context, userID int64) ([]models.UserReview, error) {
	return guarded(db.breaker, func() ([]models.UserReview, error) {
		ctx, cancel := db.opCtx(ctx, "user reviews")
		defer cancel()

		rows, err := db.pool.Query(ctx, `SELECT * FROM get_user_reviews($1)`, userID)
		if err != nil {
			return nil, classify("user reviews", err)
		}
		defer rows.Close()

		var reviews []models.UserReview
		for rows.Next() {
			var r models.UserReview
			if err := rows.Scan(&r.ContentName, &r.ContentType, &r.Date, &r.Rating, &r.ReviewText); err != nil {
				return nil, classify("user reviews scan", err)
			}
			reviews = append(reviews, r)
		}
		return reviews, classify("user reviews rows", rows.Err())
	})
}
