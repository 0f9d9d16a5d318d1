// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"context"

	"github.com/anirudhkashyap/sidrama/internal/models"
)

// The advanced-search queries all delegate to external set-returning
// functions. Their result shapes differ: the genre search returns bare movie
// rows, while the director and actor searches include the matched person's
// name. All three run behind the shared circuit breaker.

// MoviesByGenre runs search_movies_by_genre. The genre name must match
// exactly; an unknown genre yields an empty result, not an error.
func (db *DB) MoviesByGenre(ctx context.Context, genreName string) ([]models.SearchResult, error) {
	return guarded(db.breaker, func() ([]models.SearchResult, error) {
		ctx, cancel := db.opCtx(ctx, "movies by genre")
		defer cancel()

		rows, err := db.pool.Query(ctx, `SELECT * FROM search_movies_by_genre($1)`, genreName)
		if err != nil {
			return nil, classify("movies by genre", err)
		}
		defer rows.Close()

		var results []models.SearchResult
		for rows.Next() {
			var r models.SearchResult
			if err := rows.Scan(&r.Name, &r.ReleaseDate, &r.Rating); err != nil {
				return nil, classify("movies by genre scan", err)
			}
			results = append(results, r)
		}
		return results, classify("movies by genre rows", rows.Err())
	})
}

// MoviesByDirector runs get_movies_by_director with a partial name match.
func (db *DB) MoviesByDirector(ctx context.Context, directorName string) ([]models.SearchResult, error) {
	return db.moviesByPerson(ctx, `SELECT * FROM get_movies_by_director($1)`, "movies by director", directorName)
}

// MoviesByActor runs get_movies_by_actor with a partial name match.
func (db *DB) MoviesByActor(ctx context.Context, actorName string) ([]models.SearchResult, error) {
	return db.moviesByPerson(ctx, `SELECT * FROM get_movies_by_actor($1)`, "movies by actor", actorName)
}

func (db *DB) moviesByPerson(ctx context.Context, query, op, name string) ([]models.SearchResult, error) {
	return guarded(db.breaker, func() ([]models.SearchResult, error) {
		ctx, cancel := db.opCtx(ctx, op)
		defer cancel()

		rows, err := db.pool.Query(ctx, query, name)
		if err != nil {
			return nil, classify(op, err)
		}
		defer rows.Close()

		var results []models.SearchResult
		for rows.Next() {
			var r models.SearchResult
			if err := rows.Scan(&r.PersonName, &r.Name, &r.ReleaseDate, &r.Rating); err != nil {
				return nil, classify(op+" scan", err)
			}
			results = append(results, r)
		}
		return results, classify(op+" rows", rows.Err())
	})
}
