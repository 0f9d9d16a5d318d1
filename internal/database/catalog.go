// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/anirudhkashyap/sidrama/internal/models"
)

// PopularMovies returns up to limit movies from the popularity view joined
// with their catalog rows. Ordering comes from the view itself.
func (db *DB) PopularMovies(ctx context.Context, limit int) ([]models.PopularMovie, error) {
	ctx, cancel := db.opCtx(ctx, "popular movies")
	defer cancel()

	rows, err := db.pool.Query(ctx, `
		SELECT m.movie_id, m.name, m.release_date, m.ratings, m.language,
		       COALESCE(m.poster_url, ''), COALESCE(m.descr, ''),
		       COALESCE(m.total_duration, 0), COALESCE(m.age_rating, ''),
		       COALESCE(m.box_office, 0),
		       pm.avg_rating, pm.total_reviews
		FROM popular_movies pm
		JOIN "Movie" m ON pm.movie_id = m.movie_id
		LIMIT $1`, limit)
	if err != nil {
		return nil, classify("popular movies", err)
	}
	defer rows.Close()

	var movies []models.PopularMovie
	for rows.Next() {
		var pm models.PopularMovie
		if err := rows.Scan(&pm.MovieID, &pm.Name, &pm.ReleaseDate, &pm.Rating,
			&pm.Language, &pm.PosterURL, &pm.Description, &pm.Duration,
			&pm.AgeRating, &pm.BoxOffice, &pm.AvgRating, &pm.TotalReviews); err != nil {
			return nil, classify("popular movies scan", err)
		}
		movies = append(movies, pm)
	}
	return movies, classify("popular movies rows", rows.Err())
}

// TopRatedShows returns up to limit shows ordered by rating descending.
func (db *DB) TopRatedShows(ctx context.Context, limit int) ([]models.TVShow, error) {
	ctx, cancel := db.opCtx(ctx, "top rated shows")
	defer cancel()

	rows, err := db.pool.Query(ctx, `
		SELECT show_id, name, num_of_seasons, num_of_episodes, release_date,
		       COALESCE(status, ''), ratings, COALESCE(language, ''),
		       COALESCE(age_rating, ''), COALESCE(descr, ''), COALESCE(poster_url, '')
		FROM "TVShow"
		ORDER BY ratings DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, classify("top rated shows", err)
	}
	defer rows.Close()

	return scanShows(rows, false)
}

// MovieFilter holds the Movies page search criteria. Zero values mean
// "no filter" for that dimension.
type MovieFilter struct {
	// NameContains matches the movie name case-insensitively as a substring.
	NameContains string

	// Genre matches a genre name exactly.
	Genre string

	// MinRating keeps movies rated at or above the given value.
	MinRating float64
}

// buildMovieSearch assembles the Movies page query. The filter dimensions are
// optional and compose; results are capped and ordered by rating then
// release date, both descending. Split out of SearchMovies so the SQL
// assembly is testable without a live pool.
func buildMovieSearch(filter MovieFilter, limit int) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT DISTINCT
		       m.movie_id, m.name, m.release_date, m.ratings, m.language,
		       COALESCE(m.poster_url, ''), COALESCE(m.descr, ''),
		       COALESCE(m.total_duration, 0), COALESCE(m.age_rating, ''),
		       COALESCE(m.box_office, 0),
		       COALESCE(string_agg(DISTINCT g.name, ', ' ORDER BY g.name), '') AS genres
		FROM "Movie" m
		LEFT JOIN "Movie_Genre" mg ON m.movie_id = mg.movie_id
		LEFT JOIN "Genre" g ON mg.genre_id = g.genre_id
		WHERE 1=1`)

	var params []interface{}
	if filter.NameContains != "" {
		params = append(params, "%"+filter.NameContains+"%")
		fmt.Fprintf(&sb, " AND m.name ILIKE $%d", len(params))
	}
	if filter.Genre != "" {
		params = append(params, filter.Genre)
		fmt.Fprintf(&sb, " AND g.name = $%d", len(params))
	}
	if filter.MinRating > 0 {
		params = append(params, filter.MinRating)
		fmt.Fprintf(&sb, " AND m.ratings >= $%d", len(params))
	}

	sb.WriteString(`
		GROUP BY m.movie_id, m.name, m.release_date, m.ratings, m.language,
		         m.poster_url, m.descr, m.total_duration, m.age_rating, m.box_office
		ORDER BY m.ratings DESC, m.release_date DESC`)
	params = append(params, limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(params))

	return sb.String(), params
}

// SearchMovies runs the Movies page search. An empty result is not an error.
func (db *DB) SearchMovies(ctx context.Context, filter MovieFilter, limit int) ([]models.Movie, error) {
	ctx, cancel := db.opCtx(ctx, "search movies")
	defer cancel()

	query, params := buildMovieSearch(filter, limit)
	rows, err := db.pool.Query(ctx, query, params...)
	if err != nil {
		return nil, classify("search movies", err)
	}
	defer rows.Close()

	var movies []models.Movie
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.MovieID, &m.Name, &m.ReleaseDate, &m.Rating,
			&m.Language, &m.PosterURL, &m.Description, &m.Duration,
			&m.AgeRating, &m.BoxOffice, &m.Genres); err != nil {
			return nil, classify("search movies scan", err)
		}
		movies = append(movies, m)
	}
	return movies, classify("search movies rows", rows.Err())
}

// MovieDirectors returns the directors line from movie_details_view, or an
// empty string when the view has no row for the movie.
func (db *DB) MovieDirectors(ctx context.Context, movieID int64) (string, error) {
	ctx, cancel := db.opCtx(ctx, "movie directors")
	defer cancel()

	var directors string
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(directors, '') FROM movie_details_view WHERE movie_id = $1`,
		movieID,
	).Scan(&directors)
	if err != nil {
		err = classify("movie directors", err)
		if IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return directors, nil
}

// ListGenres returns all genres ordered by name.
func (db *DB) ListGenres(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := db.opCtx(ctx, "list genres")
	defer cancel()

	rows, err := db.pool.Query(ctx, `SELECT genre_id, name FROM "Genre" ORDER BY name`)
	if err != nil {
		return nil, classify("list genres", err)
	}
	defer rows.Close()

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.GenreID, &g.Name); err != nil {
			return nil, classify("list genres scan", err)
		}
		genres = append(genres, g)
	}
	return genres, classify("list genres rows", rows.Err())
}

// ListShows returns every show with its aggregated genre names, ordered by
// rating descending. The TV Shows page has no pagination.
func (db *DB) ListShows(ctx context.Context) ([]models.TVShow, error) {
	ctx, cancel := db.opCtx(ctx, "list shows")
	defer cancel()

	rows, err := db.pool.Query(ctx, `
		SELECT s.show_id, s.name, s.num_of_seasons, s.num_of_episodes,
		       s.release_date, COALESCE(s.status, ''), s.ratings,
		       COALESCE(s.language, ''), COALESCE(s.age_rating, ''),
		       COALESCE(s.descr, ''), COALESCE(s.poster_url, ''),
		       COALESCE(string_agg(DISTINCT g.name, ', ' ORDER BY g.name), '') AS genres
		FROM "TVShow" s
		LEFT JOIN "Show_Genre" sg ON s.show_id = sg.show_id
		LEFT JOIN "Genre" g ON sg.genre_id = g.genre_id
		GROUP BY s.show_id, s.name, s.num_of_seasons, s.num_of_episodes,
		         s.release_date, s.status, s.ratings, s.language,
		         s.age_rating, s.descr, s.poster_url
		ORDER BY s.ratings DESC`)
	if err != nil {
		return nil, classify("list shows", err)
	}
	defer rows.Close()

	return scanShows(rows, true)
}

// ShowByID returns a single show with its aggregated genres.
func (db *DB) ShowByID(ctx context.Context, showID int64) (*models.TVShow, error) {
	ctx, cancel := db.opCtx(ctx, "show by id")
	defer cancel()

	var s models.TVShow
	err := db.pool.QueryRow(ctx, `
		SELECT s.show_id, s.name, s.num_of_seasons, s.num_of_episodes,
		       s.release_date, COALESCE(s.status, ''), s.ratings,
		       COALESCE(s.language, ''), COALESCE(s.age_rating, ''),
		       COALESCE(s.descr, ''), COALESCE(s.poster_url, ''),
		       COALESCE(string_agg(DISTINCT g.name, ', ' ORDER BY g.name), '')
		FROM "TVShow" s
		LEFT JOIN "Show_Genre" sg ON s.show_id = sg.show_id
		LEFT JOIN "Genre" g ON sg.genre_id = g.genre_id
		WHERE s.show_id = $1
		GROUP BY s.show_id, s.name, s.num_of_seasons, s.num_of_episodes,
		         s.release_date, s.status, s.ratings, s.language,
		         s.age_rating, s.descr, s.poster_url`, showID,
	).Scan(&s.ShowID, &s.Name, &s.NumSeasons, &s.NumEpisodes, &s.ReleaseDate,
		&s.Status, &s.Rating, &s.Language, &s.AgeRating, &s.Description,
		&s.PosterURL, &s.Genres)
	if err != nil {
		return nil, classify("show by id", err)
	}
	return &s, nil
}

// ShowEpisodes returns a show's episodes ordered by (season, episode).
func (db *DB) ShowEpisodes(ctx context.Context, showID int64) ([]models.Episode, error) {
	ctx, cancel := db.opCtx(ctx, "show episodes")
	defer cancel()

	rows, err := db.pool.Query(ctx, `
		SELECT episode_id, show_id, season_number, episode_no,
		       COALESCE(title, ''), COALESCE(ep_descr, ''),
		       COALESCE(duration, 0), air_date
		FROM "Episode"
		WHERE show_id = $1
		ORDER BY season_number, episode_no`, showID)
	if err != nil {
		return nil, classify("show episodes", err)
	}
	defer rows.Close()

	var episodes []models.Episode
	for rows.Next() {
		var e models.Episode
		if err := rows.Scan(&e.EpisodeID, &e.ShowID, &e.SeasonNumber, &e.EpisodeNo,
			&e.Title, &e.Description, &e.Duration, &e.AirDate); err != nil {
			return nil, classify("show episodes scan", err)
		}
		episodes = append(episodes, e)
	}
	return episodes, classify("show episodes rows", rows.Err())
}

// RecentMovieReviews returns the latest reviews for a movie from
// movie_reviews_view, newest first. The view keys on movie name.
func (db *DB) RecentMovieReviews(ctx context.Context, movieName string, limit int) ([]models.MovieReview, error) {
	ctx, cancel := db.opCtx(ctx, "recent movie reviews")
	defer cancel()

	rows, err := db.pool.Query(ctx, `
		SELECT movie_name, username, review_date, rating, review_text
		FROM movie_reviews_view
		WHERE movie_name = $1
		ORDER BY review_date DESC
		LIMIT $2`, movieName, limit)
	if err != nil {
		return nil, classify("recent movie reviews", err)
	}
	defer rows.Close()

	var reviews []models.MovieReview
	for rows.Next() {
		var r models.MovieReview
		if err := rows.Scan(&r.MovieName, &r.Username, &r.ReviewDate, &r.Rating, &r.ReviewText); err != nil {
			return nil, classify("recent movie reviews scan", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, classify("recent movie reviews rows", rows.Err())
}

// RecentEpisodeReviews returns the latest episode reviews for a show from
// episode_reviews_view, newest first.
func (db *DB) RecentEpisodeReviews(ctx context.Context, showName string, limit int) ([]models.EpisodeReview, error) {
	ctx, cancel := db.opCtx(ctx, "recent episode reviews")
	defer cancel()

	rows, err := db.pool.Query(ctx, `
		SELECT show_name, season_number, episode_no, username, review_date, rating, review_text
		FROM episode_reviews_view
		WHERE show_name = $1
		ORDER BY review_date DESC
		LIMIT $2`, showName, limit)
	if err != nil {
		return nil, classify("recent episode reviews", err)
	}
	defer rows.Close()

	var reviews []models.EpisodeReview
	for rows.Next() {
		var r models.EpisodeReview
		if err := rows.Scan(&r.ShowName, &r.SeasonNumber, &r.EpisodeNo,
			&r.Username, &r.ReviewDate, &r.Rating, &r.ReviewText); err != nil {
			return nil, classify("recent episode reviews scan", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, classify("recent episode reviews rows", rows.Err())
}

// rowScanner is the subset of pgx.Rows used by the shared scan helpers.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanShows drains show rows, optionally including the aggregated genres
// column.
func scanShows(rows rowScanner, withGenres bool) ([]models.TVShow, error) {
	var shows []models.TVShow
	for rows.Next() {
		var s models.TVShow
		dest := []any{&s.ShowID, &s.Name, &s.NumSeasons, &s.NumEpisodes,
			&s.ReleaseDate, &s.Status, &s.Rating, &s.Language,
			&s.AgeRating, &s.Description, &s.PosterURL}
		if withGenres {
			dest = append(dest, &s.Genres)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, classify("scan show", err)
		}
		shows = append(shows, s)
	}
	return shows, classify("show rows", rows.Err())
}
