// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"strings"
	"testing"
)

func TestBuildMovieSearchNoFilters(t *testing.T) {
	query, params := buildMovieSearch(MovieFilter{}, 50)

	if len(params) != 1 {
		t.Fatalf("expected only the limit param, got %d params", len(params))
	}
	if params[0] != 50 {
		t.Errorf("limit param = %v, want 50", params[0])
	}
	if strings.Contains(query, "ILIKE") {
		t.Error("name clause should be absent without a name filter")
	}
	if !strings.Contains(query, "ORDER BY m.ratings DESC, m.release_date DESC") {
		t.Error("missing rating/release ordering")
	}
	if !strings.Contains(query, "LIMIT $1") {
		t.Error("limit placeholder should be $1 with no filters")
	}
}

func TestBuildMovieSearchAllFilters(t *testing.T) {
	filter := MovieFilter{
		NameContains: "dark",
		Genre:        "Thriller",
		MinRating:    3.5,
	}
	query, params := buildMovieSearch(filter, 50)

	want := []interface{}{"%dark%", "Thriller", 3.5, 50}
	if len(params) != len(want) {
		t.Fatalf("got %d params, want %d", len(params), len(want))
	}
	for i := range want {
		if params[i] != want[i] {
			t.Errorf("params[%d] = %v, want %v", i, params[i], want[i])
		}
	}

	for _, clause := range []string{
		"m.name ILIKE $1",
		"g.name = $2",
		"m.ratings >= $3",
		"LIMIT $4",
	} {
		if !strings.Contains(query, clause) {
			t.Errorf("query missing clause %q", clause)
		}
	}
}

func TestBuildMovieSearchPlaceholderNumbering(t *testing.T) {
	// A single filter must still produce sequential placeholders.
	query, params := buildMovieSearch(MovieFilter{Genre: "Drama"}, 10)

	if len(params) != 2 {
		t.Fatalf("got %d params, want 2", len(params))
	}
	if !strings.Contains(query, "g.name = $1") {
		t.Error("genre clause should use $1 when it is the only filter")
	}
	if !strings.Contains(query, "LIMIT $2") {
		t.Error("limit should use $2 after a single filter")
	}
}

func TestBuildMovieSearchZeroRatingSkipped(t *testing.T) {
	query, params := buildMovieSearch(MovieFilter{MinRating: 0}, 10)

	if strings.Contains(query, "m.ratings >=") {
		t.Error("zero minimum rating must not add a clause")
	}
	if len(params) != 1 {
		t.Errorf("got %d params, want 1", len(params))
	}
}
