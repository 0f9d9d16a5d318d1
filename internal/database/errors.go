// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/anirudhkashyap/sidrama/internal/metrics"
)

// Gateway error taxonomy. Everything else passes through wrapped so the
// interface layer can surface the message inline.
var (
	// ErrNotFound indicates a lookup matched no rows.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a write violated a unique constraint
	// (duplicate username/email, or a second review for the same movie).
	ErrDuplicate = errors.New("duplicate entry")
)

// SQLSTATE class 23 constraint violation codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify maps driver errors onto the gateway taxonomy and counts real
// failures. No-rows lookups and unique violations are normal outcomes (a
// missing row, the duplicate-review constraint firing), not database errors.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		case pgForeignKeyViolation:
			metrics.RecordDBError(op)
			return fmt.Errorf("%s: referenced row missing: %w", op, err)
		}
	}

	metrics.RecordDBError(op)
	return fmt.Errorf("%s: %w", op, err)
}

// IsNotFound reports whether err is a no-rows lookup result.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
