// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifyNil(t *testing.T) {
	if err := classify("op", nil); err != nil {
		t.Errorf("classify(nil) = %v, want nil", err)
	}
}

func TestClassifyNoRows(t *testing.T) {
	err := classify("get user", pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("pgx.ErrNoRows should map to ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "get user") {
		t.Errorf("operation name missing from %q", err.Error())
	}
}

func TestClassifyUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "user_username_key"}
	err := classify("create user", pgErr)
	if !IsDuplicate(err) {
		t.Errorf("23505 should map to ErrDuplicate, got %v", err)
	}
}

func TestClassifyWrappedUniqueViolation(t *testing.T) {
	// Driver errors often arrive wrapped; errors.As must still find them.
	inner := &pgconn.PgError{Code: pgUniqueViolation}
	err := classify("insert review", fmt.Errorf("exec failed: %w", inner))
	if !IsDuplicate(err) {
		t.Errorf("wrapped 23505 should map to ErrDuplicate, got %v", err)
	}
}

func TestClassifyForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgForeignKeyViolation}
	err := classify("insert review", pgErr)
	if IsDuplicate(err) || IsNotFound(err) {
		t.Errorf("23503 should stay a plain error, got %v", err)
	}
	if !errors.As(err, new(*pgconn.PgError)) {
		t.Error("original driver error should remain unwrappable")
	}
}

func TestClassifyPassthrough(t *testing.T) {
	base := errors.New("connection reset")
	err := classify("ping", base)
	if !errors.Is(err, base) {
		t.Errorf("unknown errors must wrap the original, got %v", err)
	}
	if IsNotFound(err) || IsDuplicate(err) {
		t.Error("unknown error misclassified")
	}
}
