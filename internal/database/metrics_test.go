// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/anirudhkashyap/sidrama/internal/metrics"
)

func TestOpCtxObservesQueryDuration(t *testing.T) {
	db := &DB{queryTimeout: time.Second}

	before := testutil.CollectAndCount(metrics.DBQueryDuration)
	ctx, cancel := db.opCtx(context.Background(), "duration probe op")
	cancel()
	after := testutil.CollectAndCount(metrics.DBQueryDuration)

	if after != before+1 {
		t.Errorf("histogram children = %d, want %d", after, before+1)
	}
	if err := ctx.Err(); !errors.Is(err, context.Canceled) {
		t.Errorf("ctx not cancelled: %v", err)
	}
}

func TestClassifyCountsRealErrors(t *testing.T) {
	op := "error counting op"
	errCount := func() float64 {
		return testutil.ToFloat64(metrics.DBErrors.WithLabelValues(op))
	}

	start := errCount()

	// Normal outcomes must not move db_errors_total.
	_ = classify(op, nil)
	_ = classify(op, pgx.ErrNoRows)
	_ = classify(op, &pgconn.PgError{Code: "23505"})
	if got := errCount(); got != start {
		t.Errorf("count after normal outcomes = %v, want %v", got, start)
	}

	_ = classify(op, errors.New("connection reset"))
	if got := errCount(); got != start+1 {
		t.Errorf("count after plain error = %v, want %v", got, start+1)
	}

	_ = classify(op, &pgconn.PgError{Code: "23503"})
	if got := errCount(); got != start+2 {
		t.Errorf("count after fk violation = %v, want %v", got, start+2)
	}
}
