// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"errors"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestGuardedSuccess(t *testing.T) {
	b := newProcBreaker("test-success")

	got, err := guarded(b, func() ([]string, error) {
		return []string{"a", "b"}, nil
	})
	if err != nil {
		t.Fatalf("guarded returned error: %v", err)
	}
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("guarded result = %v", got)
	}
}

func TestGuardedPropagatesError(t *testing.T) {
	b := newProcBreaker("test-error")
	want := errors.New("query failed")

	_, err := guarded(b, func() (int, error) {
		return 0, want
	})
	if !errors.Is(err, want) {
		t.Errorf("guarded error = %v, want %v", err, want)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	b := newProcBreaker("test-trip")
	boom := errors.New("boom")

	// The trip threshold is a 60% failure rate over at least 10 requests.
	for i := 0; i < 10; i++ {
		_, _ = guarded(b, func() (int, error) { return 0, boom })
	}

	_, err := guarded(b, func() (int, error) { return 42, nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected open breaker, got %v", err)
	}
}

func TestBreakerStaysClosedUnderThreshold(t *testing.T) {
	b := newProcBreaker("test-closed")
	boom := errors.New("boom")

	for i := 0; i < 9; i++ {
		_, _ = guarded(b, func() (int, error) { return 0, boom })
	}

	got, err := guarded(b, func() (int, error) { return 42, nil })
	if err != nil {
		t.Fatalf("breaker tripped below the request floor: %v", err)
	}
	if got != 42 {
		t.Errorf("result = %d, want 42", got)
	}
}

func TestBreakerStateStrings(t *testing.T) {
	cases := []struct {
		state gobreaker.State
		want  string
	}{
		{gobreaker.StateClosed, "closed"},
		{gobreaker.StateHalfOpen, "half-open"},
		{gobreaker.StateOpen, "open"},
	}
	for _, tc := range cases {
		if got := breakerStateString(tc.state); got != tc.want {
			t.Errorf("breakerStateString(%v) = %q, want %q", tc.state, got, tc.want)
		}
	}
}
