// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package database

import (
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/anirudhkashyap/sidrama/internal/logging"
	"github.com/anirudhkashyap/sidrama/internal/metrics"
)

// procBreaker guards calls into the external set-returning functions
// (get_user_reviews, search_movies_by_genre, get_movies_by_director,
// get_movies_by_actor). The functions are opaque external logic; when they
// start failing, the breaker sheds load instead of stacking blocked renders.
//
// The breaker uses real time for interval and timeout calculations. Tests
// exercise the wrapped call directly rather than mocking the breaker.
type procBreaker struct {
	cb   *gobreaker.CircuitBreaker[interface{}]
	name string
}

// newProcBreaker creates a breaker that opens after a 60% failure rate over
// at least 10 calls, and probes recovery after 30 seconds.
func newProcBreaker(name string) *procBreaker {
	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", breakerStateString(from)).
				Str("to", breakerStateString(to)).
				Msg("Circuit breaker state transition")
			metrics.BreakerState.WithLabelValues(name).Set(breakerStateFloat(to))
		},
	})

	return &procBreaker{cb: cb, name: name}
}

// execute runs fn behind the breaker and records the outcome.
func (b *procBreaker) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.BreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Str("breaker", b.name).Msg("External function call rejected")
		} else {
			metrics.BreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.BreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

// guarded runs a typed query function behind the breaker.
func guarded[T any](b *procBreaker, fn func() (T, error)) (T, error) {
	result, err := b.execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		var zero T
		return zero, errors.New("circuit breaker: unexpected result type")
	}
	return typed, nil
}

func breakerStateString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func breakerStateFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
