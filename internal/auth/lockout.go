// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/anirudhkashyap/sidrama/internal/logging"
)

// LoginLimiter throttles failed login attempts per username with a token
// bucket. Each username gets a bucket holding maxAttempts tokens that
// refills over the configured window; a failed attempt spends one token, and
// an empty bucket means the account is locked until tokens regenerate. A
// successful login clears the bucket.
//
// Limiting keys on username rather than IP so a guessing run against one
// account is slowed regardless of where it comes from.
type LoginLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*loginBucket
	attempts int
	window   time.Duration
}

type loginBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLoginLimiter creates a limiter allowing maxAttempts failures per window
// per username.
func NewLoginLimiter(maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{
		buckets:  make(map[string]*loginBucket),
		attempts: maxAttempts,
		window:   window,
	}
}

// Locked reports whether the username has exhausted its attempt budget.
func (l *LoginLimiter) Locked(username string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.buckets[username]
	if !ok {
		return false
	}
	bucket.lastSeen = time.Now()
	return bucket.limiter.Tokens() < 1
}

// RecordFailure spends one attempt token for the username.
func (l *LoginLimiter) RecordFailure(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket, ok := l.buckets[username]
	if !ok {
		bucket = &loginBucket{
			limiter: rate.NewLimiter(rate.Every(l.window/time.Duration(l.attempts)), l.attempts),
		}
		l.buckets[username] = bucket
	}
	bucket.lastSeen = time.Now()
	if !bucket.limiter.Allow() {
		logging.Warn().Str("username", username).Msg("Login attempts exhausted, account throttled")
	}
}

// RecordSuccess clears the username's bucket.
func (l *LoginLimiter) RecordSuccess(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, username)
}

// Cleanup drops buckets idle for longer than twice the window. Called
// opportunistically by the auth service; there is no background goroutine.
func (l *LoginLimiter) Cleanup() int {
	cutoff := time.Now().Add(-2 * l.window)
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for username, bucket := range l.buckets {
		if bucket.lastSeen.Before(cutoff) {
			delete(l.buckets, username)
			removed++
		}
	}
	return removed
}
