// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package services

import (
	"context"
	"time"

	"github.com/anirudhkashyap/sidrama/internal/logging"
)

// SessionCleaner is the slice of the session store the janitor needs.
type SessionCleaner interface {
	CleanupExpired() int
}

// SessionJanitorService evicts expired sessions on a fixed interval.
type SessionJanitorService struct {
	store    SessionCleaner
	interval time.Duration
}

// NewSessionJanitorService creates the janitor. A non-positive interval
// falls back to five minutes.
func NewSessionJanitorService(store SessionCleaner, interval time.Duration) *SessionJanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SessionJanitorService{store: store, interval: interval}
}

// Serve implements suture.Service.
func (j *SessionJanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if removed := j.store.CleanupExpired(); removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Expired sessions cleaned up")
			}
		}
	}
}

// String identifies the service in suture's event log.
func (j *SessionJanitorService) String() string {
	return "session-janitor"
}
