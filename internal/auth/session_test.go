// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := NewSession(1, "alice", "Alice K", time.Hour)
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != 1 || got.Username != "alice" {
		t.Errorf("got %d/%q", got.UserID, got.Username)
	}
}

func TestSessionStoreMissing(t *testing.T) {
	store := NewMemorySessionStore()
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := NewSession(1, "alice", "Alice K", -time.Minute)
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Get(ctx, session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session returned: %v", err)
	}
	if store.Count() != 0 {
		t.Error("expired session not evicted on access")
	}
}

func TestSessionStoreCleanup(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	expired := NewSession(1, "alice", "Alice K", -time.Minute)
	live := NewSession(2, "bob", "Bob R", time.Hour)
	_ = store.Create(ctx, expired)
	_ = store.Create(ctx, live)

	if removed := store.CleanupExpired(); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if store.Count() != 1 {
		t.Errorf("count = %d, want 1", store.Count())
	}
}

func TestSessionFlashes(t *testing.T) {
	session := NewSession(1, "alice", "Alice K", time.Hour)
	session.AddFlash("success", "Welcome back!")
	session.AddFlash("info", "You have new reviews.")

	flashes := session.TakeFlashes()
	if len(flashes) != 2 {
		t.Fatalf("got %d flashes, want 2", len(flashes))
	}
	if flashes[0].Kind != "success" {
		t.Errorf("first flash kind = %q", flashes[0].Kind)
	}
	if again := session.TakeFlashes(); again != nil {
		t.Error("flashes not cleared after take")
	}
}

// Two tabs sharing one cookie hit the server concurrently, so the interface
// state must tolerate overlapping reads and writes. Run with -race.
func TestSessionConcurrentAccess(t *testing.T) {
	session := NewSession(1, "alice", "Alice K", time.Hour)

	const workers = 8
	const rounds = 50

	var wg sync.WaitGroup
	taken := make([]int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				session.AddFlash("info", "ping")
				session.SetPage(PageMovies)
				_ = session.CurrentPage()
				session.SetViewingShow(int64(j))
				_ = session.ViewingShow()
				session.SetPending(&PendingReview{Kind: ReviewKindMovie, MovieID: int64(j)})
				_ = session.Pending()
				taken[n] += len(session.TakeFlashes())
			}
		}(i)
	}
	wg.Wait()

	total := len(session.TakeFlashes())
	for _, n := range taken {
		total += n
	}
	if total != workers*rounds {
		t.Errorf("flashes accounted for = %d, want %d", total, workers*rounds)
	}
}

func TestSessionAuthenticated(t *testing.T) {
	var nilSession *Session
	if nilSession.Authenticated() {
		t.Error("nil session reported authenticated")
	}
	if (&Session{}).Authenticated() {
		t.Error("anonymous session reported authenticated")
	}
	if !NewSession(1, "alice", "Alice K", time.Hour).Authenticated() {
		t.Error("real session reported unauthenticated")
	}
}
