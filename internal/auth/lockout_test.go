// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package auth

import (
	"testing"
	"time"
)

func TestLimiterAllowsFreshUser(t *testing.T) {
	l := NewLoginLimiter(3, time.Hour)
	if l.Locked("alice") {
		t.Error("fresh username locked")
	}
}

func TestLimiterLocksAfterBudget(t *testing.T) {
	l := NewLoginLimiter(3, time.Hour)
	for i := 0; i < 3; i++ {
		if l.Locked("alice") {
			t.Fatalf("locked after %d failures, budget is 3", i)
		}
		l.RecordFailure("alice")
	}
	if !l.Locked("alice") {
		t.Error("not locked after exhausting the budget")
	}
}

func TestLimiterIsPerUsername(t *testing.T) {
	l := NewLoginLimiter(2, time.Hour)
	l.RecordFailure("alice")
	l.RecordFailure("alice")
	if !l.Locked("alice") {
		t.Error("alice should be locked")
	}
	if l.Locked("bob") {
		t.Error("bob should be unaffected")
	}
}

func TestLimiterSuccessResets(t *testing.T) {
	l := NewLoginLimiter(2, time.Hour)
	l.RecordFailure("alice")
	l.RecordFailure("alice")
	l.RecordSuccess("alice")
	if l.Locked("alice") {
		t.Error("lock survived a successful login")
	}
}

func TestLimiterCleanup(t *testing.T) {
	l := NewLoginLimiter(2, time.Millisecond)
	l.RecordFailure("alice")

	// Make the bucket stale, then sweep.
	l.mu.Lock()
	l.buckets["alice"].lastSeen = time.Now().Add(-time.Hour)
	l.mu.Unlock()

	if removed := l.Cleanup(); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
}
