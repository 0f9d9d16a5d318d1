// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anirudhkashyap/sidrama/internal/metrics"
)

// Page names a session can navigate to. The sidebar writes these; the page
// renderer switches on them. An unauthenticated session always renders Home
// regardless of the stored page.
const (
	PageHome       = "Home"
	PageMovies     = "Movies"
	PageTVShows    = "TV Shows"
	PageMyReviews  = "My Reviews"
	PageSearch     = "Search"
	PageStatistics = "Statistics"
	PageProfile    = "Profile"
)

// Review kinds for PendingReview.
const (
	ReviewKindMovie   = "movie"
	ReviewKindEpisode = "episode"
)

// PendingReview is an open review form. At most one is open per session;
// starting a new one replaces it.
type PendingReview struct {
	Kind string

	// Movie review target.
	MovieID   int64
	MovieName string

	// Episode review target.
	EpisodeID    int64
	ShowName     string
	SeasonNumber int
	EpisodeNo    int
}

// Flash is a one-shot message rendered on the next page load and then
// discarded.
type Flash struct {
	Kind    string // "success", "error", "info"
	Message string
}

// Session is the per-browser interface state. Every page render reads it and
// every action mutates it; the database holds no session state.
//
// The store hands the same pointer to every request carrying the cookie, and
// one browser can issue overlapping requests (two tabs, a double-click), so
// the mutable interface state sits behind a mutex. Identity and lifetime
// fields are written once at creation and read freely.
type Session struct {
	ID       string
	UserID   int64
	Username string
	Name     string

	CreatedAt time.Time
	ExpiresAt time.Time

	mu            sync.Mutex
	page          string
	pendingReview *PendingReview
	viewingShowID int64 // 0 means the show list, not a detail view
	flashes       []Flash
}

// Authenticated reports whether the session belongs to a logged-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

// CurrentPage returns the page the session last navigated to.
func (s *Session) CurrentPage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// SetPage records a navigation.
func (s *Session) SetPage(page string) {
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
}

// Pending returns the open review form, or nil. The returned value is never
// mutated in place; starting a new review replaces it wholesale.
func (s *Session) Pending() *PendingReview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingReview
}

// SetPending opens a review form, or closes it when p is nil.
func (s *Session) SetPending(p *PendingReview) {
	s.mu.Lock()
	s.pendingReview = p
	s.mu.Unlock()
}

// ViewingShow returns the show the session drilled into, 0 for the list.
func (s *Session) ViewingShow() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewingShowID
}

// SetViewingShow enters (or, with 0, leaves) the episode drill-down.
func (s *Session) SetViewingShow(id int64) {
	s.mu.Lock()
	s.viewingShowID = id
	s.mu.Unlock()
}

// AddFlash queues a one-shot message for the next render.
func (s *Session) AddFlash(kind, message string) {
	s.mu.Lock()
	s.flashes = append(s.flashes, Flash{Kind: kind, Message: message})
	s.mu.Unlock()
}

// TakeFlashes returns queued messages and clears them.
func (s *Session) TakeFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flashes
	s.flashes = nil
	return f
}

// SessionStore is the session persistence interface. The only implementation
// is in-memory; sessions are interface state and are cheap to lose.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Count() int
}

// MemorySessionStore keeps sessions in a mutex-guarded map. Expired
// sessions are dropped on access and by the supervised janitor service,
// which calls CleanupExpired periodically.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemorySessionStore creates an empty store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*Session),
	}
}

// NewSession builds an authenticated session with a fresh random identifier.
func NewSession(userID int64, username, name string, timeout time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Name:      name,
		page:      PageHome,
		CreatedAt: now,
		ExpiresAt: now.Add(timeout),
	}
}

// Create stores a session.
func (s *MemorySessionStore) Create(_ context.Context, session *Session) error {
	s.mu.Lock()
	s.sessions[session.ID] = session
	count := len(s.sessions)
	s.mu.Unlock()
	metrics.SetActiveSessions(count)
	return nil
}

// Get returns the session for id, or ErrSessionNotFound when it is missing
// or expired. Expired sessions are removed on access.
func (s *MemorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		count := len(s.sessions)
		s.mu.Unlock()
		metrics.SetActiveSessions(count)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	count := len(s.sessions)
	s.mu.Unlock()
	metrics.SetActiveSessions(count)
	return nil
}

// Count returns the number of stored sessions, expired ones included until
// the next cleanup pass.
func (s *MemorySessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CleanupExpired removes every expired session and returns how many were
// dropped.
func (s *MemorySessionStore) CleanupExpired() int {
	now := time.Now()
	s.mu.Lock()
	removed := 0
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	count := len(s.sessions)
	s.mu.Unlock()
	metrics.SetActiveSessions(count)
	return removed
}
