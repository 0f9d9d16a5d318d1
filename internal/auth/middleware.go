// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/anirudhkashyap/sidrama/internal/logging"
)

// Cookie names.
const (
	SessionCookieName  = "sidrama_session"
	RememberCookieName = "sidrama_remember"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext returns the request's session, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*Session)
	return session, ok
}

// ContextWithSession injects a session, used by tests and the middleware.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// CookieWriter sets auth cookies with consistent attributes.
type CookieWriter struct {
	Secure bool
}

// SetSession writes the session cookie. It is a browser-session cookie; the
// server-side expiry governs lifetime.
func (c *CookieWriter) SetSession(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetRemember writes the remember-me token cookie with the token lifetime.
func (c *CookieWriter) SetRemember(w http.ResponseWriter, token string, lifetime time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RememberCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires both auth cookies.
func (c *CookieWriter) Clear(w http.ResponseWriter) {
	for _, name := range []string{SessionCookieName, RememberCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   c.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// SessionMiddleware resolves the session cookie on every request and injects
// the session into the request context. When the session is gone but a valid
// remember-me cookie is present, it mints a fresh session (identity only,
// interface state resets) and sets a new session cookie. Requests without
// either proceed with no session; handlers render the unauthenticated Home.
func (s *Service) SessionMiddleware(cookies *CookieWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := s.sessionForRequest(w, r, cookies)
			if session != nil {
				r = r.WithContext(ContextWithSession(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Service) sessionForRequest(w http.ResponseWriter, r *http.Request, cookies *CookieWriter) *Session {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		session, err := s.ResolveSession(r.Context(), cookie.Value)
		if err == nil {
			return session
		}
	}

	cookie, err := r.Cookie(RememberCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	session, err := s.RestoreFromToken(r.Context(), cookie.Value)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Remember-me token rejected")
		return nil
	}
	cookies.SetSession(w, session.ID)
	return session
}
