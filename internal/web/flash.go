// SIDRAMA - Movie & TV Show Review Platform
// Copyright 2026 Anirudh Kashyap
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anirudhkashyap/sidrama

package web

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/anirudhkashyap/sidrama/internal/auth"
)

// flashCookieName carries one-shot messages for requests with no session,
// such as a failed login or a completed registration.
const flashCookieName = "sidrama_flash"

func setFlashCookie(w http.ResponseWriter, kind, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(kind + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlashCookie reads and expires the flash cookie. Malformed values are
// dropped silently.
func takeFlashCookie(w http.ResponseWriter, r *http.Request) []auth.Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(string(decoded), "|")
	if !ok || message == "" {
		return nil
	}
	return []auth.Flash{{Kind: kind, Message: message}}
}
