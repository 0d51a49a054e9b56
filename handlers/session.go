// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/tariff-watch/auth"
	"github.com/danielhkuo/tariff-watch/session"
)

const (
	// SessionCookie carries the signed session token for browsers
	SessionCookie = "tw_session"
	// SessionHeader carries the same token for other clients; it wins over
	// the cookie when both are present
	SessionHeader = "X-Session-Token"
)

// Sessions resolves the visitor's session from the request, starting a
// new one when the token is missing, forged or expired
type Sessions struct {
	store *session.Store
	salt  string
}

func NewSessions(store *session.Store, salt string) *Sessions {
	return &Sessions{store: store, salt: salt}
}

// Resolve returns the caller's session and echoes its token on the
// response
func (s *Sessions) Resolve(w http.ResponseWriter, r *http.Request) *session.Session {
	if id, ok := s.tokenID(r); ok {
		if sess, ok := s.store.Get(id); ok {
			w.Header().Set(SessionHeader, auth.SessionToken(sess.ID, s.salt))
			return sess
		}
	}

	sess := s.store.Create()
	token := auth.SessionToken(sess.ID, s.salt)
	w.Header().Set(SessionHeader, token)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Sessions) tokenID(r *http.Request) (string, bool) {
	token := r.Header.Get(SessionHeader)
	if token == "" {
		c, err := r.Cookie(SessionCookie)
		if err != nil {
			return "", false
		}
		token = c.Value
	}

	id, err := auth.ParseSessionToken(token, s.salt)
	if err != nil {
		return "", false
	}
	return id, true
}

// pathID parses the {id} path segment
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// filterParam reads an optional filter value from the query string.
// set is false when the parameter is absent; an empty value or "all"
// clears the filter.
func filterParam(r *http.Request, name string) (value *string, set bool) {
	q := r.URL.Query()
	if !q.Has(name) {
		return nil, false
	}
	v := q.Get(name)
	if v == "" || v == "all" {
		return nil, true
	}
	return &v, true
}

// redirectSource sends the client to an external source URL
func redirectSource(w http.ResponseWriter, r *http.Request, url string) bool {
	if url == "" {
		return false
	}
	http.Redirect(w, r, url, http.StatusFound)
	return true
}
