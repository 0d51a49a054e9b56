// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/tariff-watch/auth"
	"github.com/danielhkuo/tariff-watch/cliparse"
	"github.com/danielhkuo/tariff-watch/fixtures"
	"github.com/danielhkuo/tariff-watch/metrics"
	"github.com/danielhkuo/tariff-watch/session"
	"github.com/danielhkuo/tariff-watch/testutil"
)

type testEnv struct {
	cfg      cliparse.Config
	data     *fixtures.Store
	store    *session.Store
	sessions *Sessions
	metrics  *metrics.Registry
}

func newTestEnv(t *testing.T, opts ...func(*cliparse.Config)) *testEnv {
	t.Helper()

	cfg := testutil.GetTestConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	data := testutil.NewTestStore(t)
	m := metrics.New()
	store := testutil.NewTestSessions(t, data, cfg, m)

	return &testEnv{
		cfg:      cfg,
		data:     data,
		store:    store,
		sessions: NewSessions(store, cfg.SessionSalt),
		metrics:  m,
	}
}

// call runs one handler and returns the recorder. Path values are set
// the way ServeMux would.
func call(h http.HandlerFunc, req *http.Request, pathValues map[string]string) *httptest.ResponseRecorder {
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestSessions_ResolveCreatesAndSetsCookie(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	sess := env.sessions.Resolve(w, httptest.NewRequest("GET", "/votes", nil))
	require.NotNil(t, sess)

	token := w.Header().Get(SessionHeader)
	id, err := auth.ParseSessionToken(token, env.cfg.SessionSalt)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, id)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 1, env.store.Len())
}

func TestSessions_ResolveReusesHeaderAndCookie(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	first := env.sessions.Resolve(w, httptest.NewRequest("GET", "/", nil))
	token := w.Header().Get(SessionHeader)

	byHeader := httptest.NewRequest("GET", "/", nil)
	byHeader.Header.Set(SessionHeader, token)
	assert.Same(t, first, env.sessions.Resolve(httptest.NewRecorder(), byHeader))

	byCookie := httptest.NewRequest("GET", "/", nil)
	byCookie.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w = httptest.NewRecorder()
	assert.Same(t, first, env.sessions.Resolve(w, byCookie))
	assert.Empty(t, w.Result().Cookies(), "existing session needs no new cookie")

	assert.Equal(t, 1, env.store.Len())
}

func TestSessions_ResolveRejectsForgedToken(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	first := env.sessions.Resolve(w, httptest.NewRequest("GET", "/", nil))

	forged := httptest.NewRequest("GET", "/", nil)
	forged.Header.Set(SessionHeader, auth.SessionToken(first.ID, "other-salt"))
	second := env.sessions.Resolve(httptest.NewRecorder(), forged)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, env.store.Len())
}

func TestSessions_ResolveExpiredStartsOver(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	first := env.sessions.Resolve(w, httptest.NewRequest("GET", "/", nil))
	token := w.Header().Get(SessionHeader)
	env.store.Close()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(SessionHeader, token)
	second := env.sessions.Resolve(httptest.NewRecorder(), req)

	assert.NotEqual(t, first.ID, second.ID)
}
