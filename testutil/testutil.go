// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/tariff-watch/cliparse"
	"github.com/danielhkuo/tariff-watch/db"
	"github.com/danielhkuo/tariff-watch/fixtures"
	"github.com/danielhkuo/tariff-watch/metrics"
	"github.com/danielhkuo/tariff-watch/session"
)

// TestDBURL is an in-memory SQLite database shared by one connection
const TestDBURL = "file::memory:"

// SessionHeader mirrors the header handlers echo the session token on
const SessionHeader = "X-Session-Token"

// SetupTestDB opens an in-memory database with the schema and the
// default fixtures loaded
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.SQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := db.Seed(ctx, conn, db.SQLite, TestFixtureSet(t)); err != nil {
		t.Fatalf("Failed to seed fixtures: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseType:    string(db.SQLite),
		SessionSalt:     "test-session-salt",
		SiteURL:         "https://economicalwar.com",
		SubmitDelay:     20 * time.Millisecond,
		SessionTTL:      time.Hour,
		ScrollThreshold: 100,
		VoteRate:        1000,
		VoteBurst:       1000,
	}
}

// TestFixtureSet returns the embedded default fixtures
func TestFixtureSet(t *testing.T) *fixtures.Set {
	t.Helper()

	set, err := fixtures.DefaultSet()
	if err != nil {
		t.Fatalf("Failed to load default fixtures: %v", err)
	}
	return set
}

// NewTestStore returns a fixture store over the default fixtures
func NewTestStore(t *testing.T) *fixtures.Store {
	t.Helper()
	return fixtures.NewStore(TestFixtureSet(t))
}

// NewTestSessions builds a session store seeded from data. Sessions are
// closed when the test ends.
func NewTestSessions(t *testing.T, data *fixtures.Store, cfg cliparse.Config, m *metrics.Registry) *session.Store {
	t.Helper()

	seed := session.SeedFromFixtures(data)
	seed.ScrollThreshold = cfg.ScrollThreshold
	seed.SubmitDelay = cfg.SubmitDelay

	store := session.NewStore(seed, cfg.SessionTTL, m)
	t.Cleanup(store.Close)
	return store
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// SessionToken returns the token a handler echoed, as request headers
// for the next call in the same session
func SessionToken(w *httptest.ResponseRecorder) map[string]string {
	return map[string]string{SessionHeader: w.Header().Get(SessionHeader)}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
