// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects the driver and placeholder style
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ParseDialect accepts "sqlite" and "postgres"/"postgresql"
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql":
		return Postgres, nil
	}
	return "", fmt.Errorf("unsupported database type %q", s)
}

// rebind rewrites $n placeholders to ? for SQLite
func (d Dialect) rebind(query string) string {
	if d != SQLite {
		return query
	}
	var b strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
			j := i + 1
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(query[i+1 : j])
			b.WriteString("?" + strconv.Itoa(n))
			i = j - 1
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Open connects and verifies the connection
func Open(ctx context.Context, d Dialect, url string) (*sql.DB, error) {
	conn, err := sql.Open(string(d), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all fixture tables.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// List-valued columns (countries, targets, chart data) hold JSON text.
const schema = `
CREATE TABLE IF NOT EXISTS nav_section (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    top_offset REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS timeline_entry (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    event_date TEXT NOT NULL,
    countries TEXT NOT NULL,
    details TEXT NOT NULL,
    impact TEXT NOT NULL,
    source TEXT NOT NULL,
    negative BOOLEAN NOT NULL,
    additional_info TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS market_event (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    event_date TEXT NOT NULL,
    country TEXT NOT NULL,
    category TEXT NOT NULL,
    description TEXT NOT NULL,
    crypto_impact REAL NOT NULL,
    stock_impact REAL NOT NULL,
    news_source TEXT NOT NULL,
    chart_data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS upcoming_rumor (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    display_date TEXT NOT NULL,
    targets TEXT NOT NULL,
    rumor TEXT NOT NULL,
    source TEXT NOT NULL,
    confidence INTEGER NOT NULL CHECK (confidence >= 0 AND confidence <= 100),
    category TEXT NOT NULL,
    impact TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rumored_tariff (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    expected_date TEXT NOT NULL,
    country TEXT NOT NULL,
    sector TEXT NOT NULL,
    confidence INTEGER NOT NULL CHECK (confidence >= 0 AND confidence <= 100),
    trend_score REAL NOT NULL,
    news_origin TEXT NOT NULL,
    impact TEXT NOT NULL,
    description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vote_rumor (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    expected_date TEXT NOT NULL,
    yes_votes INTEGER NOT NULL CHECK (yes_votes >= 0),
    no_votes INTEGER NOT NULL CHECK (no_votes >= 0),
    source TEXT NOT NULL,
    category TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS leaderboard_entry (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    address TEXT NOT NULL,
    correct_predictions INTEGER NOT NULL,
    total_predictions INTEGER NOT NULL,
    accuracy INTEGER NOT NULL,
    board_rank INTEGER NOT NULL,
    last_prediction TEXT NOT NULL,
    streak INTEGER NOT NULL,
    is_team_member BOOLEAN NOT NULL
);
`
