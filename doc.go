// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the tariff-watch API server.

tariff-watch serves the interactive state behind a tariff tracking site:
filterable rumor and timeline lists, sortable market and leaderboard
tables, per-visitor yes/no vote tallies, a simulated prediction form and
scroll-section tracking. All visitor state lives in memory and is
forgotten when the session expires or the process restarts.

# Starting the Server

	SESSION_SALT=dev go run .

Or with flags:

	go run . -p 3318 -session-salt dev -d file:tariffs.db -t sqlite

# Configuration

Required settings:

  - SESSION_SALT (-session-salt): Secret for session token HMAC

Fixture source (optional):

  - FIXTURES_PATH (-f): YAML fixture file instead of the embedded set
  - DATABASE_URL (-d), DATABASE_TYPE (-t): read fixtures from SQLite or
    PostgreSQL, seeding it first

See package cliparse for the rest.

# Architecture

  - handlers: HTTP request handlers per widget
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, rate limiting, JSON helpers
  - session: Per-visitor widget state and the session store
  - query: Generic filter and sort engines
  - tally: Immutable vote tallies
  - submission: Prediction submission state machine
  - navigation: Scroll-section tracker
  - share: Share text formatting
  - fixtures, db: Fixture loading
  - metrics: Prometheus registry
  - auth: Session tokens and IP hashing
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
