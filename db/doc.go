// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db keeps the site fixtures in SQLite or PostgreSQL.

The database is a read-only fixture source: it is seeded once and read at
startup. Votes and predictions never reach it.

# Schema Creation

CreateSchema initializes all required tables:

	conn, err := db.Open(ctx, db.SQLite, "file:tariffs.db")
	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables.

# Tables

One table per fixture kind, each with a position column that keeps the
original list order:

  - nav_section
  - timeline_entry
  - market_event
  - upcoming_rumor
  - rumored_tariff
  - vote_rumor
  - leaderboard_entry

List-valued fields (countries, targets, chart data) are stored as JSON
text so both dialects share one schema.

# Seeding and Loading

	err := db.Seed(ctx, conn, db.SQLite, set)   // inserts missing ids
	set, err := db.LoadFixtures(ctx, conn)      // reads everything back

Queries are written with $n placeholders and rebound to ?n for SQLite.
*/
package db
