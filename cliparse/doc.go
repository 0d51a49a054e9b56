// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnvFile reads an optional .env file, then ParseFlags returns a Config
struct with all settings:

	_ = cliparse.LoadEnvFile(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

Flags fall back to environment variables, then to defaults:

	-p                PORT              3318
	-site             SITE_URL          economicalwar.com in share text
	-f                FIXTURES_PATH     embedded fixtures
	-d                DATABASE_URL      none (fixtures not read from a database)
	-t                DATABASE_TYPE     sqlite
	-session-salt     SESSION_SALT      required
	-submit-delay     SUBMIT_DELAY      1.5s
	-session-ttl      SESSION_TTL       30m
	-scroll-threshold SCROLL_THRESHOLD  100
	-vote-rate        VOTE_RATE         2 per second
	-vote-burst       VOTE_BURST        5

CLI flags take precedence over environment variables, and variables
already in the environment win over the .env file.

# Validation

ParseFlags returns an error if SESSION_SALT is missing or a numeric or
duration variable does not parse.
*/
package cliparse
