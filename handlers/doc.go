// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the tariff-watch API.

# Handler Types

Each handler is a struct with fixture and session dependencies:

  - TimelineHandler: Tariff timeline with country chips and card expansion
  - MarketHandler: Market impact tracker (view, category, sort, pager)
  - RumorHandler: Upcoming rumor browser and rumored tariff cards
  - LeaderboardHandler: Address search, column sort and period tabs
  - VotingHandler: Rumor tallies, vote casting and share text
  - PredictionHandler: Prediction form submission and reset
  - NavigationHandler: Scroll-section tracking
  - NewsletterHandler: Footer email signup

Handlers are created via constructor functions:

	sessions := handlers.NewSessions(store, cfg.SessionSalt)
	votingHandler := handlers.NewVotingHandler(data, sessions, cfg.SiteURL, reg)

# Sessions

Every widget keeps its state per visitor. The session token is set as the
tw_session cookie and echoed in the X-Session-Token response header;
either may be sent back. A missing, forged or expired token starts a
fresh session from the fixture seed.

Query parameters on the list endpoints update the widget state before it
is rendered, so a parameter left out keeps its previous value:

	GET /rumors/upcoming?impact=High   → only high impact rumors
	GET /rumors/upcoming?q=brazil      → still high impact, now searched
	DELETE /rumors/upcoming/filters    → everything again

# Voting

	POST /votes/{id} {"choice":"yes"}

The first vote per rumor and session counts. Later votes answer 200 with
accepted=false and the unchanged tally.

# Predictions

	POST /predictions       → 202 pending, 422 invalid, 409 busy
	GET /predictions        → idle, pending or submitted
	POST /predictions/reset → back to idle once submitted
*/
package handlers
