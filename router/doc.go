// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the tariff-watch API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Deps{
		Config:   cfg,
		Fixtures: data,
		Sessions: store,
		Limiter:  limiter,
		Metrics:  reg,
	})

Every route is wrapped with request logging and a latency histogram
labelled by its pattern.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Navigation:

	GET  /sections          - Sections and the active one
	POST /navigation/scroll - Report scroll position
	POST /navigation/layout - Report measured section offsets
	POST /navigation/{id}   - Jump to a section

Browsing:

	GET    /timeline?country=              - Tariff timeline
	POST   /timeline/{id}/toggle           - Expand or collapse a card
	GET    /timeline/{id}/source           - Redirect to the news source
	GET    /market-events?view=&category=&sort=&dir=
	POST   /market-events/sort/{field}     - Sort by column
	POST   /market-events/page             - Move the pager
	GET    /rumors/upcoming?q=&category=&impact=
	DELETE /rumors/upcoming/filters        - Clear all filters
	GET    /rumors/upcoming/{id}/source    - Redirect to the news source
	GET    /rumors/rumored                 - Rumored tariffs by trend score
	GET    /leaderboard?q=&period=
	POST   /leaderboard/sort/{field}       - Sort by column

Voting and predictions (writes are rate limited per client):

	GET  /votes
	POST /votes/{id}
	GET  /votes/{id}/share
	GET  /predictions
	POST /predictions
	POST /predictions/reset

Newsletter signup (kept in the session only):

	GET  /newsletter
	POST /newsletter
*/
package router
