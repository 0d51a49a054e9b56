// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/tariff-watch/cliparse"
	"github.com/danielhkuo/tariff-watch/fixtures"
	"github.com/danielhkuo/tariff-watch/handlers"
	"github.com/danielhkuo/tariff-watch/metrics"
	"github.com/danielhkuo/tariff-watch/middleware"
	"github.com/danielhkuo/tariff-watch/session"
)

// Deps is everything the handlers need. Limiter and Metrics may be nil.
type Deps struct {
	Config   cliparse.Config
	Fixtures *fixtures.Store
	Sessions *session.Store
	Limiter  *middleware.RateLimiter
	Metrics  *metrics.Registry
}

func NewRouter(deps Deps) *http.ServeMux {
	mux := http.NewServeMux()
	cfg := deps.Config

	// Initialize handlers
	sessions := handlers.NewSessions(deps.Sessions, cfg.SessionSalt)
	navigationHandler := handlers.NewNavigationHandler(sessions)
	timelineHandler := handlers.NewTimelineHandler(deps.Fixtures, sessions)
	marketHandler := handlers.NewMarketHandler(deps.Fixtures, sessions)
	rumorHandler := handlers.NewRumorHandler(deps.Fixtures, sessions)
	votingHandler := handlers.NewVotingHandler(deps.Fixtures, sessions, cfg.SiteURL, deps.Metrics)
	leaderboardHandler := handlers.NewLeaderboardHandler(deps.Fixtures, sessions)
	predictionHandler := handlers.NewPredictionHandler(sessions, deps.Metrics)
	newsletterHandler := handlers.NewNewsletterHandler(sessions)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithMetrics(deps.Metrics, pattern, h)))
	}
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		if deps.Limiter == nil {
			return h
		}
		return deps.Limiter.Wrap(h)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics.Handler())
	}

	// Section navigation
	handle("GET /sections", navigationHandler.Sections)
	handle("POST /navigation/scroll", navigationHandler.Scroll)
	handle("POST /navigation/layout", navigationHandler.Layout)
	handle("POST /navigation/{id}", navigationHandler.Navigate)

	// Tariff timeline
	handle("GET /timeline", timelineHandler.List)
	handle("POST /timeline/{id}/toggle", timelineHandler.Toggle)
	handle("GET /timeline/{id}/source", timelineHandler.Source)

	// Market impact tracker
	handle("GET /market-events", marketHandler.List)
	handle("POST /market-events/sort/{field}", marketHandler.SortBy)
	handle("POST /market-events/page", marketHandler.Page)

	// Rumors
	handle("GET /rumors/upcoming", rumorHandler.ListUpcoming)
	handle("DELETE /rumors/upcoming/filters", rumorHandler.ClearFilters)
	handle("GET /rumors/upcoming/{id}/source", rumorHandler.Source)
	handle("GET /rumors/rumored", rumorHandler.ListRumored)

	// Voting zone
	handle("GET /votes", votingHandler.List)
	handle("POST /votes/{id}", limited(votingHandler.Cast))
	handle("GET /votes/{id}/share", votingHandler.Share)

	// Leaderboard
	handle("GET /leaderboard", leaderboardHandler.List)
	handle("POST /leaderboard/sort/{field}", leaderboardHandler.SortBy)

	// Prediction form
	handle("GET /predictions", predictionHandler.Status)
	handle("POST /predictions", limited(predictionHandler.Submit))
	handle("POST /predictions/reset", predictionHandler.Reset)

	// Footer newsletter signup
	handle("GET /newsletter", newsletterHandler.Status)
	handle("POST /newsletter", limited(newsletterHandler.Subscribe))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tariff-watch API v1"))
	})

	return mux
}
