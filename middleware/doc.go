// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Metrics

Record handler latency under the route pattern:

	middleware.WithMetrics(reg, "POST /votes/{id}", handler)

# Rate Limiting

Vote and prediction writes go through a per-client token bucket:

	limiter := middleware.NewRateLimiter(cfg.VoteRate, cfg.VoteBurst, cfg.SessionSalt, reg)
	mux.HandleFunc("POST /votes/{id}", limiter.Wrap(handler))

Clients are keyed by a salted hash of GetClientIP. Rejected requests get
429 with Retry-After.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, DELETE, OPTIONS with headers
Content-Type, X-Session-Token.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
