// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/danielhkuo/tariff-watch/auth"
	"github.com/danielhkuo/tariff-watch/metrics"
)

// RateLimiter keeps one token bucket per client. Clients are keyed by a
// salted hash of their IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	salt    string
	idle    time.Duration
	metrics *metrics.Registry
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perSecond float64, burst int, salt string, m *metrics.Registry) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*client),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		salt:    salt,
		idle:    10 * time.Minute,
		metrics: m,
	}
}

// Allow reports whether the request's client still has a token
func (rl *RateLimiter) Allow(r *http.Request) bool {
	key := auth.HashIP(GetClientIP(r), rl.salt)
	now := time.Now()

	rl.mu.Lock()
	c, ok := rl.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	rl.mu.Unlock()

	return c.limiter.AllowN(now, 1)
}

// Prune forgets clients idle for longer than the idle window
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.idle)
	n := 0
	for key, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
			n++
		}
	}
	return n
}

// Run prunes idle clients on every interval until ctx is done
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rl.Prune()
		}
	}
}

// Wrap rejects requests over the limit with 429
func (rl *RateLimiter) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(r) {
			if rl.metrics != nil {
				rl.metrics.RateLimited.Inc()
			}
			w.Header().Set("Retry-After", "1")
			ErrorResponse(w, http.StatusTooManyRequests, "Slow down")
			return
		}
		next(w, r)
	}
}
