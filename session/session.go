// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/tariff-watch/auth"
	"github.com/danielhkuo/tariff-watch/fixtures"
	"github.com/danielhkuo/tariff-watch/metrics"
	"github.com/danielhkuo/tariff-watch/models"
	"github.com/danielhkuo/tariff-watch/navigation"
	"github.com/danielhkuo/tariff-watch/query"
	"github.com/danielhkuo/tariff-watch/submission"
	"github.com/danielhkuo/tariff-watch/tally"
)

// Seed is what every new session starts from
type Seed struct {
	Tallies         []tally.Tally
	Anchors         []navigation.Anchor
	ScrollThreshold float64
	SubmitDelay     time.Duration
	// OnSubmitted runs when a prediction reaches the submitted state
	OnSubmitted func(sessionID string, r submission.Receipt)
}

// SeedFromFixtures takes the starting tallies from the voting rumors and
// the anchors from the page sections. Timing fields are left to the
// caller.
func SeedFromFixtures(data *fixtures.Store) Seed {
	rumors := data.VoteRumors()
	tallies := make([]tally.Tally, 0, len(rumors))
	for _, r := range rumors {
		tallies = append(tallies, tally.Tally{ItemID: r.ID, Yes: r.YesVotes, No: r.NoVotes})
	}

	sections := data.Sections()
	anchors := make([]navigation.Anchor, 0, len(sections))
	for _, sec := range sections {
		anchors = append(anchors, navigation.Anchor{ID: sec.ID, Label: sec.Label, Top: sec.Top})
	}
	return Seed{Tallies: tallies, Anchors: anchors}
}

// Session owns every widget state for one visitor. Widget fields must
// only be touched inside Do; the prediction simulator has its own lock
// because its timer fires outside any request.
type Session struct {
	ID string

	mu          sync.Mutex
	Timeline    TimelineState
	Rumors      query.FilterState
	Market      MarketState
	Leaderboard LeaderboardState
	Voting      VotingState
	Newsletter  NewsletterState
	Nav         *navigation.Tracker

	Prediction *submission.Simulator

	lastSeen time.Time
}

// New builds a session in its initial state
func New(id string, seed Seed, now time.Time) *Session {
	s := &Session{
		ID: id,
		Market: MarketState{
			View: models.ViewCrypto,
			Sort: query.SortState{Field: "date", Direction: query.Ascending},
		},
		Leaderboard: LeaderboardState{
			Sort:   query.SortState{Field: "rank", Direction: query.Ascending},
			Period: models.PeriodAllTime,
		},
		Voting:   VotingState{Board: tally.NewBoard(seed.Tallies)},
		Nav:      navigation.NewTracker(seed.Anchors, seed.ScrollThreshold),
		lastSeen: now,
	}
	if items := s.Voting.Board.Items(); len(items) > 0 {
		s.Voting.ActiveTab = items[0]
	}

	var opts []submission.Option
	if seed.OnSubmitted != nil {
		cb := seed.OnSubmitted
		opts = append(opts, submission.OnSubmitted(func(r submission.Receipt) { cb(id, r) }))
	}
	s.Prediction = submission.New(seed.SubmitDelay, opts...)
	return s
}

// Do runs fn with exclusive access to the widget state. Interactions on
// one session never interleave.
func (s *Session) Do(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// Close tears the session down and cancels its pending timer
func (s *Session) Close() {
	s.Prediction.Close()
}

// Store keeps sessions in memory. Nothing is persisted: a restart or an
// idle timeout forgets the visitor's votes and predictions.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	seed     Seed
	ttl      time.Duration
	now      func() time.Time
	metrics  *metrics.Registry
}

func NewStore(seed Seed, ttl time.Duration, m *metrics.Registry) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		seed:     seed,
		ttl:      ttl,
		now:      time.Now,
		metrics:  m,
	}
}

// Get returns a live session and marks it as recently used. A session
// idle past the TTL is dropped even if no sweep has run yet.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	if !ok {
		st.mu.Unlock()
		return nil, false
	}
	now := st.now()
	if s.lastSeen.Before(now.Add(-st.ttl)) {
		delete(st.sessions, id)
		st.observe()
		st.mu.Unlock()

		s.Close()
		if st.metrics != nil {
			st.metrics.SessionsExpired.Inc()
		}
		return nil, false
	}
	s.lastSeen = now
	st.mu.Unlock()
	return s, true
}

// Create starts a new session with a random id
func (st *Store) Create() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := New(auth.NewSessionID(), st.seed, st.now())
	st.sessions[s.ID] = s
	st.observe()
	return s
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep closes and drops sessions idle for longer than the TTL
func (st *Store) Sweep() int {
	st.mu.Lock()
	cutoff := st.now().Add(-st.ttl)
	var expired []*Session
	for id, s := range st.sessions {
		if s.lastSeen.Before(cutoff) {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.observe()
	st.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	if st.metrics != nil {
		st.metrics.SessionsExpired.Add(float64(len(expired)))
	}
	return len(expired)
}

// Run sweeps on every interval until ctx is done, then closes all
// remaining sessions
func (st *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			st.Close()
			return nil
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				slog.Info("expired sessions", "count", n, "remaining", st.Len())
			}
		}
	}
}

// Close tears down every session
func (st *Store) Close() {
	st.mu.Lock()
	all := st.sessions
	st.sessions = make(map[string]*Session)
	st.observe()
	st.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
}

// observe must be called with st.mu held
func (st *Store) observe() {
	if st.metrics != nil {
		st.metrics.ActiveSessions.Set(float64(len(st.sessions)))
	}
}
