// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/tariff-watch/fixtures"
	"github.com/danielhkuo/tariff-watch/middleware"
	"github.com/danielhkuo/tariff-watch/models"
	"github.com/danielhkuo/tariff-watch/query"
	"github.com/danielhkuo/tariff-watch/session"
)

var leaderboardFields = query.Fields[models.LeaderboardEntry]{
	Text: func(e models.LeaderboardEntry) []string { return []string{e.Address} },
}

var leaderboardKeys = query.Keys[models.LeaderboardEntry]{
	"rank":               {Number: func(e models.LeaderboardEntry) float64 { return float64(e.Rank) }},
	"accuracy":           {Number: func(e models.LeaderboardEntry) float64 { return float64(e.Accuracy) }},
	"correctPredictions": {Number: func(e models.LeaderboardEntry) float64 { return float64(e.CorrectPredictions) }},
	"streak":             {Number: func(e models.LeaderboardEntry) float64 { return float64(e.Streak) }},
}

type LeaderboardHandler struct {
	data     *fixtures.Store
	sessions *Sessions
}

func NewLeaderboardHandler(data *fixtures.Store, sessions *Sessions) *LeaderboardHandler {
	return &LeaderboardHandler{data: data, sessions: sessions}
}

// List handles GET /leaderboard. q replaces the address search (an empty
// q clears it) and period switches the tab.
func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	period := q.Get("period")
	if period != "" && !session.ValidPeriod(period) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "period must be all-time, weekly or monthly")
		return
	}

	sess := h.sessions.Resolve(w, r)
	var resp models.LeaderboardResponse
	sess.Do(func(s *session.Session) {
		if q.Has("q") {
			s.Leaderboard.Search = q.Get("q")
		}
		if period != "" {
			s.Leaderboard.Period = period
		}
		resp = h.view(s)
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SortBy handles POST /leaderboard/sort/{field}. Clicking the current
// column flips the direction; a new column starts ascending.
func (h *LeaderboardHandler) SortBy(w http.ResponseWriter, r *http.Request) {
	field := r.PathValue("field")

	sess := h.sessions.Resolve(w, r)
	var resp models.LeaderboardResponse
	sess.Do(func(s *session.Session) {
		s.Leaderboard.Sort = leaderboardKeys.Normalize(s.Leaderboard.Sort.Toggle(field), "rank")
		resp = h.view(s)
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// The fixture data has a single ranking; the period only changes the
// caption
func (h *LeaderboardHandler) view(s *session.Session) models.LeaderboardResponse {
	entries := query.Filter(h.data.Leaderboard(), query.FilterState{SearchText: s.Leaderboard.Search}, leaderboardFields)
	entries = query.Sort(entries, s.Leaderboard.Sort, leaderboardKeys)

	rows := make([]models.LeaderboardRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, models.LeaderboardRow{LeaderboardEntry: e, Medal: e.Medal()})
	}

	return models.LeaderboardResponse{
		Entries:     rows,
		Search:      s.Leaderboard.Search,
		Period:      s.Leaderboard.Period,
		Description: session.PeriodDescription(s.Leaderboard.Period),
		Sort:        models.SortEcho{Field: s.Leaderboard.Sort.Field, Direction: string(s.Leaderboard.Sort.Direction)},
		Empty:       len(rows) == 0,
	}
}
