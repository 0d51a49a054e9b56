// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/tariff-watch/fixtures"
	"github.com/danielhkuo/tariff-watch/metrics"
	"github.com/danielhkuo/tariff-watch/middleware"
	"github.com/danielhkuo/tariff-watch/models"
	"github.com/danielhkuo/tariff-watch/session"
	"github.com/danielhkuo/tariff-watch/share"
	"github.com/danielhkuo/tariff-watch/tally"
)

const (
	hintVoted  = "Thank you for voting!"
	hintNotYet = "Your vote is anonymous and cannot be changed"
)

type VotingHandler struct {
	data     *fixtures.Store
	sessions *Sessions
	siteURL  string
	metrics  *metrics.Registry
}

func NewVotingHandler(data *fixtures.Store, sessions *Sessions, siteURL string, m *metrics.Registry) *VotingHandler {
	return &VotingHandler{data: data, sessions: sessions, siteURL: siteURL, metrics: m}
}

// List handles GET /votes. An optional tab parameter opens a rumor tab.
func (h *VotingHandler) List(w http.ResponseWriter, r *http.Request) {
	var tab *int
	if v := r.URL.Query().Get("tab"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "tab must be a number")
			return
		}
		if _, ok := h.data.VoteRumor(id); !ok {
			middleware.ErrorResponse(w, http.StatusNotFound, "Rumor not found")
			return
		}
		tab = &id
	}

	sess := h.sessions.Resolve(w, r)
	var resp models.VotingZoneResponse
	sess.Do(func(s *session.Session) {
		if tab != nil {
			s.Voting.ActiveTab = *tab
		}
		resp = models.VotingZoneResponse{
			Rumors:    h.data.VoteRumors(),
			Tallies:   make([]models.TallyView, 0, len(s.Voting.Board.Items())),
			ActiveTab: s.Voting.ActiveTab,
		}
		for _, id := range s.Voting.Board.Items() {
			resp.Tallies = append(resp.Tallies, tallyView(s.Voting.Board, id))
		}
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Cast handles POST /votes/{id}. A second vote on the same rumor is
// ignored and reported with accepted=false.
func (h *VotingHandler) Cast(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a number")
		return
	}
	if _, ok := h.data.VoteRumor(id); !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Rumor not found")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	choice, ok := tally.ParseChoice(req.Choice)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "choice must be yes or no")
		return
	}

	sess := h.sessions.Resolve(w, r)
	var resp models.VoteResponse
	sess.Do(func(s *session.Session) {
		s.Voting.Board, resp.Accepted = s.Voting.Board.CastVote(id, choice)
		s.Voting.ActiveTab = id
		resp.Tally = tallyView(s.Voting.Board, id)
	})

	if h.metrics != nil {
		if resp.Accepted {
			h.metrics.VotesCast.WithLabelValues(string(choice)).Inc()
		} else {
			h.metrics.VotesIgnored.Inc()
		}
	}
	if resp.Accepted {
		slog.Info("vote cast", "session", sess.ID, "rumor_id", id, "choice", choice)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Share handles GET /votes/{id}/share. The client copies the text; a
// clipboard failure on its side changes nothing here.
func (h *VotingHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a number")
		return
	}
	rumor, ok := h.data.VoteRumor(id)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Rumor not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ShareResponse{Text: share.Text(rumor, h.siteURL)})
}

func tallyView(b tally.Board, id int) models.TallyView {
	t, _ := b.Tally(id)
	yes, no := t.Percentages()
	v := models.TallyView{
		RumorID:       id,
		Yes:           t.Yes,
		No:            t.No,
		YesPercentage: yes,
		NoPercentage:  no,
		UserVote:      string(b.Ledger().Choice(id)),
		Summary:       share.VoteSummary(t.Yes, t.No, yes, no),
		Hint:          hintNotYet,
	}
	if v.UserVote != "" {
		v.Hint = hintVoted
	}
	return v
}
