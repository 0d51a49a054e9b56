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

var timelineFields = query.Fields[models.TimelineEntry]{
	Category: func(e models.TimelineEntry) []string { return e.Countries },
}

func timelineCountries(e models.TimelineEntry) []string { return e.Countries }

type TimelineHandler struct {
	data     *fixtures.Store
	sessions *Sessions
}

func NewTimelineHandler(data *fixtures.Store, sessions *Sessions) *TimelineHandler {
	return &TimelineHandler{data: data, sessions: sessions}
}

// List handles GET /timeline. A country parameter selects a chip; an
// empty value or "all" clears it.
func (h *TimelineHandler) List(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	country, set := filterParam(r, "country")

	var resp models.TimelineResponse
	sess.Do(func(s *session.Session) {
		if set {
			s.Timeline.Country = country
		}
		resp = h.view(s)
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Toggle handles POST /timeline/{id}/toggle
func (h *TimelineHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a number")
		return
	}
	if _, ok := h.data.TimelineEntry(id); !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Timeline entry not found")
		return
	}

	sess := h.sessions.Resolve(w, r)
	var resp models.TimelineResponse
	sess.Do(func(s *session.Session) {
		s.Timeline.Toggle(id)
		resp = h.view(s)
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Source handles GET /timeline/{id}/source
func (h *TimelineHandler) Source(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a number")
		return
	}
	entry, ok := h.data.TimelineEntry(id)
	if !ok || !redirectSource(w, r, entry.Source) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Source not found")
	}
}

func (h *TimelineHandler) view(s *session.Session) models.TimelineResponse {
	all := h.data.Timeline()
	entries := query.Filter(all, query.FilterState{Category: s.Timeline.Country}, timelineFields)
	return models.TimelineResponse{
		Entries:   entries,
		Countries: query.Distinct(all, timelineCountries),
		Country:   s.Timeline.Country,
		Expanded:  s.Timeline.Expanded,
		Empty:     len(entries) == 0,
	}
}
