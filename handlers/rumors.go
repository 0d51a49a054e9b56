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

var rumorFields = query.Fields[models.UpcomingRumor]{
	Text: func(r models.UpcomingRumor) []string {
		return append([]string{r.Rumor}, r.Targets...)
	},
	Category: func(r models.UpcomingRumor) []string { return []string{r.Category} },
	Impact:   func(r models.UpcomingRumor) string { return r.Impact },
}

var rumoredKeys = query.Keys[models.RumoredTariff]{
	"trend_score": {Number: func(t models.RumoredTariff) float64 { return t.TrendScore }},
	"confidence":  {Number: func(t models.RumoredTariff) float64 { return float64(t.Confidence) }},
}

type RumorHandler struct {
	data     *fixtures.Store
	sessions *Sessions
}

func NewRumorHandler(data *fixtures.Store, sessions *Sessions) *RumorHandler {
	return &RumorHandler{data: data, sessions: sessions}
}

// ListUpcoming handles GET /rumors/upcoming. Present parameters replace
// the matching predicate: q for the search box, category and impact for
// the dropdowns.
func (h *RumorHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, categorySet := filterParam(r, "category")
	impact, impactSet := filterParam(r, "impact")

	sess := h.sessions.Resolve(w, r)
	var resp models.UpcomingRumorsResponse
	sess.Do(func(s *session.Session) {
		if q.Has("q") {
			s.Rumors.SearchText = q.Get("q")
		}
		if categorySet {
			s.Rumors.Category = category
		}
		if impactSet {
			s.Rumors.Impact = impact
		}
		resp = h.view(s)
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// ClearFilters handles DELETE /rumors/upcoming/filters
func (h *RumorHandler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	var resp models.UpcomingRumorsResponse
	sess.Do(func(s *session.Session) {
		s.Rumors = query.FilterState{}
		resp = h.view(s)
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Source handles GET /rumors/upcoming/{id}/source
func (h *RumorHandler) Source(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a number")
		return
	}
	rumor, ok := h.data.UpcomingRumor(id)
	if !ok || !redirectSource(w, r, rumor.Source) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Source not found")
	}
}

// ListRumored handles GET /rumors/rumored, hottest first
func (h *RumorHandler) ListRumored(w http.ResponseWriter, r *http.Request) {
	tariffs := query.Sort(h.data.RumoredTariffs(),
		query.SortState{Field: "trend_score", Direction: query.Descending}, rumoredKeys)
	middleware.JSONResponse(w, http.StatusOK, models.RumoredTariffsResponse{Tariffs: tariffs})
}

func (h *RumorHandler) view(s *session.Session) models.UpcomingRumorsResponse {
	all := h.data.UpcomingRumors()
	rumors := query.Filter(all, s.Rumors, rumorFields)

	return models.UpcomingRumorsResponse{
		Rumors:     rumors,
		Total:      len(all),
		Categories: query.Distinct(all, rumorFields.Category),
		Impacts: query.Distinct(all, func(r models.UpcomingRumor) []string {
			return []string{r.Impact}
		}),
		Filters: models.FilterEcho{
			Search:   s.Rumors.SearchText,
			Category: s.Rumors.Category,
			Impact:   s.Rumors.Impact,
		},
		Filtered: s.Rumors.Active(),
		Empty:    len(rumors) == 0,
	}
}
