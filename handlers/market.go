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

var marketFields = query.Fields[models.MarketEvent]{
	Category: func(e models.MarketEvent) []string { return []string{e.Category} },
}

// marketKeys depends on the view because "impact" sorts by the column
// currently shown
func marketKeys(view string) query.Keys[models.MarketEvent] {
	return query.Keys[models.MarketEvent]{
		"date":    {Number: func(e models.MarketEvent) float64 { return float64(e.Date.Unix()) }},
		"impact":  {Number: func(e models.MarketEvent) float64 { return e.ImpactFor(view) }},
		"country": {Text: func(e models.MarketEvent) string { return e.Country }},
	}
}

type MarketHandler struct {
	data     *fixtures.Store
	sessions *Sessions
}

func NewMarketHandler(data *fixtures.Store, sessions *Sessions) *MarketHandler {
	return &MarketHandler{data: data, sessions: sessions}
}

// List handles GET /market-events. Query parameters update the widget
// state before it is rendered: view, category, and sort with an optional
// dir (ascending when absent). Repeating a request changes nothing.
func (h *MarketHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := q.Get("view")
	if view != "" && view != models.ViewCrypto && view != models.ViewStock {
		middleware.ErrorResponse(w, http.StatusBadRequest, "view must be crypto or stock")
		return
	}
	category, categorySet := filterParam(r, "category")

	sess := h.sessions.Resolve(w, r)
	var resp models.MarketEventsResponse
	sess.Do(func(s *session.Session) {
		if view != "" {
			s.Market.View = view
		}
		if categorySet {
			s.Market.Category = category
		}
		if field := q.Get("sort"); field != "" {
			sort := query.SortState{Field: field, Direction: query.ParseDirection(q.Get("dir"))}
			s.Market.Sort = marketKeys(s.Market.View).Normalize(sort, "date")
		}
		resp = h.view(s)
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// SortBy handles POST /market-events/sort/{field}, a column header click
func (h *MarketHandler) SortBy(w http.ResponseWriter, r *http.Request) {
	field := r.PathValue("field")

	sess := h.sessions.Resolve(w, r)
	var resp models.MarketEventsResponse
	sess.Do(func(s *session.Session) {
		s.Market.Sort = marketKeys(s.Market.View).Normalize(s.Market.Sort.Toggle(field), "date")
		resp = h.view(s)
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Page handles POST /market-events/page
func (h *MarketHandler) Page(w http.ResponseWriter, r *http.Request) {
	var req models.PageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Direction != "left" && req.Direction != "right" {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "direction must be left or right")
		return
	}

	sess := h.sessions.Resolve(w, r)
	var resp models.MarketEventsResponse
	sess.Do(func(s *session.Session) {
		s.Market.Page(req.Direction)
		resp = h.view(s)
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

func (h *MarketHandler) view(s *session.Session) models.MarketEventsResponse {
	all := h.data.MarketEvents()
	events := query.Filter(all, query.FilterState{Category: s.Market.Category}, marketFields)
	events = query.Sort(events, s.Market.Sort, marketKeys(s.Market.View))

	return models.MarketEventsResponse{
		Events:     events,
		Categories: query.Distinct(all, marketFields.Category),
		View:       s.Market.View,
		Sort:       models.SortEcho{Field: s.Market.Sort.Field, Direction: string(s.Market.Sort.Direction)},
		Offset:     s.Market.Offset,
	}
}
