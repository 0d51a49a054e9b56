// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/tariff-watch/middleware"
	"github.com/danielhkuo/tariff-watch/models"
	"github.com/danielhkuo/tariff-watch/navigation"
	"github.com/danielhkuo/tariff-watch/session"
)

type NavigationHandler struct {
	sessions *Sessions
}

func NewNavigationHandler(sessions *Sessions) *NavigationHandler {
	return &NavigationHandler{sessions: sessions}
}

// Sections handles GET /sections
func (h *NavigationHandler) Sections(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	var resp models.NavigationResponse
	sess.Do(func(s *session.Session) { resp = navigationView(s.Nav) })
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Scroll handles POST /navigation/scroll
func (h *NavigationHandler) Scroll(w http.ResponseWriter, r *http.Request) {
	var req models.ScrollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sess := h.sessions.Resolve(w, r)
	var resp models.NavigationResponse
	sess.Do(func(s *session.Session) {
		s.Nav.Update(req.ScrollY)
		resp = navigationView(s.Nav)
	})
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Layout handles POST /navigation/layout. Clients report the measured
// offsets of rendered sections; ids the tracker does not know are
// ignored.
func (h *NavigationHandler) Layout(w http.ResponseWriter, r *http.Request) {
	var req models.LayoutRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tops := make(map[string]float64, len(req.Sections))
	for _, sec := range req.Sections {
		tops[sec.ID] = sec.Top
	}

	sess := h.sessions.Resolve(w, r)
	var resp models.NavigationResponse
	sess.Do(func(s *session.Session) {
		s.Nav.Layout(tops)
		resp = navigationView(s.Nav)
	})
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Navigate handles POST /navigation/{id}. The section becomes active
// right away and its anchor is returned for the client to scroll to.
func (h *NavigationHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	sess := h.sessions.Resolve(w, r)
	var (
		resp  models.NavigationResponse
		found bool
	)
	sess.Do(func(s *session.Session) {
		var target navigation.Anchor
		target, found = s.Nav.Navigate(id)
		resp = navigationView(s.Nav)
		if found {
			sec := sectionOf(target)
			resp.Target = &sec
		}
	})

	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Section not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

func navigationView(t *navigation.Tracker) models.NavigationResponse {
	anchors := t.Anchors()
	sections := make([]models.Section, 0, len(anchors))
	for _, a := range anchors {
		sections = append(sections, sectionOf(a))
	}
	return models.NavigationResponse{
		Sections: sections,
		Active:   t.Active(),
		Scrolled: t.Scrolled(),
	}
}

func sectionOf(a navigation.Anchor) models.Section {
	return models.Section{ID: a.ID, Label: a.Label, Top: a.Top}
}
