// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/tariff-watch/middleware"
	"github.com/danielhkuo/tariff-watch/models"
	"github.com/danielhkuo/tariff-watch/session"
)

const subscribedMessage = "Thanks for subscribing!"

type NewsletterHandler struct {
	sessions *Sessions
}

func NewNewsletterHandler(sessions *Sessions) *NewsletterHandler {
	return &NewsletterHandler{sessions: sessions}
}

// Status handles GET /newsletter
func (h *NewsletterHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	var resp models.NewsletterResponse
	sess.Do(func(s *session.Session) {
		resp = newsletterView(s.Newsletter)
	})

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Subscribe handles POST /newsletter
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.NewsletterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sess := h.sessions.Resolve(w, r)
	var (
		resp models.NewsletterResponse
		err  error
	)
	sess.Do(func(s *session.Session) {
		err = s.Newsletter.Subscribe(req.Email)
		resp = newsletterView(s.Newsletter)
	})

	switch {
	case errors.Is(err, session.ErrAlreadySubscribed):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	slog.Info("newsletter subscription", "session", sess.ID)
	middleware.JSONResponse(w, http.StatusOK, resp)
}

func newsletterView(n session.NewsletterState) models.NewsletterResponse {
	resp := models.NewsletterResponse{Email: n.Email, Subscribed: n.Subscribed}
	if n.Subscribed {
		resp.Message = subscribedMessage
	}
	return resp
}
