// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/tariff-watch/metrics"
	"github.com/danielhkuo/tariff-watch/middleware"
	"github.com/danielhkuo/tariff-watch/models"
	"github.com/danielhkuo/tariff-watch/submission"
)

const dateLayout = "2006-01-02"

type PredictionHandler struct {
	sessions *Sessions
	metrics  *metrics.Registry
}

func NewPredictionHandler(sessions *Sessions, m *metrics.Registry) *PredictionHandler {
	return &PredictionHandler{sessions: sessions, metrics: m}
}

// Status handles GET /predictions
func (h *PredictionHandler) Status(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)
	middleware.JSONResponse(w, http.StatusOK, statusResponse(sess.Prediction.Snapshot()))
}

// Submit handles POST /predictions. Accepted predictions answer 202 in
// the pending state; the transition to submitted happens after the
// configured delay.
func (h *PredictionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.PredictionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sess := h.sessions.Resolve(w, r)

	payload, err := parsePrediction(req)
	if err == nil {
		err = sess.Prediction.Submit(payload)
	}
	if err != nil {
		h.reject(w, sess.Prediction.Snapshot(), err)
		return
	}

	if h.metrics != nil {
		h.metrics.PredictionsAccepted.Inc()
	}
	slog.Info("prediction pending", "session", sess.ID, "type", payload.Type, "confidence", payload.Confidence)

	middleware.JSONResponse(w, http.StatusAccepted, statusResponse(sess.Prediction.Snapshot()))
}

// Reset handles POST /predictions/reset ("Make Another Prediction")
func (h *PredictionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Resolve(w, r)

	if err := sess.Prediction.Reset(); err != nil {
		resp := statusResponse(sess.Prediction.Snapshot())
		resp.Message = err.Error()
		middleware.JSONResponse(w, http.StatusConflict, resp)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, statusResponse(sess.Prediction.Snapshot()))
}

// reject reports a refused submission. Invalid form input answers 422
// with the submit affordance disabled; a submission that is already in
// flight or done answers 409.
func (h *PredictionHandler) reject(w http.ResponseWriter, snap submission.Snapshot, err error) {
	resp := statusResponse(snap)
	resp.Message = err.Error()

	status := http.StatusConflict
	reason := "busy"
	switch {
	case errors.Is(err, submission.ErrMissingDate):
		status, reason = http.StatusUnprocessableEntity, "missing_date"
	case errors.Is(err, submission.ErrPastDate):
		status, reason = http.StatusUnprocessableEntity, "past_date"
	case errors.Is(err, submission.ErrInvalidPayload):
		status, reason = http.StatusUnprocessableEntity, "invalid"
	case errors.Is(err, submission.ErrNotIdle):
		reason = "already_submitted"
	case errors.Is(err, submission.ErrClosed):
		status, reason = http.StatusGone, "closed"
	}
	if status == http.StatusUnprocessableEntity {
		resp.CanSubmit = false
	}

	if h.metrics != nil {
		h.metrics.PredictionsRejected.WithLabelValues(reason).Inc()
	}
	middleware.JSONResponse(w, status, resp)
}

func parsePrediction(req models.PredictionRequest) (submission.Payload, error) {
	p := submission.Payload{
		Type:       submission.PredictionType(req.Type),
		Confidence: submission.Confidence(req.Confidence),
		Address:    req.Address,
	}
	if req.TargetDate == "" {
		return p, submission.ErrMissingDate
	}
	date, err := time.ParseInLocation(dateLayout, req.TargetDate, time.Local)
	if err != nil {
		return p, fmt.Errorf("%w: target date must be YYYY-MM-DD: %v", submission.ErrInvalidPayload, err)
	}
	p.TargetDate = date
	return p, nil
}

func statusResponse(snap submission.Snapshot) models.PredictionStatusResponse {
	resp := models.PredictionStatusResponse{
		State:     string(snap.State),
		CanSubmit: snap.CanSubmit(),
	}
	if snap.Payload != nil {
		resp.Prediction = &models.PredictionRequest{
			Type:       string(snap.Payload.Type),
			TargetDate: snap.Payload.TargetDate.Format(dateLayout),
			Confidence: string(snap.Payload.Confidence),
			Address:    snap.Payload.Address,
		}
		resp.PotentialPoints = snap.Payload.Confidence.PotentialPoints()
	}
	if snap.Receipt != nil {
		resp.PredictionID = snap.Receipt.ID
		resp.PotentialPoints = snap.Receipt.PotentialPoints
		resp.Message = "Prediction Submitted!"
	}
	return resp
}
