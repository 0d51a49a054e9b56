// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/tariff-watch/cliparse"
	"github.com/danielhkuo/tariff-watch/models"
	tu "github.com/danielhkuo/tariff-watch/testutil"
)

func predictionStatus(t *testing.T, h *PredictionHandler, session map[string]string) models.PredictionStatusResponse {
	t.Helper()
	w := call(h.Status, tu.MakeRequest("GET", "/predictions", nil, session), nil)
	tu.AssertStatus(t, w, http.StatusOK)
	var resp models.PredictionStatusResponse
	tu.AssertJSON(t, w, &resp)
	return resp
}

func TestPredictions_RejectsInvalidInput(t *testing.T) {
	testCases := []struct {
		name   string
		req    models.PredictionRequest
		reason string
	}{
		{"missing date", models.PredictionRequest{Type: "tariff"}, "missing_date"},
		{"past date", models.PredictionRequest{TargetDate: "2000-01-01"}, "past_date"},
		{"today", models.PredictionRequest{TargetDate: time.Now().Format("2006-01-02")}, "past_date"},
		{"bad date format", models.PredictionRequest{TargetDate: "04/01/2030"}, "invalid"},
		{"unknown type", models.PredictionRequest{Type: "weather", TargetDate: "2099-01-01"}, "invalid"},
		{"unknown confidence", models.PredictionRequest{Confidence: "certain", TargetDate: "2099-01-01"}, "invalid"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			h := NewPredictionHandler(env.sessions, env.metrics)

			w := call(h.Submit, tu.MakeRequest("POST", "/predictions", tc.req, nil), nil)
			tu.AssertStatus(t, w, http.StatusUnprocessableEntity)

			var resp models.PredictionStatusResponse
			tu.AssertJSON(t, w, &resp)
			assert.False(t, resp.CanSubmit)
			assert.Equal(t, "idle", resp.State)
			assert.Nil(t, resp.Prediction)
			assert.NotEmpty(t, resp.Message)

			assert.Equal(t, "idle", predictionStatus(t, h, tu.SessionToken(w)).State)
			assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.PredictionsRejected.WithLabelValues(tc.reason)))
		})
	}
}

func TestPredictions_Lifecycle(t *testing.T) {
	env := newTestEnv(t, func(cfg *cliparse.Config) { cfg.SubmitDelay = 300 * time.Millisecond })
	h := NewPredictionHandler(env.sessions, env.metrics)

	target := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	req := models.PredictionRequest{TargetDate: target, Confidence: "high", Address: "8xH7...j9Kz"}

	w := call(h.Submit, tu.MakeRequest("POST", "/predictions", req, nil), nil)
	tu.AssertStatus(t, w, http.StatusAccepted)
	var resp models.PredictionStatusResponse
	tu.AssertJSON(t, w, &resp)
	assert.Equal(t, "pending", resp.State)
	assert.False(t, resp.CanSubmit)
	require.NotNil(t, resp.Prediction)
	assert.Equal(t, "tariff", resp.Prediction.Type)
	assert.Equal(t, target, resp.Prediction.TargetDate)
	assert.Equal(t, "100-500", resp.PotentialPoints)
	session := tu.SessionToken(w)

	// Double-click while pending
	w = call(h.Submit, tu.MakeRequest("POST", "/predictions", req, session), nil)
	tu.AssertStatus(t, w, http.StatusConflict)

	// Reset is refused until the round-trip completes
	w = call(h.Reset, tu.MakeRequest("POST", "/predictions/reset", nil, session), nil)
	tu.AssertStatus(t, w, http.StatusConflict)

	require.Eventually(t, func() bool {
		return predictionStatus(t, h, session).State == "submitted"
	}, 3*time.Second, 10*time.Millisecond)

	status := predictionStatus(t, h, session)
	assert.Regexp(t, regexp.MustCompile(`^PRD-\d{4}$`), status.PredictionID)
	assert.Equal(t, "Prediction Submitted!", status.Message)
	assert.False(t, status.CanSubmit)

	w = call(h.Submit, tu.MakeRequest("POST", "/predictions", req, session), nil)
	tu.AssertStatus(t, w, http.StatusConflict)

	w = call(h.Reset, tu.MakeRequest("POST", "/predictions/reset", nil, session), nil)
	tu.AssertStatus(t, w, http.StatusOK)
	resp = models.PredictionStatusResponse{}
	tu.AssertJSON(t, w, &resp)
	assert.Equal(t, "idle", resp.State)
	assert.True(t, resp.CanSubmit)
	assert.Nil(t, resp.Prediction)
	assert.Empty(t, resp.PredictionID)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.PredictionsAccepted))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.PredictionsRejected.WithLabelValues("busy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.PredictionsRejected.WithLabelValues("already_submitted")))
}

func TestPredictions_DefaultsApplied(t *testing.T) {
	env := newTestEnv(t)
	h := NewPredictionHandler(env.sessions, env.metrics)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	w := call(h.Submit, tu.MakeRequest("POST", "/predictions", models.PredictionRequest{TargetDate: tomorrow}, nil), nil)
	tu.AssertStatus(t, w, http.StatusAccepted)

	var resp models.PredictionStatusResponse
	tu.AssertJSON(t, w, &resp)
	require.NotNil(t, resp.Prediction)
	assert.Equal(t, "tariff", resp.Prediction.Type)
	assert.Equal(t, "medium", resp.Prediction.Confidence)
	assert.Equal(t, "50-250", resp.PotentialPoints)
}

func TestPredictions_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	h := NewPredictionHandler(env.sessions, env.metrics)

	req := tu.MakeRequest("POST", "/predictions", nil, nil)
	w := call(h.Submit, req, nil)
	tu.AssertStatus(t, w, http.StatusBadRequest)
}
