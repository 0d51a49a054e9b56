// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/tariff-watch/models"
	"github.com/danielhkuo/tariff-watch/testutil"
)

func TestNewsletter_RejectsWithoutStateChange(t *testing.T) {
	env := newTestEnv(t)
	h := NewNewsletterHandler(env.sessions)

	w := call(h.Status, testutil.MakeRequest("GET", "/newsletter", nil, nil), nil)
	session := testutil.SessionToken(w)

	for _, email := range []string{"", "  ", "not-an-email"} {
		w = call(h.Subscribe, testutil.MakeRequest("POST", "/newsletter", models.NewsletterRequest{Email: email}, session), nil)
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	}

	w = call(h.Status, testutil.MakeRequest("GET", "/newsletter", nil, session), nil)
	var resp models.NewsletterResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, models.NewsletterResponse{}, resp)
}

func TestNewsletter_SubscribeOncePerSession(t *testing.T) {
	env := newTestEnv(t)
	h := NewNewsletterHandler(env.sessions)

	w := call(h.Subscribe, testutil.MakeRequest("POST", "/newsletter", models.NewsletterRequest{Email: "trader@example.com"}, nil), nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.NewsletterResponse
	testutil.AssertJSON(t, w, &resp)
	assert.True(t, resp.Subscribed)
	assert.Equal(t, "trader@example.com", resp.Email)
	assert.Equal(t, "Thanks for subscribing!", resp.Message)
	session := testutil.SessionToken(w)

	w = call(h.Subscribe, testutil.MakeRequest("POST", "/newsletter", models.NewsletterRequest{Email: "other@example.com"}, session), nil)
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = call(h.Status, testutil.MakeRequest("GET", "/newsletter", nil, session), nil)
	resp = models.NewsletterResponse{}
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "trader@example.com", resp.Email)

	// Another visitor starts unsubscribed
	w = call(h.Status, testutil.MakeRequest("GET", "/newsletter", nil, nil), nil)
	resp = models.NewsletterResponse{}
	testutil.AssertJSON(t, w, &resp)
	assert.False(t, resp.Subscribed)
}

func TestNewsletter_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	h := NewNewsletterHandler(env.sessions)

	req := httptest.NewRequest("POST", "/newsletter", strings.NewReader(`{"email":`))
	w := call(h.Subscribe, req, nil)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
