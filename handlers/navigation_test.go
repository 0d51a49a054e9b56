// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/tariff-watch/models"
	"github.com/danielhkuo/tariff-watch/testutil"
)

func TestNavigation_ScrollAndNavigate(t *testing.T) {
	env := newTestEnv(t)
	h := NewNavigationHandler(env.sessions)

	w := call(h.Sections, testutil.MakeRequest("GET", "/sections", nil, nil), nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.NavigationResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Len(t, resp.Sections, 8)
	assert.Equal(t, "hero", resp.Active)
	assert.False(t, resp.Scrolled)
	session := testutil.SessionToken(w)

	scroll := func(y float64) models.NavigationResponse {
		w := call(h.Scroll, testutil.MakeRequest("POST", "/navigation/scroll", models.ScrollRequest{ScrollY: y}, session), nil)
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.NavigationResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	resp = scroll(2300)
	assert.Equal(t, "upcoming-tariff-rumors", resp.Active)
	assert.True(t, resp.Scrolled)

	resp = scroll(2299)
	assert.Equal(t, "trump-tariff-timeline", resp.Active)

	resp = scroll(5)
	assert.Equal(t, "hero", resp.Active)
	assert.False(t, resp.Scrolled)

	w = call(h.Navigate, testutil.MakeRequest("POST", "/navigation/leaderboard", nil, session), map[string]string{"id": "leaderboard"})
	testutil.AssertStatus(t, w, http.StatusOK)
	resp = models.NavigationResponse{}
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "leaderboard", resp.Active)
	require.NotNil(t, resp.Target)
	assert.Equal(t, 7300.0, resp.Target.Top)

	w = call(h.Navigate, testutil.MakeRequest("POST", "/navigation/footer", nil, session), map[string]string{"id": "footer"})
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestNavigation_Layout(t *testing.T) {
	env := newTestEnv(t)
	h := NewNavigationHandler(env.sessions)

	layout := models.LayoutRequest{Sections: []models.Section{
		{ID: "predict-win", Top: 1000},
		{ID: "unknown", Top: 10},
	}}
	w := call(h.Layout, testutil.MakeRequest("POST", "/navigation/layout", layout, nil), nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.NavigationResponse
	testutil.AssertJSON(t, w, &resp)
	require.Len(t, resp.Sections, 8)
	assert.Equal(t, "predict-win", resp.Sections[6].ID, "sections keep document order")
	assert.Equal(t, 1000.0, resp.Sections[6].Top)
	session := testutil.SessionToken(w)

	w = call(h.Scroll, testutil.MakeRequest("POST", "/navigation/scroll", models.ScrollRequest{ScrollY: 950}, session), nil)
	resp = models.NavigationResponse{}
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "predict-win", resp.Active)
}
