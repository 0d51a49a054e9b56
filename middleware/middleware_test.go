// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/tariff-watch/metrics"
	"github.com/danielhkuo/tariff-watch/models"
)

func TestWithLogging_PreservesResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"Accepted", http.StatusAccepted, `{"state":"pending"}`},
		{"Unprocessable", http.StatusUnprocessableEntity, `{"can_submit":false}`},
		{"NotFound", http.StatusNotFound, "not found"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			w := httptest.NewRecorder()
			handler(w, httptest.NewRequest("POST", "/votes/1", nil))

			assert.True(t, called)
			assert.Equal(t, tc.statusCode, w.Code)
			assert.Equal(t, tc.body, w.Body.String())
		})
	}
}

func TestWithMetrics_ObservesRoute(t *testing.T) {
	m := metrics.New()
	handler := WithMetrics(m, "/votes/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler(httptest.NewRecorder(), httptest.NewRequest("POST", "/votes/2", nil))
	handler(httptest.NewRecorder(), httptest.NewRequest("POST", "/votes/3", nil))

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestWithMetrics_NilRegistry(t *testing.T) {
	called := false
	handler := WithMetrics(nil, "/health", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))
	assert.True(t, called)
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "simple map",
			statusCode: http.StatusOK,
			data:       map[string]string{"message": "hello"},
			expected:   `{"message":"hello"}`,
		},
		{
			name:       "share text",
			statusCode: http.StatusOK,
			data:       models.ShareResponse{Text: "Vote now"},
			expected:   `{"text":"Vote now"}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Error: "Bad Request", Message: "missing field"},
			expected:   `{"error":"Bad Request","message":"missing field"}`,
		},
		{
			name:       "array data",
			statusCode: http.StatusOK,
			data:       []string{"a", "b", "c"},
			expected:   `["a","b","c"]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSONResponse(w, tc.statusCode, tc.data)

			assert.Equal(t, tc.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tc.expected, strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "Rumor not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not Found","message":"Rumor not found"}`, w.Body.String())
}

func TestParseJSONBody(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantErr bool
		want    string
	}{
		{"valid", `{"choice":"yes"}`, false, "yes"},
		{"extra fields", `{"choice":"no","extra":1}`, false, "no"},
		{"malformed", `{"choice":`, true, ""},
		{"empty", ``, true, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/votes/1", strings.NewReader(tc.body))
			var v models.VoteRequest
			err := ParseJSONBody(req, &v)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.Choice)
		})
	}
}

func TestParseJSONBody_TooLarge(t *testing.T) {
	body := `{"choice":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	req := httptest.NewRequest("POST", "/votes/1", strings.NewReader(body))
	var v models.VoteRequest
	assert.Error(t, ParseJSONBody(req, &v))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORS(next)

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/votes/1", nil)
		req.Header.Set("Origin", "https://economicalwar.com")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://economicalwar.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Session-Token")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	})

	t.Run("passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/votes", nil))

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, "10.0.0.2:80", "203.0.113.5"},
		{"forwarded single", map[string]string{"X-Forwarded-For": "203.0.113.5"}, "10.0.0.2:80", "203.0.113.5"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.2:80", "198.51.100.7"},
		{"remote addr", nil, "192.0.2.1:5555", "192.0.2.1"},
		{"remote addr without port", nil, "192.0.2.1", "192.0.2.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tc.expected, GetClientIP(req))
		})
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	m := metrics.New()
	rl := NewRateLimiter(0.001, 2, "salt", m)
	handler := rl.Wrap(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/votes/1", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		handler(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, "salt", nil)

	a := httptest.NewRequest("POST", "/votes/1", nil)
	a.RemoteAddr = "192.0.2.1:1"
	b := httptest.NewRequest("POST", "/votes/1", nil)
	b.RemoteAddr = "192.0.2.2:1"

	assert.True(t, rl.Allow(a))
	assert.False(t, rl.Allow(a))
	assert.True(t, rl.Allow(b))
}

func TestRateLimiter_Prune(t *testing.T) {
	rl := NewRateLimiter(1, 1, "salt", nil)
	rl.idle = -time.Second

	req := httptest.NewRequest("GET", "/", nil)
	rl.Allow(req)
	assert.Equal(t, 1, rl.Prune())
	assert.Zero(t, rl.Prune())
}
