// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service metrics. Counts are per process and reset
// on restart like everything else here.
type Registry struct {
	reg *prometheus.Registry

	RequestDuration      *prometheus.HistogramVec
	VotesCast            *prometheus.CounterVec
	VotesIgnored         prometheus.Counter
	PredictionsAccepted  prometheus.Counter
	PredictionsRejected  *prometheus.CounterVec
	PredictionsCompleted prometheus.Counter
	ActiveSessions       prometheus.Gauge
	SessionsExpired      prometheus.Counter
	RateLimited          prometheus.Counter
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tariffwatch_request_duration_seconds",
				Help:    "HTTP request duration by route",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"route", "method"},
		),
		VotesCast: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tariffwatch_votes_cast_total",
				Help: "Accepted rumor votes by choice",
			},
			[]string{"choice"},
		),
		VotesIgnored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tariffwatch_votes_ignored_total",
			Help: "Repeat or invalid votes that changed nothing",
		}),
		PredictionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tariffwatch_predictions_accepted_total",
			Help: "Predictions that entered the pending state",
		}),
		PredictionsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tariffwatch_predictions_rejected_total",
				Help: "Rejected prediction submissions by reason",
			},
			[]string{"reason"},
		),
		PredictionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tariffwatch_predictions_completed_total",
			Help: "Predictions that reached the submitted state",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tariffwatch_active_sessions",
			Help: "Sessions currently held in memory",
		}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tariffwatch_sessions_expired_total",
			Help: "Sessions discarded after the idle timeout",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tariffwatch_rate_limited_total",
			Help: "Requests rejected by the per-client rate limit",
		}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.RequestDuration,
		r.VotesCast,
		r.VotesIgnored,
		r.PredictionsAccepted,
		r.PredictionsRejected,
		r.PredictionsCompleted,
		r.ActiveSessions,
		r.SessionsExpired,
		r.RateLimited,
	)
	return r
}

// Handler serves the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry to tests
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
