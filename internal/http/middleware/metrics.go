package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Admission counters for the two limiters in front of the points API:
// the per-IP window on /api/v1 and the per-user window on the credit
// endpoint, distinguished by the limiter label.
var (
	RLAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "points_api_rate_limit_allowed_total",
			Help: "Requests admitted past a points API rate limiter",
		},
		[]string{"limiter", "endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "points_api_rate_limit_blocked_total",
			Help: "Requests rejected with 429 by a points API rate limiter",
		},
		[]string{"limiter", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(RLAllowed)
	prometheus.MustRegister(RLBlocked)
}
