package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskvault_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskvault_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Auth metrics
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskvault_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskvault_login_rate_limit_hits_total",
			Help: "Total number of logins rejected by the attempt limit",
		},
	)

	TokensIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskvault_tokens_issued_total",
			Help: "Total number of tokens issued by type",
		},
		[]string{"type"},
	)

	TokensRevoked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "taskvault_tokens_revoked_total",
			Help: "Total number of access tokens blacklisted at logout",
		},
	)
)
