package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by route template and status"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route template",
		Buckets: prometheus.DefBuckets,
	}, []string{"path", "method"})

	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "auth_registrations_total", Help: "Registration attempts by outcome"},
		[]string{"outcome"},
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "auth_logins_total", Help: "Login attempts by outcome"},
		[]string{"outcome"},
	)
	TokenRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "auth_token_rejections_total", Help: "Bearer tokens rejected by the auth gate"},
		[]string{"reason"},
	)
	PasswordHashSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "auth_password_hash_seconds",
		Help:    "Time spent hashing or verifying passwords",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2},
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequests, HTTPLatency,
		Registrations, Logins, TokenRejections, PasswordHashSeconds,
	)
}
