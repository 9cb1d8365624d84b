// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "signup_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	RosterOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_roster_operations_total",
			Help: "Roster operations by activity, operation and outcome",
		},
		[]string{"activity", "operation", "outcome"},
	)

	ActivityParticipants = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signup_activity_participants",
			Help: "Current number of participants per activity",
		},
		[]string{"activity"},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_notifications_failed_total",
			Help: "Roster change notifications that could not be delivered",
		},
		[]string{"channel"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"operation"},
	)
)

// Outcome labels for RosterOperations.
const (
	OutcomeSuccess = "success"
)
