package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Business metrics
	contactSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions",
		},
	)

	statusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submission_status_transitions_total",
			Help: "Total number of submission status changes",
		},
		[]string{"from", "to"},
	)

	contactInfoCommitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_info_commits_total",
			Help: "Total number of committed contact info edits",
		},
	)
)

// Middleware records request count and duration per route. Requests that match no route are
// recorded with the route "unmatched" to keep the label cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordContactSubmission records a new contact form submission.
func RecordContactSubmission() {
	contactSubmissionsTotal.Inc()
}

// RecordStatusTransition records a status change of a submission.
func RecordStatusTransition(from, to string) {
	statusTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordContactInfoCommit records a committed contact info edit.
func RecordContactInfoCommit() {
	contactInfoCommitsTotal.Inc()
}
