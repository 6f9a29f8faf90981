package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RequestTotal counts HTTP requests by method, route, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	UsersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exercisetracker_users_created_total",
			Help: "Total number of users created",
		},
	)

	ExercisesAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exercisetracker_exercises_added_total",
			Help: "Total number of exercises logged",
		},
	)
)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, UsersCreated, ExercisesAdded)
}

// RecordRequest records duration and count for a request. route is the
// matched route template (e.g. /api/users/:id/logs) so ids do not become labels.
func RecordRequest(method, route string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, route, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, route, status).Inc()
}
