// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flatmeals_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flatmeals_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	GroupsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flatmeals_groups_created_total",
		Help: "Groups created.",
	})

	PlansGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flatmeals_meal_plans_generated_total",
		Help: "Meal plans generated or regenerated.",
	})

	PlansLocked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flatmeals_meal_plans_locked_total",
		Help: "Meal plans moved to the locked state.",
	})

	HeadcountSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flatmeals_headcount_submissions_total",
		Help: "Headcount confirmations received.",
	})

	CookNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flatmeals_cook_notifications_total",
		Help: "Cook notifications composed, by trigger (manual or scheduled).",
	}, []string{"trigger"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
