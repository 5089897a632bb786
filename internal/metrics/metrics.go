// Package metrics provides the Prometheus instrumentation for the API.
//
// Wire it once on the router:
//
//	r.Use(metrics.Middleware())
//	r.GET("/metrics", metrics.Handler())
package metrics

import (
	"strconv" // Status code labels
	"time"    // Durations

	"github.com/gin-gonic/gin"                                  // Gin web framework
	"github.com/prometheus/client_golang/prometheus"            // Prometheus metrics
	"github.com/prometheus/client_golang/prometheus/collectors" // Runtime collectors
	"github.com/prometheus/client_golang/prometheus/promhttp"   // Metrics HTTP handler
)

// Payment confirmation outcomes
const (
	PaymentConfirmed   = "confirmed"   // payment stored and order marked paid
	PaymentCompensated = "compensated" // order update failed, payment removed again
	PaymentFailed      = "failed"      // order update and compensation both failed
)

var (
	// RequestDuration tracks how long each HTTP request takes, by route template.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pchouse",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pchouse",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// PaymentConfirmations counts order payment confirmations by outcome.
	PaymentConfirmations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pchouse",
			Subsystem: "payment",
			Name:      "confirmations_total",
			Help:      "Order payment confirmations by outcome.",
		},
		[]string{"outcome"},
	)
)

// Registry is the registry served on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RequestTotal,
		PaymentConfirmations,
	)
}

// Middleware records request count and latency. Unmatched routes are
// grouped under a single label to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}
