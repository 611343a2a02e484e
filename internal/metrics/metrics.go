// Package metrics provides Prometheus metrics collection for the translator service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// TranslationsWrittenTotal tracks translation versions written.
	TranslationsWrittenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "translations_written_total",
			Help: "Total number of translation versions written",
		},
	)

	// ExportsRenderedTotal tracks rendered export bundles by format.
	ExportsRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_rendered_total",
			Help: "Total number of export bundles rendered",
		},
		[]string{"kind", "format"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordExport records a rendered export bundle.
func RecordExport(kind, format string) {
	ExportsRenderedTotal.WithLabelValues(kind, format).Inc()
}
