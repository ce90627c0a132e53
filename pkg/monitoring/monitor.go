package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	StoreRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_store_requests_total",
			Help: "Document store calls by collection, operation and outcome",
		},
		[]string{"collection", "operation", "outcome"},
	)

	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "document_store_request_duration_seconds",
			Help:    "Duration of document store calls",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"collection", "operation"},
	)

	StoreRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_store_retries_total",
			Help: "Retried document store calls",
		},
		[]string{"collection", "operation"},
	)

	MalformedDocuments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_decode_failures_total",
			Help: "Documents skipped because their fields could not be decoded",
		},
		[]string{"collection"},
	)

	UnmatchedScores = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_unmatched_scores_total",
			Help: "Score entries whose course name matches no module",
		},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(StoreRequests)
		prometheus.MustRegister(StoreDuration)
		prometheus.MustRegister(StoreRetries)
		prometheus.MustRegister(MalformedDocuments)
		prometheus.MustRegister(UnmatchedScores)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
