package web

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the server's collectors. Each server owns its registry so
// several servers can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestDuration *prometheus.HistogramVec
	CompletionChanges   *prometheus.CounterVec
	InsightCalls        *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hs_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "path", "status"},
		),
		CompletionChanges: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hs_completion_changes_total",
				Help: "Completion ledger changes",
			},
			[]string{"direction"}, // increment, decrement
		),
		InsightCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hs_insight_calls_total",
				Help: "AI insight requests by kind and outcome",
			},
			[]string{"kind", "status"},
		),
	}
}

// Middleware records request latency under the matched route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
