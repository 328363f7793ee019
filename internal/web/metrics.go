package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	labelsTotal     *prometheus.CounterVec
	pagesTotal      prometheus.Counter
	archiveFailures prometheus.Counter
}

// NewMetrics creates and registers every collector
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "letterpack",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "letterpack",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		labelsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "letterpack",
				Name:      "labels_rendered_total",
				Help:      "Total number of label pairs rendered",
			},
			[]string{"mode"},
		),
		pagesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "letterpack",
			Name:      "pages_rendered_total",
			Help:      "Total number of pages rendered",
		}),
		archiveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "letterpack",
			Name:      "archive_failures_total",
			Help:      "Documents that could not be written to the archive sink",
		}),
	}
	m.registry.MustRegister(m.requestsTotal, m.requestDuration, m.labelsTotal, m.pagesTotal, m.archiveFailures)
	return m
}

// Middleware records request counts and durations
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// ObserveRender counts rendered labels and pages
func (m *Metrics) ObserveRender(mode string, labels, pages int) {
	m.labelsTotal.WithLabelValues(mode).Add(float64(labels))
	m.pagesTotal.Add(float64(pages))
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
