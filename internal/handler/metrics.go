package handler

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the GrowthPilot backend.
var Metrics = struct {
	AnalysesTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
}{}

var metricsOnce sync.Once

// InitMetrics registers all Prometheus metrics. Safe to call more than
// once; registration happens on the first call.
func InitMetrics() {
	metricsOnce.Do(func() {
		Metrics.AnalysesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growthpilot_analyses_total",
				Help: "Total analyze requests, by outcome.",
			},
			[]string{"outcome"},
		)

		Metrics.RequestDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "growthpilot_api_request_duration_seconds",
				Help:    "HTTP request duration in seconds, by endpoint and method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "method", "status"},
		)

		Metrics.RequestsInFlight = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "growthpilot_requests_in_flight",
				Help: "Number of HTTP requests currently being served.",
			},
		)

		Metrics.CacheHits = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "growthpilot_cache_hits_total",
				Help: "Total Redis cache hits (reports and handle resolutions).",
			},
		)

		Metrics.CacheMisses = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "growthpilot_cache_misses_total",
				Help: "Total Redis cache misses (reports and handle resolutions).",
			},
		)

		prometheus.MustRegister(
			Metrics.AnalysesTotal,
			Metrics.RequestDuration,
			Metrics.RequestsInFlight,
			Metrics.CacheHits,
			Metrics.CacheMisses,
		)
	})
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(path, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
