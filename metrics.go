package main

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "nutriai"

// Score sources for the daily_score histogram.
const (
	scoreSourcePlan    = "plan"
	scoreSourceMealLog = "meal_log"
	scoreSourceAdHoc   = "ad_hoc"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route template and status code.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	dailyScores = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "daily_score",
		Help:      "Total nutrition scores computed, by where the day came from.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	}, []string{"source"})

	plansGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "diet_plans_generated_total",
		Help:      "Diet plans generated and stored.",
	})

	analyzerFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "analyzer_fallbacks_total",
		Help:      "OpenAI plan summaries that failed and used the canned summary instead.",
	})
)

// observeScore records one computed daily score.
func observeScore(source string, total int) {
	dailyScores.WithLabelValues(source).Observe(float64(total))
}

// metricsMiddleware records count and latency per route template. Unmatched
// paths share one label so scanners can't blow up cardinality.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// metricsHandler serves the Prometheus exposition format.
// GET /metrics (public).
func metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
