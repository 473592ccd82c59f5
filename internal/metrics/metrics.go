package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	contentWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_content_writes_total",
			Help: "Total number of successful content writes",
		},
		[]string{"entity", "operation"},
	)

	contactMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_contact_messages_total",
			Help: "Total number of contact form submissions by outcome",
		},
		[]string{"outcome"},
	)

	sectionFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_section_fallbacks_total",
			Help: "Total number of public sections rendered from fallback content",
		},
		[]string{"section"},
	)
)

// Contact submission outcomes.
const (
	ContactAccepted = "accepted"
	ContactRejected = "rejected"
	ContactBot      = "bot"
)

// Middleware records request counts and latencies per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		httpRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the Prometheus exposition format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// ContentWrite counts a successful create, update or delete of entity.
func ContentWrite(entity, operation string) {
	contentWritesTotal.WithLabelValues(entity, operation).Inc()
}

// ContactMessage counts a contact form submission.
func ContactMessage(outcome string) {
	contactMessagesTotal.WithLabelValues(outcome).Inc()
}

// SectionFallback counts a public section rendered from fallback content.
func SectionFallback(section string) {
	sectionFallbacksTotal.WithLabelValues(section).Inc()
}
