package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhookEvents counts identity webhook deliveries by event type and outcome.
	WebhookEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ripple_webhook_events_total",
			Help: "Identity webhook events processed, labelled by event type and result",
		},
		[]string{"event_type", "result"},
	)

	// RedisErrors counts failed Redis commands; the cache layer increments this
	// from its error hook.
	RedisErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ripple_redis_errors_total",
			Help: "Redis command failures by command name",
		},
		[]string{"command"},
	)

	// RateLimitRejections counts requests rejected by the rate limiter.
	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ripple_rate_limit_rejections_total",
			Help: "Requests rejected because a rate limit window was exhausted",
		},
	)
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics registers the Prometheus middleware and exposes /metrics.
// The underlying collectors register with the default registry exactly once,
// so repeated calls (one per fiber.App in tests) are safe.
func InitMetrics(app *fiber.App) {
	promOnce.Do(func() {
		prom = fiberprometheus.New("ripple")
	})
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)
}
