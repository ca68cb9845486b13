package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// PostsPublished counts posts created, labeled by whether they were
	// scheduled for a future publication date.
	PostsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogicum_posts_created_total",
		Help: "Total number of posts created",
	}, []string{"scheduled"})

	// CommentsCreated counts comments added to posts.
	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogicum_comments_created_total",
		Help: "Total number of comments created",
	})

	// HiddenPostDenials counts detail requests rejected by the visibility policy.
	HiddenPostDenials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogicum_hidden_post_denials_total",
		Help: "Total number of post detail requests hidden by the visibility policy",
	})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-instrumentation handler of the
// Prometheus middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
