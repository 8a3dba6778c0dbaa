package router

import (
	"context"
	"net/http"
	"time"

	"trivia-api/internal/config"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/metrics"
	"trivia-api/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Route binds one method and path to a handler
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
}

// Routes is the routing table of the trivia API
func Routes(h *handler.TriviaHandler) []Route {
	return []Route{
		{Method: fiber.MethodGet, Path: "/categories", Handler: h.GetCategories},
		{Method: fiber.MethodGet, Path: "/questions", Handler: h.GetQuestions},
		{Method: fiber.MethodDelete, Path: "/questions/:id<int>", Handler: h.DeleteQuestion},
		{Method: fiber.MethodPost, Path: "/questions", Handler: h.CreateOrSearchQuestions},
		{Method: fiber.MethodGet, Path: "/categories/:id<int>/questions", Handler: h.GetCategoryQuestions},
		{Method: fiber.MethodPost, Path: "/quizzes", Handler: h.PlayQuiz},
	}
}

// HealthCheck reports whether one dependency is reachable
type HealthCheck func(ctx context.Context) error

// Options configures the application built by New
type Options struct {
	Server       config.ServerConfig
	AllowOrigins string
	// Metrics enables /metrics and request instrumentation when set
	Metrics *metrics.Metrics
	// HealthChecks are run by /healthz, keyed by dependency name
	HealthChecks map[string]HealthCheck
	// Swagger serves /swagger/* from the registered docs
	Swagger bool
}

// New builds the fiber application with its middleware stack and registers the routing table
func New(h *handler.TriviaHandler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  opts.Server.ReadTimeout,
		WriteTimeout: opts.Server.WriteTimeout,
		IdleTimeout:  opts.Server.IdleTimeout,
		BodyLimit:    opts.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	if opts.Metrics != nil {
		app.Use(middleware.Metrics(opts.Metrics))
	}
	app.Use(middleware.RequestLogger())
	for _, mw := range middleware.CORS(opts.AllowOrigins) {
		app.Use(mw)
	}
	// inside CORS so recovered panics still carry the CORS headers
	app.Use(recover.New())

	Register(app, Routes(h))

	app.Get("/healthz", healthHandler(opts.HealthChecks))
	if opts.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{})))
	}
	if opts.Swagger {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	return app
}

// Register adds every route of the table to app
func Register(app *fiber.App, routes []Route) {
	for _, r := range routes {
		app.Add(r.Method, r.Path, r.Handler)
		logger.Get().Debug("Route registered", zap.String("method", r.Method), zap.String("path", r.Path))
	}
}

func healthHandler(checks map[string]HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.Map{}
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.Get().Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
				status[name] = "down"
				healthy = false
				continue
			}
			status[name] = "up"
		}

		if !healthy {
			return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "dependencies": status})
		}
		return c.JSON(fiber.Map{"status": "ok", "dependencies": status})
	}
}
