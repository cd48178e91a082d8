// Package http wires the REST API of the task manager onto fiber.
package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"

	"taskmanager/internal/taskmanager/adapters/http/middleware"
	"taskmanager/internal/taskmanager/adapters/http/response"
	"taskmanager/internal/taskmanager/adapters/http/tasks"
	"taskmanager/internal/taskmanager/adapters/http/users"
	"taskmanager/internal/taskmanager/metrics"
	"taskmanager/internal/taskmanager/ports/api"
)

// ErrMissingUseCase is returned by SetupRouter when a use case is nil.
var ErrMissingUseCase = errors.New("router requires user and task use cases")

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps lists everything the routes need. Health, Metrics, Gatherer and RateLimiter are optional.
type RouterDeps struct {
	Users       api.UserUseCase
	Tasks       api.TaskUseCase
	Health      Pinger
	Metrics     *metrics.Collector
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.RateLimiter
}

// SetupRouter registers middleware and routes on app.
func SetupRouter(app *fiber.App, deps RouterDeps) error {
	if deps.Users == nil || deps.Tasks == nil {
		return ErrMissingUseCase
	}

	userHandler := users.NewHandler(deps.Users)
	taskHandler := tasks.NewHandler(deps.Tasks)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	// Metrics wraps recovery so recovered panics are counted as 500s.
	if deps.Metrics != nil {
		app.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	app.Use(middleware.NewRecoveryMiddleware())
	if deps.RateLimiter != nil {
		app.Use(deps.RateLimiter.Handler())
	}

	app.Get("/health", healthHandler(deps.Health))
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(deps.Gatherer)))
	}

	apiV1 := app.Group("/api/v1")

	userRoutes := apiV1.Group("/users")
	userRoutes.Post("/", userHandler.CreateUser)
	userRoutes.Get("/", userHandler.GetAllUsers)
	userRoutes.Get("/:id", userHandler.GetUserByID)
	userRoutes.Put("/:id", userHandler.UpdateUser)
	userRoutes.Patch("/:id", userHandler.UpdateUser)
	userRoutes.Delete("/:id", userHandler.DeleteUser)

	taskRoutes := apiV1.Group("/tasks")
	taskRoutes.Post("/", taskHandler.CreateTask)
	taskRoutes.Get("/", taskHandler.GetAllTasks)
	taskRoutes.Get("/user/:userId", taskHandler.GetTasksByUserID)
	taskRoutes.Get("/:id", taskHandler.GetTaskByID)
	taskRoutes.Put("/:id", taskHandler.UpdateTask)
	taskRoutes.Patch("/:id", taskHandler.UpdateTask)
	taskRoutes.Delete("/:id", taskHandler.DeleteTask)

	app.Use(func(ctx fiber.Ctx) error {
		return response.Error(ctx, fiber.StatusNotFound, response.MsgRouteNotFound)
	})

	return nil
}
