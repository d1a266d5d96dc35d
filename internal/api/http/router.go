package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Products       *handlers.ProductsHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
	ProtectUsers   bool
}

// RegisterRoutes wires HTTP routes. Resource paths accept every method so the
// bearer check runs before a method is rejected.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.All("/login", cfg.Auth.Login)

	guard := cfg.AuthMiddleware.Handle
	app.All("/protected", guard, cfg.Auth.Protected)

	products := handlers.Dispatch(cfg.Products)
	app.All("/products", guard, products)
	app.All("/products/*", guard, products)

	users := handlers.Dispatch(cfg.Users)
	if cfg.ProtectUsers {
		app.All("/users", guard, users)
		app.All("/users/*", guard, users)
		return
	}
	app.All("/users", users)
	app.All("/users/*", users)
}
