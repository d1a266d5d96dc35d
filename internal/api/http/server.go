package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/internal/service"
)

// ServerDeps bundles everything NewServer needs.
type ServerDeps struct {
	Config       *config.Config
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Auth         *service.AuthService
	Catalog      *service.CatalogService
	Users        *service.UserService
	Dependencies map[string]handlers.Pinger
}

// NewServer builds the Fiber application with middlewares and routes.
func NewServer(deps ServerDeps) *fiber.App {
	cfg := deps.Config
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(deps.Logger),
	})

	RegisterMiddlewares(app, deps.Logger, deps.Metrics, cfg.CORS, cfg.App.RequestTimeout())
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps.Dependencies, deps.Logger),
		Auth:           handlers.NewAuthHandler(deps.Auth),
		Products:       handlers.NewProductsHandler(deps.Catalog),
		Users:          handlers.NewUsersHandler(deps.Users),
		AuthMiddleware: auth.NewAuthMiddleware(deps.Auth.Guard(), deps.Logger, deps.Metrics),
		Metrics:        deps.Metrics,
		ProtectUsers:   cfg.Auth.ProtectUsers,
	})
	return app
}
