package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/catalog-service/internal/api/http"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/internal/service"
	"github.com/spec-kit/catalog-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.migrate(ctx, false, logger); err != nil {
		return err
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordHashing, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	codec := auth.NewTokenCodec(cfg.SecretKey())

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   store.users,
		Hasher:     hasher,
		Codec:      codec,
		TokenTTL:   cfg.Auth.AccessTokenTTL(),
		Bootstrap:  domain.Credentials{Username: cfg.Auth.BootstrapUsername, Password: cfg.Auth.BootstrapPassword},
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	if err := authService.EnsureBootstrapUser(ctx); err != nil {
		return fmt.Errorf("bootstrap user: %w", err)
	}

	app := httptransport.NewServer(httptransport.ServerDeps{
		Config:       cfg,
		Logger:       logger,
		Metrics:      observability.NewMetrics(),
		Auth:         authService,
		Catalog:      service.NewCatalogService(store.products, dispatcher, logger),
		Users:        service.NewUserService(store.users, hasher, dispatcher, logger),
		Dependencies: store.dependencies,
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("storage", cfg.Storage.Driver),
			zap.Bool("protect_users", cfg.Auth.ProtectUsers),
		)
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("fiber listen: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
	}
	return app.ShutdownWithTimeout(shutdownTimeout)
}
