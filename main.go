package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"contactbook-be/internal/cache"
	"contactbook-be/internal/config"
	"contactbook-be/internal/database"
	"contactbook-be/internal/jwt"
	"contactbook-be/internal/logger"
	"contactbook-be/internal/metrics"
	"contactbook-be/internal/password"
	"contactbook-be/internal/repository"
	"contactbook-be/internal/server"
	"contactbook-be/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	if err := run(cfg, zlog); err != nil {
		zlog.Error("server exited with error", zap.Error(err))
		zlog.Sync() //nolint:errcheck
		os.Exit(1)
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			zlog.Warn("redis unavailable, continuing without cache", zap.Error(err))
			cacheClient = nil
		} else {
			zlog.Info("connected to redis cache")
			defer cacheClient.Close()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	contactRepo := repository.NewContactRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)

	// Initialize services
	authService := service.NewAuthService(userRepo, password.NewBcryptHasher(cfg.BcryptCost), jwtService)
	contactService := service.NewContactService(contactRepo, cacheClient, cfg.CacheTTL, zlog)

	router := server.NewRouter(server.Deps{
		AuthService:    authService,
		ContactService: contactService,
		Tokens:         jwtService,
		DB:             db,
		Metrics:        metrics.New(),
		Logger:         zlog,
		CORSOrigins:    cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.Duration("token_ttl", jwtService.TTL()),
			zap.Bool("cache", cacheClient != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
