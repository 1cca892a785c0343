package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/bizsphere/marketplace/internal/api"
	"github.com/bizsphere/marketplace/internal/api/handler"
	"github.com/bizsphere/marketplace/internal/core/service"
	"github.com/bizsphere/marketplace/internal/infrastructure/db/mongo"
	"github.com/bizsphere/marketplace/internal/infrastructure/db/redis"
	"github.com/bizsphere/marketplace/internal/infrastructure/queue"
	"github.com/bizsphere/marketplace/internal/pkg/config"
	"github.com/bizsphere/marketplace/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.New(logger.Options{})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := newLogger(cfg)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "bizsphere-api",
	})
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	// --- Repositories ---
	accounts := mongo.NewAccountRepository(db)
	products := mongo.NewProductRepository(db)
	events := mongo.NewVerificationEventRepository(db)
	if err := mongo.EnsureIndexes(ctx, accounts, products, events); err != nil {
		return err
	}

	// --- Background audit writer ---
	auditCtx, cancelAudit := context.WithCancel(context.Background())
	defer cancelAudit()
	audit := queue.NewDispatcher(0, events, log.With().Str("component", "audit").Logger())
	audit.Start(auditCtx)
	defer audit.Stop()

	// --- Services ---
	authService := service.NewAuthService(
		accounts,
		redis.NewTokenDenylist(rdb),
		redis.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow),
		service.AuthConfig{
			JWTSecret:   cfg.Auth.JWTSecret,
			TokenTTL:    cfg.Auth.TokenTTL,
			AdminEmails: cfg.Auth.AdminEmails,
		},
		log.With().Str("component", "auth").Logger(),
	)

	router := api.NewRouter(api.Deps{
		Logger:  log,
		Auth:    authService,
		Policy:  service.NewPolicy(authService),
		Admin:   service.NewAdminService(accounts, audit, log.With().Str("component", "admin").Logger()),
		Catalog: service.NewCatalogService(products, accounts, log.With().Str("component", "catalog").Logger()),
		Readiness: []handler.DependencyCheck{
			{Name: "mongodb", Ping: func(ctx context.Context) error { return mongo.Ping(ctx, db) }},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutdown started")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("shutdown complete")
	return nil
}
