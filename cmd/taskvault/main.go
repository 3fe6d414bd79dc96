package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/handlers"
	"github.com/taskvault/taskvault/internal/logging"
	"github.com/taskvault/taskvault/internal/middleware"
	"github.com/taskvault/taskvault/internal/repository"
	"github.com/taskvault/taskvault/internal/server"
	"github.com/taskvault/taskvault/internal/service"
	"github.com/taskvault/taskvault/internal/sessions"
	"github.com/taskvault/taskvault/pkg/tokens"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("taskvault"))
	logging.SetDefault(logger)

	slog.Info("Starting taskvault",
		slog.Int("port", cfg.Server.Port),
		slog.String("database", cfg.Database.Type),
		slog.String("log_level", cfg.Logging.Level),
	)

	ctx := context.Background()

	// Repository: postgres in production, memory for local development.
	var repo repository.Repository
	switch cfg.Database.Type {
	case "postgres":
		if cfg.Database.URL == "" {
			slog.Error("database.url is required for postgres")
			os.Exit(1)
		}

		slog.Info("Running database migrations")
		m, err := migrate.New("file://migrations", cfg.Database.URL)
		if err != nil {
			slog.Error("Failed to initialize migrations", logging.Error(err))
			os.Exit(1)
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			slog.Error("Failed to run migrations", logging.Error(err))
			os.Exit(1)
		}

		pg, err := repository.NewPostgresRepository(ctx, cfg.Database.URL)
		if err != nil {
			slog.Error("Failed to connect to database", logging.Error(err))
			os.Exit(1)
		}
		defer pg.Close()
		repo = pg
	default:
		slog.Warn("Using in-memory repository; data will not survive restarts")
		repo = repository.NewMemoryRepository()
	}

	redisClient, err := sessions.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		slog.Error("Failed to connect to redis", logging.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	sessionStore := sessions.NewStore(redisClient)
	issuer := tokens.NewIssuer(
		cfg.Auth.JWTSecret,
		cfg.Auth.JWTRefreshSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	authService := service.NewAuthService(repo, sessionStore, issuer, logger)
	todoService := service.NewTodoService(repo, logger)

	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)
	guard := middleware.NewAuthMiddleware(authService)

	router := server.NewRouter(authHandler, todoHandler, guard, middleware.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("taskvault listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", logging.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", logging.Error(err))
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
