package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/paylens/paylens-api/internal/config"
	"github.com/paylens/paylens-api/internal/logger"
	"github.com/paylens/paylens-api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.InitLogger("local")
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	logger.InitLogger(cfg.Stage)
	defer func() { _ = logger.Sync() }()

	pool := connectDatabase(cfg)

	srv := server.New(cfg, pool)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

// connectDatabase opens the saved-chart pool. The database is optional:
// without DATABASE_URL the service runs with persistence disabled.
func connectDatabase(cfg *config.Config) *pgxpool.Pool {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, saved-chart persistence disabled")
		return nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("unable to parse database connection string", zap.Error(err))
	}

	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Fatal("unable to create connection pool", zap.Error(err))
	}

	return pool
}
