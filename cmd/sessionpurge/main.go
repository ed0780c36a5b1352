package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/jobboard/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/jobboard/internal/config"
	"github.com/vncsmyrnk/jobboard/internal/core/services"
	"github.com/vncsmyrnk/jobboard/internal/logger"
)

// sessionpurge clears refresh tokens that are past their expiry. It is meant
// to run periodically from a scheduler.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Only the store settings matter here; no token is ever signed.
	cfg := config.Load()

	var timeout time.Duration
	flag.StringVar(&cfg.DatabaseDriver, "db-driver", cfg.DatabaseDriver, "Database driver (postgres or sqlite)")
	flag.StringVar(&cfg.DatabaseURL, "db-url", cfg.DatabaseURL, "Database connection URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum duration of the job")
	flag.Parse()

	if err := cfg.ValidateStore(); err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := sqldb.Open(ctx, cfg.DatabaseDriver, cfg.DSN())
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	authService := services.NewAuthService(sqldb.NewUserRepository(db), nil, services.AuthConfig{}, zl)

	zl.Info("starting expired session purge")

	purged, err := authService.PurgeExpiredSessions(ctx)
	if err != nil {
		zl.Fatal("failed to purge expired sessions", zap.Error(err))
	}

	zl.Info("expired session purge completed", zap.Int64("purged", purged))
}
