package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/jobboard/internal/adapters/handler/http"
	"github.com/vncsmyrnk/jobboard/internal/adapters/oauth/google"
	"github.com/vncsmyrnk/jobboard/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/jobboard/internal/config"
	"github.com/vncsmyrnk/jobboard/internal/core/ports"
	"github.com/vncsmyrnk/jobboard/internal/core/services"
	"github.com/vncsmyrnk/jobboard/internal/logger"
	"github.com/vncsmyrnk/jobboard/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		zl.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer shutdownTracer()

	db, err := sqldb.Open(ctx, cfg.DatabaseDriver, cfg.DSN())
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.AutoMigrate {
		applied, err := db.Migrate(ctx)
		if err != nil {
			zl.Fatal("failed to apply migrations", zap.Error(err))
		}
		zl.Info("migrations applied", zap.Strings("migrations", applied))
	}

	userRepo := sqldb.NewUserRepository(db)
	jobRepo := sqldb.NewJobRepository(db)
	appRepo := sqldb.NewApplicationRepository(db)

	var verifier ports.TokenVerifier
	if cfg.GoogleClientID != "" {
		verifier = google.NewVerifier()
	}

	authService := services.NewAuthService(userRepo, verifier, services.AuthConfig{
		JWTSecret:       cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		BcryptCost:      cfg.BcryptCost,
		GoogleClientID:  cfg.GoogleClientID,
	}, zl)
	jobService := services.NewJobService(jobRepo, zl)
	appService := services.NewApplicationService(jobRepo, appRepo, zl)

	handler := http.NewHandler(http.Handlers{
		Auth:         http.NewAuthHandler(authService, http.CookieConfig{Domain: cfg.CookieDomain, Secure: cfg.CookieSecure}, zl),
		Jobs:         http.NewJobHandler(jobService, zl),
		Applications: http.NewApplicationHandler(appService, zl),
		Health:       http.NewHealthHandler(db, zl),
		Guard:        http.NewGuard(authService),
		GoogleLogin:  verifier != nil,
	}, cfg.CORSOrigins, zl)

	server := &stdhttp.Server{Addr: cfg.HTTPAddr, Handler: handler}

	go func() {
		zl.Info("server listening", zap.String("addr", cfg.HTTPAddr), zap.String("driver", db.Driver()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown did not complete", zap.Error(err))
	}
}
