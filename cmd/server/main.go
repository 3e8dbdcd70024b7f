package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/artilectsolutions/budgetsplit-backend/internal/api"
	"github.com/artilectsolutions/budgetsplit-backend/internal/config"
	"github.com/artilectsolutions/budgetsplit-backend/internal/database"
	"github.com/artilectsolutions/budgetsplit-backend/internal/ratelimit"
	"github.com/artilectsolutions/budgetsplit-backend/internal/repository"
	"github.com/artilectsolutions/budgetsplit-backend/internal/scheduler"
	"github.com/artilectsolutions/budgetsplit-backend/internal/service"
	"github.com/artilectsolutions/budgetsplit-backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	logger.Info("connected to database", "path", cfg.Database.Path, "version", version.Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create repositories
	jobRepo := repository.NewJobRepository(db)
	userRepo := repository.NewUserRepository(db)
	revokedRepo := repository.NewRevokedTokenRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	jobService := service.NewJobService(jobRepo, service.Defaults{
		ConversionRate: cfg.Distribution.ConversionRate,
		Policy:         cfg.Distribution.Policy,
	}, logger)
	authService := service.NewAuthService(userRepo, revokedRepo, service.AuthOptions{
		Secret:     cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	shareService, err := service.NewShareService(cfg.Share.Key, cfg.Share.TTL, jobService)
	if err != nil {
		log.Fatalf("Failed to create share service: %v", err)
	}
	if cfg.Share.Key == "" {
		logger.Warn("SHARE_KEY not set, share links will not survive a restart")
	}

	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		user, created, err := authService.EnsureUser(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Auth.AdminName)
		if err != nil {
			log.Fatalf("Failed to ensure admin user: %v", err)
		}
		if created {
			logger.Info("created admin user", "email", user.Email)
		}
	}

	// Rate limit store
	memoryLimiter := ratelimit.NewMemoryStore()
	var limiter ratelimit.Store = memoryLimiter
	if cfg.RateLimit.RedisURL != "" {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		limiter = ratelimit.NewRedisStore(rdb)
		logger.Info("rate limiting backed by redis")
	}

	// Housekeeping
	sched := scheduler.New(cfg.Auth.PurgeSchedule, logger)
	sched.Add("purge revoked tokens", func(ctx context.Context) error {
		n, err := authService.PurgeRevoked(ctx)
		if err == nil && n > 0 {
			logger.Info("purged revoked tokens", "count", n)
		}
		return err
	})
	sched.Add("sweep rate limit windows", func(context.Context) error {
		memoryLimiter.Sweep()
		return nil
	})
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Create router
	router := api.NewRouter(api.Services{
		System: systemService,
		Auth:   authService,
		Jobs:   jobService,
		Share:  shareService,
	}, limiter, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	sched.Stop()

	logger.Info("server exited")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
