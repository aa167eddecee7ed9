package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	wayplanroot "github.com/wayplan/wayplan"
	"github.com/wayplan/wayplan/internal/config"
	"github.com/wayplan/wayplan/internal/handler"
	"github.com/wayplan/wayplan/internal/middleware"
	"github.com/wayplan/wayplan/internal/ratelimit"
	"github.com/wayplan/wayplan/internal/repository"
	"github.com/wayplan/wayplan/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(wayplanroot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	users := repository.NewUsers(pool)
	trips := repository.NewTrips(pool)

	// Rate limiting: Redis when configured, in-process window store
	// otherwise.
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		limiter = ratelimit.NewRedisLimiter(rdb, "ratelimit", config.RateLimitWindow, config.RateLimitRequests)
		slog.Info("rate limiting backed by redis", "addr", cfg.RedisAddr)
	} else {
		limiter = ratelimit.NewMemoryLimiter(config.RateLimitWindow, config.RateLimitRequests)
		slog.Info("rate limiting backed by in-process store")
	}

	// Initialize services
	llm := service.NewLLMClient(cfg.LLMAPIKey, cfg.LLMBaseURL)
	userService := service.NewUserService(users)
	tripService := service.NewTripService(trips)
	planner := service.NewPlannerService(llm, cfg.ChatModel)
	generator := service.NewGeneratorService(llm, cfg.PlanModel)
	materializer := service.NewMaterializerService(trips)
	guideService := service.NewGuideService()

	// Initialize handler
	h := handler.New(handler.Deps{
		Cfg:          cfg,
		UserService:  userService,
		TripService:  tripService,
		Planner:      planner,
		Generator:    generator,
		Materializer: materializer,
		GuideService: guideService,
		Limiter:      limiter,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recover(), middleware.Logging())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h.Register(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
