package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/aistocktrack/catalog-service/config"
	"github.com/aistocktrack/catalog-service/internal/catalog"
	"github.com/aistocktrack/catalog-service/internal/collectors"
	"github.com/aistocktrack/catalog-service/internal/database"
	"github.com/aistocktrack/catalog-service/internal/handlers"
	"github.com/aistocktrack/catalog-service/internal/middleware"
	"github.com/aistocktrack/catalog-service/internal/telemetry"
	"github.com/aistocktrack/catalog-service/internal/types"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting catalog service")

	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}

	ctx := context.Background()

	telemetryCleanup := telemetry.MustInit(ctx, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
	})
	defer telemetryCleanup(ctx)

	if err := database.Connect(
		ctx,
		dbURL,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		cfg.Database.MaxConnLifetime,
		cfg.Database.MaxConnIdleTime,
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("Database connected")

	if err := database.Migrate(ctx, database.Pool()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply schema")
	}

	store := database.NewProductStore(database.Pool())

	if err := handleInterruptedRuns(ctx, logger); err != nil {
		logger.Warn().Err(err).Msg("Failed to handle interrupted runs")
	}

	feedBrand, err := types.ParseBrand(cfg.Collection.FeedBrand)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid feed brand")
	}
	sources, err := collectors.BuildFromConfig(cfg.Collection.Sources, cfg.Collection.FeedPath, feedBrand)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure collection sources")
	}
	manager := collectors.NewManager(store, *logger, sources...)

	service := catalog.NewService(store)
	api := handlers.NewAPI(service, store, manager.Run)

	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, logger)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	apiGroup.Use(middleware.RateLimitMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
	}))
	{
		apiGroup.GET("/health", handlers.HealthCheck)
		api.Register(apiGroup)

		admin := apiGroup.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			api.RegisterAdmin(admin)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

// handleInterruptedRuns marks collection runs left in 'running' state by a
// previous process as failed so pollers don't wait forever.
func handleInterruptedRuns(ctx context.Context, logger *zerolog.Logger) error {
	pool := database.Pool()

	tag, err := pool.Exec(ctx, `
		UPDATE collection_runs
		SET status = 'failed',
		    completed_at = NOW(),
		    metadata = 'Service restarted during collection'
		WHERE status = 'running'
	`)
	if err != nil {
		return fmt.Errorf("failed to mark interrupted runs: %w", err)
	}

	if tag.RowsAffected() > 0 {
		logger.Info().Int64("count", tag.RowsAffected()).Msg("Handled interrupted runs")
	}
	return nil
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "catalog-service").Logger()
	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		end := time.Now()
		latency := end.Sub(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
