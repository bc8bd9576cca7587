package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/JonnyWalker81/wellspring/backend/internal/apierror"
	"github.com/JonnyWalker81/wellspring/backend/internal/config"
	"github.com/JonnyWalker81/wellspring/backend/internal/handlers"
	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
	"github.com/JonnyWalker81/wellspring/backend/internal/middleware"
	"github.com/JonnyWalker81/wellspring/backend/internal/repository"
	"github.com/JonnyWalker81/wellspring/backend/internal/service"
)

const (
	idempotencyTTL  = 24 * time.Hour
	rateLimitIdle   = 10 * time.Minute
	shutdownTimeout = 15 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

// stateReporter is implemented by stores wrapped in a circuit breaker
type stateReporter interface {
	State() string
}

func runServe(cmd *cobra.Command, args []string) error {
	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	// The server logs to stdout like any other service
	log := newLogger(cfg, "api", os.Stdout)
	logger.SetDefault(log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting wellspring API server",
		logger.String("env", cfg.Server.Env),
		logger.String("storage", cfg.Storage.Driver),
	)

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, rateLimitIdle, "api")
	go limiter.Run(ctx.Done())

	router, err := newRouter(cfg, store, limiter, repository.NewIdempotencyRepository(idempotencyTTL), log)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newRouter wires middleware, handlers and routes around a record store
func newRouter(
	c *config.Config,
	store repository.RecordStore,
	limiter *middleware.RateLimiter,
	idempotency repository.IdempotencyRepository,
	log logger.Logger,
) (*gin.Engine, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	// Initialize services
	wellnessService := service.NewWellnessService(store,
		service.WithLocation(loc),
		service.WithDefaultWindow(c.Analytics.DefaultWindowDays),
	)
	activityService := service.NewActivityService(store, loc)

	// Initialize handlers
	insightsHandler := handlers.NewInsightsHandler(wellnessService, c.Analytics.DefaultWindowDays)
	activityHandler := handlers.NewActivityHandler(activityService)

	// Set Gin mode based on environment
	if c.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(log))
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(c.Server.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeaders(c.IsProduction()))

	router.NoRoute(func(ctx *gin.Context) {
		apierror.WriteProblem(ctx, apierror.NewNotFoundError(apierror.GetRequestID(ctx), ctx.Request.URL.Path))
	})

	// Health check
	router.GET("/health", func(ctx *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"env":     c.Server.Env,
			"storage": store.Backend(),
		}
		if br, ok := store.(stateReporter); ok {
			body["circuit"] = br.State()
		}
		ctx.JSON(http.StatusOK, body)
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(limiter))
	{
		v1.GET("/insights", insightsHandler.GetInsights)
		v1.GET("/insights/focus", insightsHandler.GetTodaysFocus)

		v1.GET("/exports/healthcare", insightsHandler.ExportHealthcare)
		v1.GET("/exports/research", insightsHandler.ExportResearch)

		v1.GET("/activities/:category", activityHandler.ListActivities)
		v1.POST("/activities/:category", middleware.Idempotency(idempotency), activityHandler.LogActivity)
	}

	return router, nil
}
