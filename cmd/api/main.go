package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handler"
	"storefront/internal/media"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply pending schema migrations before opening the pool
	if err := database.Migrate(cfg.Database, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize the session store with Redis, falling back to process
	// memory when Redis is unreachable so the storefront stays up.
	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	var sessionStore session.Store

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
	err = redisClient.Ping(pingCtx).Err()
	pingCancel()
	if err != nil {
		logger.Warn().
			Err(err).
			Str("address", cfg.Redis.Address()).
			Msg("Redis unreachable, falling back to in-memory sessions")
		sessionStore = session.NewMemoryStore()
	} else {
		logger.Info().Str("address", cfg.Redis.Address()).Msg("Redis session store initialised")
		sessionStore = session.NewRedisStore(redisClient, sessionTTL, logger)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	visitorRepo := repository.NewVisitorRepository(pool, logger)
	purchaseRepo := repository.NewPurchaseRepository(pool, logger)

	// Initialize media storage with S3 and local fallback
	fileStore := media.NewFileStore(cfg.Media.LocalDir, logger)
	var mediaStore media.Store = fileStore

	if cfg.Media.S3Enabled {
		s3Store, err := media.NewS3Store(ctx, cfg.Media.Bucket, cfg.Media.Region, cfg.Media.Prefix, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 media store, using local file system only")
		} else {
			mediaStore = media.NewFallbackStore(s3Store, fileStore, true, logger)
		}
	} else {
		logger.Info().Msg("using local file system for product images (S3 disabled)")
	}

	// Initialize services
	productService := service.NewProductService(productRepo, reviewRepo, mediaStore, logger)
	cartService := service.NewCartService(productRepo, cartRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, logger)
	visitorService := service.NewVisitorService(visitorRepo, logger)
	purchaseService := service.NewPurchaseService(purchaseRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	sessionHandler := handler.NewSessionHandler(cartService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, logger)
	dashboardHandler := handler.NewDashboardHandler(productService, visitorService, purchaseService, logger)

	// Initialize router
	mediaDir := cfg.Media.LocalDir
	if cfg.Media.S3Enabled {
		mediaDir = ""
	}
	mux := router.New(productHandler, cartHandler, sessionHandler, reviewHandler, dashboardHandler, router.Options{
		SessionStore:  sessionStore,
		SessionCookie: cfg.Session.CookieName,
		SessionTTL:    sessionTTL,
		APIKey:        cfg.Auth.APIKey,
		MediaDir:      mediaDir,
		Visitors:      visitorService,
		Logger:        logger,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
