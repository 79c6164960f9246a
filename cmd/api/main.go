package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ziad-Belal/strike-api/internal/auth"
	"github.com/Ziad-Belal/strike-api/internal/cart"
	"github.com/Ziad-Belal/strike-api/internal/checkout"
	"github.com/Ziad-Belal/strike-api/internal/config"
	"github.com/Ziad-Belal/strike-api/internal/database"
	"github.com/Ziad-Belal/strike-api/internal/handler"
	"github.com/Ziad-Belal/strike-api/internal/notify"
	"github.com/Ziad-Belal/strike-api/internal/pricing"
	"github.com/Ziad-Belal/strike-api/internal/profile"
	"github.com/Ziad-Belal/strike-api/internal/promo"
	"github.com/Ziad-Belal/strike-api/internal/repository"
	"github.com/Ziad-Belal/strike-api/internal/router"
	"github.com/Ziad-Belal/strike-api/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env in development; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting strike API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := database.RunMigrations(cfg.Database, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	promoRepo := repository.NewPromoRepository(pool, logger)
	profileRepo := repository.NewProfileRepository(pool, logger)

	// Bulk promo import, with S3 and local fallback.
	if len(cfg.Promo.ImportPaths) > 0 {
		var loader promo.Loader
		if cfg.S3.Enabled {
			s3Loader, err := promo.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 loader, falling back to local file system")
				loader = promo.NewFileLoader(logger)
			} else {
				loader = s3Loader
			}
		} else {
			loader = promo.NewFileLoader(logger)
		}

		importer := promo.NewImporter(loader, promoRepo, logger)
		count, err := promo.ImportAll(ctx, importer, cfg.Promo.ImportPaths, logger)
		if err != nil {
			return fmt.Errorf("failed to import promo codes: %w", err)
		}
		logger.Info().Int("count", count).Msg("promo codes imported at startup")
	}

	// Cart snapshot store.
	var snaps cart.Snapshotter
	if cfg.Cart.Backend == config.CartBackendRedis {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Cart.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		snaps = cart.NewRedisSnapshotter(redisClient, logger)
	} else {
		snaps, err = cart.NewFileSnapshotter(cfg.Cart.SnapshotDir, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize cart snapshots: %w", err)
		}
	}
	carts := cart.NewManager(snaps, logger)

	// Core components.
	calc := pricing.NewCalculator(cfg.Shipping.FlatRate, cfg.Shipping.Currency)
	gate := profile.NewGate(logger)
	evaluator := promo.NewEvaluator(promoRepo, logger)

	var channel notify.Channel
	if cfg.Notify.Enabled {
		channel = notify.NewResendChannel(cfg.Notify.ResendAPIKey, cfg.Notify.FromAddress, logger)
	} else {
		channel = notify.NopChannel(logger)
		logger.Info().Msg("order notifications disabled")
	}
	dispatcher := notify.NewDispatcher(channel, calc, cfg.Notify.FromAddress, cfg.Notify.OpsAddress, logger)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, logger)
	profileService := service.NewProfileService(profileRepo, logger)

	orchestrator := checkout.NewOrchestrator(
		profileRepo,
		gate,
		evaluator,
		calc,
		orderService,
		promoRepo,
		dispatcher,
		logger,
	)

	// Identity change observation.
	verifier := auth.NewTokenVerifier(cfg.Auth.JWTSecret, logger)
	broadcaster := auth.NewBroadcaster(logger)
	unsubscribe := broadcaster.Subscribe(func(id *auth.Identity) {
		if id != nil {
			logger.Debug().Str("user_id", id.UserID).Msg("identity seen")
		}
	})
	defer unsubscribe()

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Cart:     handler.NewCartHandler(carts, productService, logger),
		Promo:    handler.NewPromoHandler(evaluator, promoRepo, logger),
		Profile:  handler.NewProfileHandler(profileService, logger),
		Checkout: handler.NewCheckoutHandler(orchestrator, carts, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
	}

	mux := router.New(handlers, verifier, broadcaster, profileRepo, logger)

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

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
