// PayPal Pro add-on service
//
// This is the main entry point for the add-on the host platform calls for
// checkout hooks and the admin settings pages.
// It wires up all dependencies and starts the HTTP server.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/exchangeaddons/paypal-pro/config"
	"github.com/exchangeaddons/paypal-pro/internal/adapters/form"
	"github.com/exchangeaddons/paypal-pro/internal/adapters/ledger"
	"github.com/exchangeaddons/paypal-pro/internal/adapters/nonce"
	"github.com/exchangeaddons/paypal-pro/internal/adapters/options"
	"github.com/exchangeaddons/paypal-pro/internal/adapters/paypalpro"
	"github.com/exchangeaddons/paypal-pro/internal/adapters/session"
	"github.com/exchangeaddons/paypal-pro/internal/api"
	"github.com/exchangeaddons/paypal-pro/internal/core/ports"
	"github.com/exchangeaddons/paypal-pro/internal/core/service"
	"github.com/exchangeaddons/paypal-pro/internal/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := telemetry.NewLogger("paypal-pro-addon", cfg.Debug())
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting PayPal Pro add-on",
		zap.String("port", cfg.Server.Port),
		zap.String("options_backend", cfg.Storage.OptionsBackend),
	)

	// Validate required configuration
	if err := validateConfig(cfg, logger); err != nil {
		logger.Fatal("Configuration error", zap.Error(err))
	}

	ctx := context.Background()

	// Infrastructure Layer
	store, closeStore, err := newOptionsStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to set up options store", zap.Error(err))
	}
	defer closeStore()

	txnLedger, closeLedger, err := newLedger(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to set up ledger", zap.Error(err))
	}
	defer closeLedger()

	nonces := nonce.NewService(cfg.Security.NonceSecret, cfg.Security.NonceTTL)

	// Service Layer
	settingsService := service.NewSettingsService(store, nonces, form.NewSettingsForm(), logger)
	gateway := paypalpro.NewClient(settingsService, paypalpro.Options{
		LiveEndpoint:    cfg.PayPal.LiveEndpoint,
		SandboxEndpoint: cfg.PayPal.SandboxEndpoint,
		Version:         cfg.PayPal.APIVersion,
		Timeout:         cfg.PayPal.Timeout,
	})
	dialog := form.NewPurchaseDialog(nonces, settingsService)
	transactionService := service.NewTransactionService(
		gateway,               // implements ports.PaymentGateway
		nonces,                // implements ports.NonceService
		session.NewResolver(), // implements ports.CustomerResolver
		txnLedger,             // implements ports.Ledger
		dialog,                // implements ports.PurchaseDialog
		logger,
	)

	// API Layer
	handler := api.NewHandler(transactionService, settingsService, logger)
	router := api.SetupRouter(handler, cfg.Server.GinMode, cfg.Security.HostAPIKey, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// validateConfig checks that required configuration values are set.
func validateConfig(cfg *config.Config, logger *zap.Logger) error {
	if cfg.Security.NonceSecret == "" {
		return fmt.Errorf("NONCE_SECRET is required")
	}
	switch cfg.Storage.OptionsBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("OPTIONS_BACKEND must be memory or redis, got %q", cfg.Storage.OptionsBackend)
	}
	if cfg.Security.HostAPIKey == "" {
		logger.Warn("HOST_API_KEY not set, hook and admin routes are unauthenticated")
	}
	if cfg.Storage.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, transactions are kept in memory")
	}
	return nil
}

func newOptionsStore(ctx context.Context, cfg *config.Config) (ports.OptionsStore, func(), error) {
	if cfg.Storage.OptionsBackend != "redis" {
		return options.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return options.NewRedisStore(client, cfg.Storage.RedisPrefix), func() { _ = client.Close() }, nil
}

func newLedger(ctx context.Context, cfg *config.Config) (ports.Ledger, func(), error) {
	if cfg.Storage.DatabaseURL == "" {
		return ledger.NewMemoryLedger(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.Storage.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	pg := ledger.NewPostgresLedger(db)
	if err := pg.InitDB(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return pg, func() { _ = db.Close() }, nil
}
