package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet_view/internal/app/port"
	"wallet_view/internal/app/service"
	"wallet_view/internal/infrastructure/balanceloader"
	"wallet_view/internal/infrastructure/configloader"
	"wallet_view/internal/infrastructure/pricefeed"
	"wallet_view/internal/infrastructure/restapi"
	"wallet_view/internal/pkg/logger"
	"wallet_view/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultConfigPath = "config/config.yml"

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration %s: %v\n", configPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.Init(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	logger.Info("Wallet view service starting", "config", configPath, "log_level", cfg.Logging.Level)

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	var feedClient port.PriceFeedClient
	if cfg.PriceFeed.URL != "" {
		feedClient = pricefeed.NewClient(
			cfg.PriceFeed.URL,
			time.Duration(cfg.PriceFeed.RequestTimeoutMillis)*time.Millisecond,
			cfg.PriceFeed.RateLimitPerSecond,
			cfg.PriceFeed.RateLimitBurst,
			zapLogger,
		)
	} else {
		logger.Warn("Price feed disabled, serving static prices only")
	}

	priceService := service.NewPriceService(feedClient, logger.NewSlogAdapter("PriceService"), recorder, cfg)

	// Warm the cache in the background; requests refresh on demand if this fails.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := priceService.LoadAndCachePrices(ctx); err != nil {
			logger.Error("Initial price load failed", "error", err)
		}
	}()

	balanceProvider := balanceloader.NewBalanceFileLoader(cfg.Balances.File, logger.NewSlogAdapter("BalanceFileLoader"))
	policy := cfg.PriorityPolicy()
	walletPageService := service.NewWalletPageService(
		balanceProvider,
		priceService,
		policy,
		recorder,
		logger.NewSlogAdapter("WalletPageService"),
	)
	logger.Info("Priority policy loaded", "blockchains", len(policy.Entries()))

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := restapi.NewWalletHandler(walletPageService, priceService, balanceProvider, logger.NewSlogAdapter("WalletHandler"))
	routerOpts := restapi.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:         zapLogger.Named("http"),
	}
	if cfg.Swagger.Enabled {
		routerOpts.SwaggerSpecFile = cfg.Swagger.SpecFile
	}
	router := restapi.SetupRouter(handler, routerOpts)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Shutdown signal received, stopping HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", "error", err)
	} else {
		logger.Info("HTTP server stopped.")
	}
}
