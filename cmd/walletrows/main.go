// Command walletrows prints the display rows of one wallet as JSON.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"wallet_view/internal/app/port"
	"wallet_view/internal/app/service"
	"wallet_view/internal/infrastructure/balanceloader"
	"wallet_view/internal/infrastructure/configloader"
	"wallet_view/internal/infrastructure/pricefeed"
	"wallet_view/internal/pkg/logger"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yml", "path to the YAML configuration")
	wallet := flag.String("wallet", "", "wallet address to render")
	offline := flag.Bool("offline", false, "skip the price feed and use static prices only")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if *wallet == "" {
		fmt.Fprintln(os.Stderr, "usage: walletrows -wallet <address> [-config path] [-offline]")
		os.Exit(2)
	}

	cfg, err := configloader.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr through zap; stdout carries only the JSON result.
	zapLogger, err := logger.Init(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	var feedClient port.PriceFeedClient
	if cfg.PriceFeed.URL != "" && !*offline {
		feedClient = pricefeed.NewClient(
			cfg.PriceFeed.URL,
			time.Duration(cfg.PriceFeed.RequestTimeoutMillis)*time.Millisecond,
			cfg.PriceFeed.RateLimitPerSecond,
			cfg.PriceFeed.RateLimitBurst,
			zapLogger,
		)
	}

	svc := service.NewWalletPageService(
		balanceloader.NewBalanceFileLoader(cfg.Balances.File, logger.NewSlogAdapter("BalanceFileLoader")),
		service.NewPriceService(feedClient, logger.NewSlogAdapter("PriceService"), nil, cfg),
		cfg.PriorityPolicy(),
		nil,
		logger.NewSlogAdapter("WalletPageService"),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	page, err := svc.GetWalletRows(ctx, *wallet)
	if err != nil {
		logger.Fatal("Failed to build wallet rows", "wallet", *wallet, "error", err)
	}

	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(page); err != nil {
		logger.Fatal("Failed to encode wallet rows", "error", err)
	}
}
