package service

import (
	"context"
	"fmt"

	"wallet_view/internal/app/port"
	"wallet_view/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

// WalletPageServiceImpl implements port.WalletPageService.
type WalletPageServiceImpl struct {
	balanceProvider port.BalanceProvider
	priceProvider   port.PriceProvider
	policy          entity.PriorityPolicy
	metrics         port.MetricsRecorder
	logger          port.Logger
}

// NewWalletPageService creates a new instance of WalletPageServiceImpl.
func NewWalletPageService(
	bp port.BalanceProvider,
	pp port.PriceProvider,
	policy entity.PriorityPolicy,
	metrics port.MetricsRecorder,
	l port.Logger,
) *WalletPageServiceImpl {
	return &WalletPageServiceImpl{
		balanceProvider: bp,
		priceProvider:   pp,
		policy:          policy,
		metrics:         metrics,
		logger:          l,
	}
}

// Policy returns the priority policy rows are ordered by.
func (s *WalletPageServiceImpl) Policy() entity.PriorityPolicy {
	return s.policy
}

// GetWalletRows loads the wallet balances and the current prices concurrently
// and turns them into display rows.
func (s *WalletPageServiceImpl) GetWalletRows(ctx context.Context, walletAddress string) (entity.WalletPage, error) {
	var (
		balances []entity.WalletBalance
		prices   entity.PriceTable
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		balances, err = s.balanceProvider.GetBalances(egCtx, walletAddress)
		if err != nil {
			return fmt.Errorf("failed to load balances for wallet %s: %w", walletAddress, err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		prices, err = s.priceProvider.GetPrices(egCtx)
		if err != nil {
			return fmt.Errorf("failed to load prices: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		s.logger.Error("Failed to prepare wallet rows", "wallet", walletAddress, "error", err)
		return entity.WalletPage{}, err
	}

	result := BuildWalletRows(balances, prices, s.policy)

	for reason, count := range result.Excluded {
		s.logger.Debug("Balances excluded from wallet rows", "wallet", walletAddress, "reason", string(reason), "count", count)
	}
	if len(result.UnpricedCurrencies) > 0 {
		s.logger.Warn("No price for displayed currencies, valued at zero", "wallet", walletAddress, "currencies", result.UnpricedCurrencies)
	}
	if s.metrics != nil {
		s.metrics.ObserveWalletRows(result)
	}
	s.logger.Info("Wallet rows built", "wallet", walletAddress, "balances", len(balances), "rows", len(result.Rows), "total_usd", result.TotalUSDValue)

	return entity.WalletPage{WalletAddress: walletAddress, WalletRows: result}, nil
}
