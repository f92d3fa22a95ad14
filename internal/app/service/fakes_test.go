package service

import (
	"context"
	"sync"

	"wallet_view/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fakeFeed struct {
	mu     sync.Mutex
	quotes []entity.PriceQuote
	err    error
	calls  int
}

func (f *fakeFeed) FetchQuotes(ctx context.Context) ([]entity.PriceQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return append([]entity.PriceQuote(nil), f.quotes...), nil
}

func (f *fakeFeed) set(quotes []entity.PriceQuote, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes = quotes
	f.err = err
}

func (f *fakeFeed) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeBalances struct {
	wallets map[string][]entity.WalletBalance
}

func (f fakeBalances) GetBalances(_ context.Context, walletAddress string) ([]entity.WalletBalance, error) {
	balances, ok := f.wallets[walletAddress]
	if !ok {
		return nil, entity.ErrWalletNotFound
	}
	return balances, nil
}

func (f fakeBalances) ListWallets(context.Context) ([]string, error) {
	out := make([]string, 0, len(f.wallets))
	for address := range f.wallets {
		out = append(out, address)
	}
	return out, nil
}

type staticPrices struct {
	table entity.PriceTable
	err   error
}

func (p staticPrices) GetPrices(context.Context) (entity.PriceTable, error) {
	return p.table, p.err
}

type recordingMetrics struct {
	mu        sync.Mutex
	rows      []entity.WalletRows
	refreshes []bool
}

func (m *recordingMetrics) ObserveWalletRows(result entity.WalletRows) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, result)
}

func (m *recordingMetrics) ObservePriceRefresh(success bool, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes = append(m.refreshes, success)
}
