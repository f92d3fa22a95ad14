package balanceloader

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"wallet_view/internal/app/port"
	"wallet_view/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BalanceFileLoader implements port.BalanceProvider by reading a JSON snapshot
// of the form {"<wallet>": [{"currency": "...", "amount": 1, "blockchain": "..."}]}.
// The file is re-read on every call so edits are picked up without a restart.
type BalanceFileLoader struct {
	filePath string
	logger   port.Logger
}

// NewBalanceFileLoader creates a new BalanceFileLoader.
func NewBalanceFileLoader(filePath string, logger port.Logger) *BalanceFileLoader {
	return &BalanceFileLoader{
		filePath: filePath,
		logger:   logger,
	}
}

// NormalizeWalletAddress returns the checksummed form of EVM hex addresses and
// the trimmed input for any other identifier.
func NormalizeWalletAddress(address string) string {
	trimmed := strings.TrimSpace(address)
	if common.IsHexAddress(trimmed) {
		return common.HexToAddress(trimmed).Hex()
	}
	return trimmed
}

func (l *BalanceFileLoader) load() (map[string][]entity.WalletBalance, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance file %s: %w", l.filePath, err)
	}

	var raw map[string][]entity.WalletBalance
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance file %s: %w", l.filePath, err)
	}

	// Keys that normalise to the same wallet are merged in sorted key order.
	keys := make([]string, 0, len(raw))
	for address := range raw {
		keys = append(keys, address)
	}
	sort.Strings(keys)

	wallets := make(map[string][]entity.WalletBalance, len(raw))
	for _, address := range keys {
		balances := raw[address]
		normalized := NormalizeWalletAddress(address)
		if normalized == "" {
			l.logger.Warn("Skipping balances with empty wallet address", "file", l.filePath, "count", len(balances))
			continue
		}
		if _, dup := wallets[normalized]; dup {
			l.logger.Warn("Merging balances of duplicate wallet key", "file", l.filePath, "key", address, "wallet", normalized)
		}
		wallets[normalized] = append(wallets[normalized], balances...)
	}
	return wallets, nil
}

// GetBalances returns the balances recorded for walletAddress.
func (l *BalanceFileLoader) GetBalances(_ context.Context, walletAddress string) ([]entity.WalletBalance, error) {
	wallets, err := l.load()
	if err != nil {
		return nil, err
	}

	balances, ok := wallets[NormalizeWalletAddress(walletAddress)]
	if !ok {
		l.logger.Debug("Wallet not found in balance file", "address", walletAddress, "path", l.filePath)
		return nil, fmt.Errorf("%w: %s", entity.ErrWalletNotFound, walletAddress)
	}
	l.logger.Debug("Balances loaded from file", "address", walletAddress, "count", len(balances))
	return balances, nil
}

// ListWallets returns every wallet in the file, sorted.
func (l *BalanceFileLoader) ListWallets(_ context.Context) ([]string, error) {
	wallets, err := l.load()
	if err != nil {
		return nil, err
	}
	addresses := make([]string, 0, len(wallets))
	for address := range wallets {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)
	return addresses, nil
}
