package port

import (
	"context"

	"wallet_view/internal/domain/entity"
)

// BalanceProvider supplies the current balances of a wallet.
type BalanceProvider interface {
	// GetBalances returns entity.ErrWalletNotFound (wrapped) for unknown wallets.
	GetBalances(ctx context.Context, walletAddress string) ([]entity.WalletBalance, error)
	// ListWallets returns the known wallet addresses in a stable order.
	ListWallets(ctx context.Context) ([]string, error)
}
