package port

import (
	"context"

	"wallet_view/internal/domain/entity"
)

// WalletPageService produces display rows for wallets.
type WalletPageService interface {
	GetWalletRows(ctx context.Context, walletAddress string) (entity.WalletPage, error)
	Policy() entity.PriorityPolicy
}
