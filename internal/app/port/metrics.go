package port

import "wallet_view/internal/domain/entity"

// MetricsRecorder receives pipeline and price feed observations.
type MetricsRecorder interface {
	ObserveWalletRows(result entity.WalletRows)
	ObservePriceRefresh(success bool, currencies int)
}
