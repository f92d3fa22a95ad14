package entity

// WalletRowViewModel is a display-ready record derived from one WalletBalance.
type WalletRowViewModel struct {
	Currency        string  `json:"currency"`
	Blockchain      string  `json:"blockchain"`
	Amount          float64 `json:"amount"`
	FormattedAmount string  `json:"formattedAmount"`
	USDValue        float64 `json:"usdValue"`
	// PriceAvailable is false when the price table had no usable entry for
	// Currency or the resulting value is out of range; USDValue is then 0.
	PriceAvailable bool `json:"priceAvailable"`
}

// ExclusionReason explains why a balance produced no row.
type ExclusionReason string

const (
	ExcludedUnknownBlockchain ExclusionReason = "unknown_blockchain"
	ExcludedNonPositiveAmount ExclusionReason = "non_positive_amount"
	ExcludedInvalidAmount     ExclusionReason = "invalid_amount"
)

// WalletRows is the result of one pipeline run.
type WalletRows struct {
	Rows          []WalletRowViewModel `json:"rows"`
	TotalUSDValue float64              `json:"totalUSDValue"`
	// TotalUSDCapped is set when the sum exceeded the float64 range and
	// TotalUSDValue was clamped.
	TotalUSDCapped     bool                    `json:"totalUSDCapped,omitempty"`
	Excluded           map[ExclusionReason]int `json:"excluded"`
	UnpricedCurrencies []string                `json:"unpricedCurrencies"`
}

// WalletPage is WalletRows bound to the wallet it was computed for.
type WalletPage struct {
	WalletAddress string `json:"walletAddress"`
	WalletRows
}
