package entity

import "math"

// WalletBalance represents the amount of a currency held by a wallet on a blockchain.
type WalletBalance struct {
	Currency   string  `json:"currency" yaml:"currency"`
	Amount     float64 `json:"amount" yaml:"amount"`
	Blockchain string  `json:"blockchain" yaml:"blockchain"`
}

// HasFiniteAmount reports whether Amount is neither NaN nor infinite.
func (b WalletBalance) HasFiniteAmount() bool {
	return !math.IsNaN(b.Amount) && !math.IsInf(b.Amount, 0)
}
