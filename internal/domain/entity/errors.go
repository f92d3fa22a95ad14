package entity

import "errors"

var (
	// ErrWalletNotFound is returned by balance sources for an unknown wallet.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrPricesUnavailable is returned when no price table could be produced,
	// neither fresh nor previously cached.
	ErrPricesUnavailable = errors.New("prices unavailable")
	// ErrInvalidCurrency is returned when a swap side has no usable non-zero price.
	ErrInvalidCurrency = errors.New("invalid currency selected")
	// ErrInvalidSwapAmount is returned for amounts below MinSwapAmount, non-finite
	// amounts and results that do not fit in a float64.
	ErrInvalidSwapAmount = errors.New("invalid swap amount")
)
