package entity

import (
	"math"
	"time"
)

// PriceTable maps a currency code to its USD unit price.
type PriceTable map[string]float64

// Price returns the usable price for currency. A NaN, infinite or negative
// entry is reported the same way as a missing one.
func (t PriceTable) Price(currency string) (float64, bool) {
	price, ok := t[currency]
	if !ok || !ValidPrice(price) {
		return 0, false
	}
	return price, true
}

// ValidPrice reports whether price is finite and not negative.
func ValidPrice(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price >= 0
}

// Clone returns an independent copy of the table.
func (t PriceTable) Clone() PriceTable {
	out := make(PriceTable, len(t))
	for currency, price := range t {
		out[currency] = price
	}
	return out
}

// PriceQuote is a single entry of the upstream price feed.
type PriceQuote struct {
	Currency string    `json:"currency"`
	Date     time.Time `json:"date"`
	Price    float64   `json:"price"`
}
