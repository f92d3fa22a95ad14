package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// FormatWholeAmount renders amount with zero decimal digits, rounding half
// away from zero. Example: 0.5 => "1", 2.4 => "2", 1234.5 => "1235".
func FormatWholeAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(0)
}

// USDValue multiplies a unit price by an amount using decimal arithmetic so
// that e.g. 0.02 * 1000 yields exactly 20. ok is false when the product does
// not fit in a float64.
func USDValue(price, amount float64) (float64, bool) {
	return ToFloat(decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(amount)))
}

// SumUSD adds finite values in decimal arithmetic. When the sum does not fit
// in a float64 it is clamped to ±math.MaxFloat64 and ok is false.
func SumUSD(values ...float64) (float64, bool) {
	total := decimal.Zero
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, ok := ToFloat(total)
	if !ok {
		return math.Copysign(math.MaxFloat64, float64(total.Sign())), false
	}
	return f, true
}

// ToFloat converts d to a float64. Rounding to the nearest float is accepted;
// ok is false only when d is out of float64 range.
func ToFloat(d decimal.Decimal) (float64, bool) {
	f, exact := d.Float64()
	if !exact && math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
