package utils

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatWholeAmount(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{2, "2"},
		{0.5, "1"},
		{0.4, "0"},
		{2.4, "2"},
		{2.5, "3"},
		{1234.5, "1235"},
		{100, "100"},
		{1000000.49, "1000000"},
	}
	for _, tc := range cases {
		if got := FormatWholeAmount(tc.amount); got != tc.want {
			t.Fatalf("FormatWholeAmount(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestUSDValue(t *testing.T) {
	cases := []struct {
		price, amount, want float64
	}{
		{30000, 0.5, 15000},
		{1, 100, 100},
		{2000, 2, 4000},
		{0.02, 1000, 20},
		{0.1, 3, 0.3},
		{0, 5, 0},
	}
	for _, tc := range cases {
		got, ok := USDValue(tc.price, tc.amount)
		if !ok || got != tc.want {
			t.Fatalf("USDValue(%v, %v) = %v, %v, want %v, true", tc.price, tc.amount, got, ok, tc.want)
		}
	}
}

func TestUSDValueOutOfRange(t *testing.T) {
	got, ok := USDValue(1e10, 1e300)
	if ok || got != 0 {
		t.Fatalf("expected out-of-range product to be rejected, got %v, %v", got, ok)
	}
}

func TestSumUSD(t *testing.T) {
	if got, ok := SumUSD(0.1, 0.2); !ok || got != 0.3 {
		t.Fatalf("expected 0.3, got %v (ok=%v)", got, ok)
	}
	if got, ok := SumUSD(); !ok || got != 0 {
		t.Fatalf("expected 0 for empty input, got %v (ok=%v)", got, ok)
	}
}

func TestSumUSDClampsOverflow(t *testing.T) {
	got, ok := SumUSD(1e308, 1e308)
	if ok {
		t.Fatalf("expected overflow to be reported")
	}
	if got != math.MaxFloat64 {
		t.Fatalf("expected total clamped to MaxFloat64, got %v", got)
	}
	if got, _ := SumUSD(math.Inf(1), 2); got != 2 {
		t.Fatalf("expected non-finite values to be skipped, got %v", got)
	}
}

func TestToFloat(t *testing.T) {
	if f, ok := ToFloat(decimal.RequireFromString("0.3")); !ok || f != 0.3 {
		t.Fatalf("expected inexact value to convert, got %v, %v", f, ok)
	}
	if _, ok := ToFloat(decimal.RequireFromString("1e400")); ok {
		t.Fatalf("expected 1e400 to be out of range")
	}
}
