package service

import (
	"fmt"
	"math"

	"wallet_view/internal/domain/entity"
	"wallet_view/internal/pkg/utils"

	"github.com/shopspring/decimal"
)

// SwapQuote converts amount of from into to using USD unit prices:
// result = amount * prices[from] / prices[to], formatted with 4 decimals.
func SwapQuote(amount float64, from, to string, prices entity.PriceTable) (entity.Quote, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < entity.MinSwapAmount {
		return entity.Quote{}, fmt.Errorf("%w: %v must be at least %v", entity.ErrInvalidSwapAmount, amount, entity.MinSwapAmount)
	}
	fromPrice, err := swapPrice(prices, from)
	if err != nil {
		return entity.Quote{}, err
	}
	toPrice, err := swapPrice(prices, to)
	if err != nil {
		return entity.Quote{}, err
	}

	rate := fromPrice.Div(toPrice)
	result := decimal.NewFromFloat(amount).Mul(rate)

	rateValue, ok := utils.ToFloat(rate)
	if !ok {
		return entity.Quote{}, fmt.Errorf("%w: rate %s/%s out of range", entity.ErrInvalidSwapAmount, from, to)
	}
	resultValue, ok := utils.ToFloat(result)
	if !ok {
		return entity.Quote{}, fmt.Errorf("%w: result out of range", entity.ErrInvalidSwapAmount)
	}

	return entity.Quote{
		From:            from,
		To:              to,
		Amount:          amount,
		Rate:            rateValue,
		Result:          resultValue,
		FormattedResult: result.StringFixed(4),
	}, nil
}

func swapPrice(prices entity.PriceTable, currency string) (decimal.Decimal, error) {
	price, ok := prices.Price(currency)
	if !ok || price == 0 {
		return decimal.Zero, fmt.Errorf("%w: %q", entity.ErrInvalidCurrency, currency)
	}
	return decimal.NewFromFloat(price), nil
}
