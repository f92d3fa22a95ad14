package port

import (
	"context"

	"wallet_view/internal/domain/entity"
)

// PriceFeedClient fetches raw quotes from an upstream price feed.
type PriceFeedClient interface {
	FetchQuotes(ctx context.Context) ([]entity.PriceQuote, error)
}

// PriceProvider supplies the current price table.
type PriceProvider interface {
	GetPrices(ctx context.Context) (entity.PriceTable, error)
}

// PriceService is a PriceProvider that can be warmed up ahead of the first request.
type PriceService interface {
	PriceProvider
	LoadAndCachePrices(ctx context.Context) error
}
