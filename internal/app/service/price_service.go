package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wallet_view/internal/app/port"
	"wallet_view/internal/domain/entity"
	"wallet_view/internal/infrastructure/configloader"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const pricesCacheKey = "prices"

// priceServiceImpl implements port.PriceService on top of a price feed client.
type priceServiceImpl struct {
	feedClient   port.PriceFeedClient // nil when the feed is disabled
	logger       port.Logger
	metrics      port.MetricsRecorder
	staticPrices entity.PriceTable
	pricesCache  *cache.Cache
	refreshGroup singleflight.Group

	// lastGood is served when a refresh fails after the cache entry expired.
	lastGood   entity.PriceTable
	lastGoodMu sync.RWMutex
}

// NewPriceService creates a new PriceService. feedClient may be nil, in which
// case only the configured static prices are served.
func NewPriceService(
	feedClient port.PriceFeedClient,
	l port.Logger,
	metrics port.MetricsRecorder,
	cfg *configloader.Config,
) port.PriceService {
	ttl := time.Duration(cfg.PriceFeed.CacheTTLMinutes) * time.Minute
	s := &priceServiceImpl{
		feedClient:   feedClient,
		logger:       l,
		metrics:      metrics,
		staticPrices: entity.PriceTable(cfg.PriceFeed.StaticPrices).Clone(),
		pricesCache:  cache.New(ttl, 2*ttl),
	}
	l.Info("PriceService initialized", "feed_enabled", feedClient != nil, "static_prices", len(s.staticPrices), "cache_ttl", ttl.String())
	return s
}

// LoadAndCachePrices fetches the feed once and stores the result.
func (s *priceServiceImpl) LoadAndCachePrices(ctx context.Context) error {
	s.logger.Info("Starting to load and cache prices...")
	table, err := s.refresh(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("Finished loading and caching prices.", "currencies", len(table))
	return nil
}

// GetPrices returns a copy of the cached price table, refreshing it when expired.
func (s *priceServiceImpl) GetPrices(ctx context.Context) (entity.PriceTable, error) {
	if cached, ok := s.pricesCache.Get(pricesCacheKey); ok {
		return cached.(entity.PriceTable).Clone(), nil
	}

	table, err := s.refresh(ctx)
	if err == nil {
		return table.Clone(), nil
	}

	s.lastGoodMu.RLock()
	stale := s.lastGood
	s.lastGoodMu.RUnlock()
	if stale != nil {
		s.logger.Warn("Price refresh failed, serving last known prices", "error", err, "currencies", len(stale))
		return stale.Clone(), nil
	}
	return nil, err
}

// refresh fetches and caches a new table. Concurrent callers share one fetch,
// which is detached from the cancellation of whichever caller started it; the
// feed client's own request timeout bounds it.
func (s *priceServiceImpl) refresh(ctx context.Context) (entity.PriceTable, error) {
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := s.refreshGroup.Do(pricesCacheKey, func() (any, error) {
		return s.fetch(fetchCtx)
	})
	if shared {
		s.logger.Debug("Joined in-flight price refresh")
	}
	if err != nil {
		return nil, err
	}
	return v.(entity.PriceTable), nil
}

func (s *priceServiceImpl) fetch(ctx context.Context) (entity.PriceTable, error) {
	table := s.staticPrices.Clone()

	if s.feedClient == nil {
		s.pricesCache.SetDefault(pricesCacheKey, table)
		s.remember(table)
		return table, nil
	}

	quotes, err := s.feedClient.FetchQuotes(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch prices from feed", "error", err)
		s.observeRefresh(false, 0)
		return nil, fmt.Errorf("%w: %v", entity.ErrPricesUnavailable, err)
	}

	for currency, price := range LatestPrices(quotes) {
		table[currency] = price
	}

	s.pricesCache.SetDefault(pricesCacheKey, table)
	s.remember(table)
	s.observeRefresh(true, len(table))
	s.logger.Debug("Cached price table", "quotes", len(quotes), "currencies", len(table))
	return table, nil
}

func (s *priceServiceImpl) remember(table entity.PriceTable) {
	s.lastGoodMu.Lock()
	s.lastGood = table
	s.lastGoodMu.Unlock()
}

func (s *priceServiceImpl) observeRefresh(success bool, currencies int) {
	if s.metrics != nil {
		s.metrics.ObservePriceRefresh(success, currencies)
	}
}

// LatestPrices reduces feed quotes to one price per currency. The quote with
// the latest date wins; on equal dates the later quote in the slice wins.
// Quotes without a currency or with an unusable price are skipped.
func LatestPrices(quotes []entity.PriceQuote) entity.PriceTable {
	table := make(entity.PriceTable, len(quotes))
	dates := make(map[string]time.Time, len(quotes))
	for _, q := range quotes {
		if q.Currency == "" {
			continue
		}
		if !entity.ValidPrice(q.Price) {
			continue
		}
		if seen, ok := dates[q.Currency]; ok && q.Date.Before(seen) {
			continue
		}
		table[q.Currency] = q.Price
		dates[q.Currency] = q.Date
	}
	return table
}
