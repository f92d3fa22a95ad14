package service

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"wallet_view/internal/domain/entity"
	"wallet_view/internal/infrastructure/configloader"
)

func testPriceConfig(static map[string]float64) *configloader.Config {
	return &configloader.Config{
		PriceFeed: configloader.PriceFeedConfig{
			CacheTTLMinutes: 5,
			StaticPrices:    static,
		},
	}
}

func TestLatestPricesPrefersNewestDate(t *testing.T) {
	t0 := time.Date(2023, 8, 29, 7, 10, 0, 0, time.UTC)
	quotes := []entity.PriceQuote{
		{Currency: "ETH", Date: t0.Add(time.Minute), Price: 1650},
		{Currency: "ETH", Date: t0, Price: 1600},
		{Currency: "USD", Date: t0, Price: 1},
		{Currency: "USD", Date: t0, Price: 1.01},
		{Currency: "", Date: t0, Price: 3},
		{Currency: "BAD", Date: t0, Price: math.Inf(1)},
		{Currency: "NEG", Date: t0, Price: -1},
	}
	got := LatestPrices(quotes)
	want := entity.PriceTable{"ETH": 1650, "USD": 1.01}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPriceServiceMergesStaticUnderFeed(t *testing.T) {
	feed := &fakeFeed{quotes: []entity.PriceQuote{{Currency: "ETH", Price: 2000}}}
	metrics := &recordingMetrics{}
	svc := NewPriceService(feed, nopLogger{}, metrics, testPriceConfig(map[string]float64{"ETH": 1, "USD": 1}))

	prices, err := svc.GetPrices(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := entity.PriceTable{"ETH": 2000, "USD": 1}
	if !reflect.DeepEqual(prices, want) {
		t.Fatalf("expected %v, got %v", want, prices)
	}
	if len(metrics.refreshes) != 1 || !metrics.refreshes[0] {
		t.Fatalf("expected one successful refresh observation, got %v", metrics.refreshes)
	}
}

func TestPriceServiceCachesTable(t *testing.T) {
	feed := &fakeFeed{quotes: []entity.PriceQuote{{Currency: "ETH", Price: 2000}}}
	svc := NewPriceService(feed, nopLogger{}, nil, testPriceConfig(nil))

	if err := svc.LoadAndCachePrices(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.GetPrices(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	if feed.callCount() != 1 {
		t.Fatalf("expected a single feed call, got %d", feed.callCount())
	}
}

func TestPriceServiceReturnsCopies(t *testing.T) {
	feed := &fakeFeed{quotes: []entity.PriceQuote{{Currency: "ETH", Price: 2000}}}
	svc := NewPriceService(feed, nopLogger{}, nil, testPriceConfig(nil))

	first, err := svc.GetPrices(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	first["ETH"] = 1

	second, _ := svc.GetPrices(context.Background())
	if second["ETH"] != 2000 {
		t.Fatalf("cached table was mutated through a returned copy: %v", second)
	}
}

func TestPriceServiceFallsBackToLastGood(t *testing.T) {
	feed := &fakeFeed{quotes: []entity.PriceQuote{{Currency: "ETH", Price: 2000}}}
	impl := NewPriceService(feed, nopLogger{}, nil, testPriceConfig(nil)).(*priceServiceImpl)

	if err := impl.LoadAndCachePrices(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	impl.pricesCache.Flush()
	feed.set(nil, errors.New("upstream down"))

	prices, err := impl.GetPrices(context.Background())
	if err != nil {
		t.Fatalf("expected stale prices, got error %v", err)
	}
	if prices["ETH"] != 2000 {
		t.Fatalf("expected stale ETH price, got %v", prices)
	}
}

func TestPriceServiceErrorWithoutHistory(t *testing.T) {
	feed := &fakeFeed{err: errors.New("upstream down")}
	metrics := &recordingMetrics{}
	svc := NewPriceService(feed, nopLogger{}, metrics, testPriceConfig(nil))

	_, err := svc.GetPrices(context.Background())
	if !errors.Is(err, entity.ErrPricesUnavailable) {
		t.Fatalf("expected ErrPricesUnavailable, got %v", err)
	}
	if len(metrics.refreshes) != 1 || metrics.refreshes[0] {
		t.Fatalf("expected one failed refresh observation, got %v", metrics.refreshes)
	}
}

func TestPriceServiceStaticOnly(t *testing.T) {
	svc := NewPriceService(nil, nopLogger{}, nil, testPriceConfig(map[string]float64{"USD": 1}))
	prices, err := svc.GetPrices(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(prices, entity.PriceTable{"USD": 1}) {
		t.Fatalf("unexpected prices %v", prices)
	}
}

func TestPriceServiceRefreshIgnoresCallerCancellation(t *testing.T) {
	feed := &fakeFeed{quotes: []entity.PriceQuote{{Currency: "ETH", Price: 2000}}}
	svc := NewPriceService(feed, nopLogger{}, nil, testPriceConfig(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prices, err := svc.GetPrices(ctx)
	if err != nil {
		t.Fatalf("expected refresh to complete for a cancelled caller, got %v", err)
	}
	if prices["ETH"] != 2000 {
		t.Fatalf("expected ETH price, got %v", prices)
	}
}
