package pricefeed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet_view/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// quoteDTO mirrors one element of the feed response.
type quoteDTO struct {
	Currency string  `json:"currency"`
	Date     string  `json:"date"`
	Price    float64 `json:"price"`
}

// Client fetches the price list from an HTTP JSON feed.
type Client struct {
	client  *fasthttp.Client
	url     string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a new price feed client. Requests are throttled to
// ratePerSecond with the given burst.
func NewClient(url string, timeout time.Duration, ratePerSecond float64, burst int, logger *zap.Logger) *Client {
	return &Client{
		client:  &fasthttp.Client{},
		url:     strings.TrimSpace(url),
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		logger:  logger.Named("PriceFeedClient"),
	}
}

// FetchQuotes implements port.PriceFeedClient.
func (c *Client) FetchQuotes(ctx context.Context) ([]entity.PriceQuote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("price feed rate limiter: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	c.logger.Debug("Requesting prices", zap.String("url", c.url))

	deadline, ok := ctx.Deadline()
	if !ok || time.Until(deadline) > c.timeout {
		deadline = time.Now().Add(c.timeout)
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Error("Failed to execute price feed request", zap.String("url", c.url), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", c.url, err)
	}

	body := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Price feed request failed",
			zap.String("url", c.url),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", body))
		return nil, fmt.Errorf("price feed request to %s failed with status %d", c.url, resp.StatusCode())
	}

	quotes, err := DecodeQuotes(body)
	if err != nil {
		c.logger.Error("Failed to decode price feed response", zap.String("url", c.url), zap.Error(err))
		return nil, err
	}
	c.logger.Debug("Decoded price feed response", zap.Int("quotes", len(quotes)))
	return quotes, nil
}

// DecodeQuotes parses a feed body. Entries whose date cannot be parsed keep a
// zero Date rather than failing the whole response.
func DecodeQuotes(body []byte) ([]entity.PriceQuote, error) {
	var dtos []quoteDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal price feed response: %w", err)
	}

	quotes := make([]entity.PriceQuote, 0, len(dtos))
	for _, dto := range dtos {
		quote := entity.PriceQuote{Currency: dto.Currency, Price: dto.Price}
		if parsed, err := time.Parse(time.RFC3339Nano, dto.Date); err == nil {
			quote.Date = parsed
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}
