package restapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"wallet_view/internal/app/port"
	"wallet_view/internal/app/service"
	"wallet_view/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIErrorResponse is the body of every non-2xx response.
type APIErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// APIPricesResponse lists the current price table.
type APIPricesResponse struct {
	Prices entity.PriceTable `json:"prices"`
}

// APIPrioritiesResponse lists the active priority policy.
type APIPrioritiesResponse struct {
	ExcludeSentinel int                         `json:"excludeSentinel"`
	Priorities      []entity.BlockchainPriority `json:"priorities"`
}

// APIWalletsResponse lists the wallets with known balances.
type APIWalletsResponse struct {
	Wallets []string `json:"wallets"`
}

// APIQuoteRequest holds the query parameters of GET /api/v1/quote.
type APIQuoteRequest struct {
	Amount float64 `form:"amount" binding:"required"`
	From   string  `form:"from" binding:"required"`
	To     string  `form:"to" binding:"required"`
}

// WalletHandler serves wallet rows and the data they are derived from.
type WalletHandler struct {
	walletPageService port.WalletPageService
	priceProvider     port.PriceProvider
	balanceProvider   port.BalanceProvider
	logger            port.Logger
}

// NewWalletHandler creates a new instance of WalletHandler.
func NewWalletHandler(ws port.WalletPageService, pp port.PriceProvider, bp port.BalanceProvider, l port.Logger) *WalletHandler {
	return &WalletHandler{
		walletPageService: ws,
		priceProvider:     pp,
		balanceProvider:   bp,
		logger:            l,
	}
}

// GetWalletRowsHandler handles GET /api/v1/wallets/:walletAddress/rows.
func (h *WalletHandler) GetWalletRowsHandler(c *gin.Context) {
	walletAddress := strings.TrimSpace(c.Param("walletAddress"))
	if walletAddress == "" {
		h.abort(c, http.StatusBadRequest, errors.New("wallet address is required"))
		return
	}

	page, err := h.walletPageService.GetWalletRows(c.Request.Context(), walletAddress)
	if err != nil {
		h.abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListWalletsHandler handles GET /api/v1/wallets.
func (h *WalletHandler) ListWalletsHandler(c *gin.Context) {
	wallets, err := h.balanceProvider.ListWallets(c.Request.Context())
	if err != nil {
		h.abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, APIWalletsResponse{Wallets: wallets})
}

// GetPricesHandler handles GET /api/v1/prices.
func (h *WalletHandler) GetPricesHandler(c *gin.Context) {
	prices, err := h.priceProvider.GetPrices(c.Request.Context())
	if err != nil {
		h.abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, APIPricesResponse{Prices: prices})
}

// GetQuoteHandler handles GET /api/v1/quote?amount=&from=&to=.
func (h *WalletHandler) GetQuoteHandler(c *gin.Context) {
	var req APIQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.abort(c, http.StatusBadRequest, err)
		return
	}

	prices, err := h.priceProvider.GetPrices(c.Request.Context())
	if err != nil {
		h.abort(c, statusFor(err), err)
		return
	}
	quote, err := service.SwapQuote(req.Amount, strings.TrimSpace(req.From), strings.TrimSpace(req.To), prices)
	if err != nil {
		h.abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// GetPrioritiesHandler handles GET /api/v1/priorities.
func (h *WalletHandler) GetPrioritiesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, APIPrioritiesResponse{
		ExcludeSentinel: entity.ExcludeSentinel,
		Priorities:      h.walletPageService.Policy().Entries(),
	})
}

func (h *WalletHandler) abort(c *gin.Context, status int, err error) {
	requestID := c.GetString(requestIDKey)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.FullPath(), "status", status, "request_id", requestID, "error", err)
	} else {
		h.logger.Debug("Request rejected", "path", c.FullPath(), "status", status, "request_id", requestID, "error", err)
	}
	c.AbortWithStatusJSON(status, APIErrorResponse{Error: err.Error(), RequestID: requestID})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrWalletNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidCurrency), errors.Is(err, entity.ErrInvalidSwapAmount):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrPricesUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
