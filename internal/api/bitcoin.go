package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/XCLUSIIVE05/cashapp/internal/cache"
	"github.com/XCLUSIIVE05/cashapp/internal/domain"
	"github.com/XCLUSIIVE05/cashapp/internal/service"
)

// BuyRequest spends a cash amount on bitcoin.
type BuyRequest struct {
	CashAmount decimal.Decimal `json:"cash_amount" binding:"required"`
}

// SellRequest converts a bitcoin amount back to cash.
type SellRequest struct {
	BTCAmount decimal.Decimal `json:"btc_amount" binding:"required"`
}

// WalletResponse is the user's bitcoin wallet as rendered to clients.
type WalletResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// TradeResponse is one entry in the wallet's trade log.
type TradeResponse struct {
	ID        string `json:"id"`
	Amount    string `json:"amount"`
	CashValue string `json:"cash_value"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"created_at"`
}

func toTradeResponse(t domain.BitcoinTrade) TradeResponse {
	return TradeResponse{
		ID:        t.ID,
		Amount:    t.Amount.StringFixed(8),
		CashValue: t.CashValue.StringFixed(2),
		Kind:      string(t.Kind),
		CreatedAt: t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// PriceHandler quotes the current simulated bitcoin price.
func PriceHandler(eng *service.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"price": eng.Bitcoin.Quote().StringFixed(2)})
	}
}

// WalletHandler returns the user's bitcoin wallet, cached briefly since the
// balance only moves on the user's own trades.
func WalletHandler(eng *service.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()

		var cached WalletResponse
		if hit, err := cache.Get(ctx, rdb, cache.WalletKey(userID), &cached); err != nil {
			logrus.WithError(err).Warn("Wallet cache lookup failed")
		} else if hit {
			c.JSON(http.StatusOK, cached)
			return
		}

		wallet, err := eng.Bitcoin.Wallet(ctx, userID)
		if err != nil {
			fail(c, err)
			return
		}
		resp := WalletResponse{
			Address: wallet.Address,
			Balance: wallet.Balance.StringFixed(8),
		}
		if err := cache.Set(ctx, rdb, cache.WalletKey(userID), resp); err != nil {
			logrus.WithError(err).Warn("Wallet cache store failed")
		}
		c.JSON(http.StatusOK, resp)
	}
}

// BuyHandler purchases bitcoin with cash at the current simulated price.
func BuyHandler(eng *service.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req BuyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		result, err := eng.Bitcoin.Buy(ctx, userID, req.CashAmount)
		if err != nil {
			fail(c, err)
			return
		}
		cache.InvalidateUser(ctx, rdb, userID)
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Bitcoin purchased",
			"btc_amount":  result.BTCAmount.StringFixed(8),
			"cash_amount": result.CashAmount.StringFixed(2),
			"price":       result.Price.StringFixed(2),
		})
	}
}

// SellHandler sells bitcoin for cash at the current simulated price.
func SellHandler(eng *service.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req SellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		result, err := eng.Bitcoin.Sell(ctx, userID, req.BTCAmount)
		if err != nil {
			fail(c, err)
			return
		}
		cache.InvalidateUser(ctx, rdb, userID)
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Bitcoin sold",
			"btc_amount":  result.BTCAmount.StringFixed(8),
			"cash_amount": result.CashAmount.StringFixed(2),
			"price":       result.Price.StringFixed(2),
		})
	}
}

// TradesHandler lists the wallet's trade log in insertion order.
func TradesHandler(eng *service.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		trades, err := eng.Bitcoin.Trades(c.Request.Context(), userID)
		if err != nil {
			fail(c, err)
			return
		}
		items := make([]TradeResponse, 0, len(trades))
		for _, t := range trades {
			items = append(items, toTradeResponse(t))
		}
		c.JSON(http.StatusOK, gin.H{"trades": items})
	}
}
