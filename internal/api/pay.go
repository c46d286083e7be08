package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/XCLUSIIVE05/cashapp/internal/cache"
	"github.com/XCLUSIIVE05/cashapp/internal/domain"
	"github.com/XCLUSIIVE05/cashapp/internal/service"
)

// TransferRequest moves cash from the authenticated user to another user,
// addressed by cashtag (with or without the leading $) or email.
type TransferRequest struct {
	Recipient string          `json:"recipient" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Note      string          `json:"note"`
}

// AmountRequest carries a bare cash amount for deposits and withdrawals.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// TransactionResponse is a single ledger entry as rendered to clients.
type TransactionResponse struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Amount     string `json:"amount"`
	Note       string `json:"note,omitempty"`
	Kind       string `json:"kind"`
	CreatedAt  string `json:"created_at"`
}

func toTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		SenderID:   t.SenderID,
		ReceiverID: t.ReceiverID,
		Amount:     t.Amount.StringFixed(2),
		Note:       t.Note,
		Kind:       string(t.Kind),
		CreatedAt:  t.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// TransferHandler sends cash to another user.
func TransferHandler(eng *service.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req TransferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()

		recipient, err := resolveRecipient(c, eng, req.Recipient)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
			return
		}
		if recipient.ID == userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot pay yourself"})
			return
		}

		tx, err := eng.Ledger.Transfer(ctx, userID, recipient.ID, req.Amount, req.Note, domain.KindPayment)
		if err != nil {
			fail(c, err)
			return
		}
		cache.InvalidateUser(ctx, rdb, userID)
		cache.InvalidateUser(ctx, rdb, recipient.ID)
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Payment sent",
			"transaction": toTransactionResponse(*tx),
		})
	}
}

func resolveRecipient(c *gin.Context, eng *service.Engine, handle string) (*domain.User, error) {
	ctx := c.Request.Context()
	if strings.Contains(handle, "@") {
		return eng.Accounts.FindByEmail(ctx, strings.ToLower(handle))
	}
	return eng.Accounts.FindByCashtag(ctx, strings.TrimPrefix(handle, "$"))
}

// DepositHandler adds external cash to the user's balance.
func DepositHandler(eng *service.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req AmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		tx, err := eng.Ledger.Transfer(ctx, userID, userID, req.Amount, "Deposit", domain.KindDeposit)
		if err != nil {
			fail(c, err)
			return
		}
		cache.InvalidateUser(ctx, rdb, userID)
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Deposit complete",
			"transaction": toTransactionResponse(*tx),
		})
	}
}

// WithdrawHandler moves cash out to a linked card. At least one card must
// be registered before a withdrawal is allowed.
func WithdrawHandler(eng *service.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req AmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()

		cards, err := eng.Cards.ListCards(ctx, userID)
		if err != nil {
			fail(c, err)
			return
		}
		if len(cards) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No card on file for withdrawals"})
			return
		}

		tx, err := eng.Ledger.Transfer(ctx, userID, userID, req.Amount, "Withdrawal", domain.KindWithdrawal)
		if err != nil {
			fail(c, err)
			return
		}
		cache.InvalidateUser(ctx, rdb, userID)
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"amount":  req.Amount.StringFixed(2),
		}).Info("Withdrawal complete")
		c.JSON(http.StatusCreated, gin.H{
			"message":     "Withdrawal complete",
			"transaction": toTransactionResponse(*tx),
		})
	}
}

// HistoryHandler lists the user's transactions in ledger order, paginated
// by page/page_size query parameters, with per-page redis caching.
func HistoryHandler(eng *service.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 20
		}

		key := cache.HistoryKey(userID, page, pageSize)
		var cached gin.H
		if hit, err := cache.Get(ctx, rdb, key, &cached); err != nil {
			logrus.WithError(err).Warn("History cache lookup failed")
		} else if hit {
			c.JSON(http.StatusOK, cached)
			return
		}

		history, err := eng.Ledger.History(ctx, userID)
		if err != nil {
			fail(c, err)
			return
		}

		total := len(history)
		start := (page - 1) * pageSize
		if start > total {
			start = total
		}
		end := start + pageSize
		if end > total {
			end = total
		}
		items := make([]TransactionResponse, 0, end-start)
		for _, t := range history[start:end] {
			items = append(items, toTransactionResponse(t))
		}

		resp := gin.H{
			"transactions": items,
			"page":         page,
			"page_size":    pageSize,
			"total":        total,
		}
		if err := cache.Set(ctx, rdb, key, resp); err != nil {
			logrus.WithError(err).Warn("History cache store failed")
		}
		c.JSON(http.StatusOK, resp)
	}
}
