package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
	"github.com/XCLUSIIVE05/cashapp/internal/service"
)

// AddCardRequest links a new debit or credit card to the account.
type AddCardRequest struct {
	Number     string `json:"number" binding:"required"`
	HolderName string `json:"holder_name" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
	Type       string `json:"type" binding:"required"`
}

// CardResponse is a linked card with its number masked.
type CardResponse struct {
	ID           string `json:"id"`
	MaskedNumber string `json:"masked_number"`
	HolderName   string `json:"holder_name"`
	Expiry       string `json:"expiry"`
	Type         string `json:"type"`
	IsDefault    bool   `json:"is_default"`
}

func toCardResponse(c domain.Card) CardResponse {
	return CardResponse{
		ID:           c.ID,
		MaskedNumber: c.MaskedNumber(),
		HolderName:   c.HolderName,
		Expiry:       c.Expiry,
		Type:         string(c.Type),
		IsDefault:    c.IsDefault,
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// isValidCardNumber checks a 16-digit card number.
func isValidCardNumber(number string) bool {
	return len(number) == 16 && allDigits(number)
}

// isValidCVV checks a 3-digit security code.
func isValidCVV(cvv string) bool {
	return len(cvv) == 3 && allDigits(cvv)
}

// AddCardHandler registers a card for the user. The first card becomes
// the default for withdrawals.
func AddCardHandler(eng *service.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req AddCardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		number := strings.ReplaceAll(req.Number, " ", "")
		if !isValidCardNumber(number) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card number must be 16 digits"})
			return
		}
		if !isValidCVV(req.CVV) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "CVV must be 3 digits"})
			return
		}
		kind := domain.CardType(strings.ToLower(req.Type))
		if kind != domain.CardDebit && kind != domain.CardCredit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Card type must be debit or credit"})
			return
		}

		card, err := eng.Cards.AddCard(c.Request.Context(), userID, number, req.HolderName, req.Expiry, req.CVV, kind)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Card added",
			"card":    toCardResponse(*card),
		})
	}
}

// ListCardsHandler lists the user's cards with masked numbers.
func ListCardsHandler(eng *service.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		cards, err := eng.Cards.ListCards(c.Request.Context(), userID)
		if err != nil {
			fail(c, err)
			return
		}
		items := make([]CardResponse, 0, len(cards))
		for _, card := range cards {
			items = append(items, toCardResponse(card))
		}
		c.JSON(http.StatusOK, gin.H{"cards": items})
	}
}

// RemoveCardHandler unlinks a card. Removing the default card promotes the
// oldest remaining card to default.
func RemoveCardHandler(eng *service.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		cardID := c.Param("id")
		if err := eng.Cards.RemoveCard(c.Request.Context(), cardID, userID); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Card removed"})
	}
}
