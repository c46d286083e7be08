package domain

import (
	"strings"
	"time"
)

// CardType distinguishes debit from credit cards.
type CardType string

const (
	CardDebit  CardType = "debit"
	CardCredit CardType = "credit"
)

// Card holds payment-card metadata for a user. At most one card per user
// is the default whenever the user has at least one card.
type Card struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Number     string    `json:"card_number"`
	HolderName string    `json:"card_name"`
	Expiry     string    `json:"expiry_date"`
	CVV        string    `json:"cvv"`
	Type       CardType  `json:"card_type"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// MaskedNumber returns the card number with all but the last four digits
// replaced, for display.
func (c Card) MaskedNumber() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	return strings.Repeat("*", len(c.Number)-4) + c.Number[len(c.Number)-4:]
}
