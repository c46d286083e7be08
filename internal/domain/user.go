package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account holder: identity fields plus the cash balance.
// Balance is only ever mutated through the account service.
type User struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	Cashtag      string          `json:"cashtag"`
	PasswordHash string          `json:"password_hash"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"created_at"`
}
