package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeKind classifies a wallet-scoped trade.
type TradeKind string

const (
	TradeBuy  TradeKind = "buy"
	TradeSell TradeKind = "sell"
)

// BitcoinTrade is an immutable record nested under a wallet: the BTC
// amount moved and its cash value at execution time.
type BitcoinTrade struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	CashValue decimal.Decimal `json:"cash_value"`
	Kind      TradeKind       `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}

// BitcoinWallet is the single BTC holding for a user, with its ordered
// append-only trade log.
type BitcoinWallet struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"btc_balance"`
	Address   string          `json:"address"`
	CreatedAt time.Time       `json:"created_at"`
	Trades    []BitcoinTrade  `json:"trades"`
}
