package gormstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
)

// Row types mirror the domain records plus an explicit position column,
// since the store contract promises insertion order and a full-set
// replace would otherwise lose it.

type userRow struct {
	Pos          int             `gorm:"primaryKey;autoIncrement:false"`
	ID           string          `gorm:"uniqueIndex;size:36"`
	Username     string          `gorm:"size:64"`
	Email        string          `gorm:"size:128"`
	Cashtag      string          `gorm:"size:64"`
	PasswordHash string          `gorm:"size:128"`
	Balance      decimal.Decimal `gorm:"type:decimal(20,8)"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type transactionRow struct {
	Pos        int             `gorm:"primaryKey;autoIncrement:false"`
	ID         string          `gorm:"uniqueIndex;size:36"`
	SenderID   string          `gorm:"index;size:36"`
	ReceiverID string          `gorm:"index;size:36"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,8)"`
	Note       string          `gorm:"size:255"`
	Kind       string          `gorm:"size:16"`
	CreatedAt  time.Time
}

func (transactionRow) TableName() string { return "transactions" }

type cardRow struct {
	Pos        int    `gorm:"primaryKey;autoIncrement:false"`
	ID         string `gorm:"uniqueIndex;size:36"`
	UserID     string `gorm:"index;size:36"`
	Number     string `gorm:"size:32"`
	HolderName string `gorm:"size:128"`
	Expiry     string `gorm:"size:8"`
	CVV        string `gorm:"size:8"`
	Type       string `gorm:"size:8"`
	IsDefault  bool
	CreatedAt  time.Time
}

func (cardRow) TableName() string { return "cards" }

type walletRow struct {
	Pos       int             `gorm:"primaryKey;autoIncrement:false"`
	ID        string          `gorm:"uniqueIndex;size:36"`
	UserID    string          `gorm:"uniqueIndex;size:36"`
	Balance   decimal.Decimal `gorm:"type:decimal(24,16)"`
	Address   string          `gorm:"size:64"`
	CreatedAt time.Time
}

func (walletRow) TableName() string { return "bitcoin_wallets" }

type tradeRow struct {
	WalletID  string          `gorm:"primaryKey;size:36"`
	Pos       int             `gorm:"primaryKey;autoIncrement:false"`
	ID        string          `gorm:"size:36"`
	Amount    decimal.Decimal `gorm:"type:decimal(24,16)"`
	CashValue decimal.Decimal `gorm:"type:decimal(24,16)"`
	Kind      string          `gorm:"size:8"`
	CreatedAt time.Time
}

func (tradeRow) TableName() string { return "bitcoin_trades" }

func toUserRow(pos int, u domain.User) userRow {
	return userRow{
		Pos:          pos,
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Cashtag:      u.Cashtag,
		PasswordHash: u.PasswordHash,
		Balance:      u.Balance,
		CreatedAt:    u.CreatedAt,
	}
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		Cashtag:      r.Cashtag,
		PasswordHash: r.PasswordHash,
		Balance:      r.Balance,
		CreatedAt:    r.CreatedAt,
	}
}

func toTransactionRow(pos int, t domain.Transaction) transactionRow {
	return transactionRow{
		Pos:        pos,
		ID:         t.ID,
		SenderID:   t.SenderID,
		ReceiverID: t.ReceiverID,
		Amount:     t.Amount,
		Note:       t.Note,
		Kind:       string(t.Kind),
		CreatedAt:  t.CreatedAt,
	}
}

func (r transactionRow) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Amount:     r.Amount,
		Note:       r.Note,
		Kind:       domain.TransactionKind(r.Kind),
		CreatedAt:  r.CreatedAt,
	}
}

func toCardRow(pos int, c domain.Card) cardRow {
	return cardRow{
		Pos:        pos,
		ID:         c.ID,
		UserID:     c.UserID,
		Number:     c.Number,
		HolderName: c.HolderName,
		Expiry:     c.Expiry,
		CVV:        c.CVV,
		Type:       string(c.Type),
		IsDefault:  c.IsDefault,
		CreatedAt:  c.CreatedAt,
	}
}

func (r cardRow) toDomain() domain.Card {
	return domain.Card{
		ID:         r.ID,
		UserID:     r.UserID,
		Number:     r.Number,
		HolderName: r.HolderName,
		Expiry:     r.Expiry,
		CVV:        r.CVV,
		Type:       domain.CardType(r.Type),
		IsDefault:  r.IsDefault,
		CreatedAt:  r.CreatedAt,
	}
}
