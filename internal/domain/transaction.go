package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a cash movement.
type TransactionKind string

const (
	KindPayment    TransactionKind = "payment"
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
)

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case KindPayment, KindDeposit, KindWithdrawal:
		return true
	}
	return false
}

// SelfReferential reports whether the kind models a single-user movement
// (add cash / cash out), where sender and receiver must be the same user.
func (k TransactionKind) SelfReferential() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is an immutable record of a cash movement. Once appended to
// the ledger it is never mutated or removed.
type Transaction struct {
	ID         string          `json:"id"`
	SenderID   string          `json:"sender_id"`
	ReceiverID string          `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
	Kind       TransactionKind `json:"kind"`
	CreatedAt  time.Time       `json:"created_at"`
}
