package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
	"github.com/XCLUSIIVE05/cashapp/internal/store"
)

// LedgerService records cash movements between users and keeps balances
// consistent with the append-only transaction log.
type LedgerService struct {
	store    store.Store
	accounts *AccountService
	mu       *sync.Mutex
}

// Transfer moves amount between sender and receiver according to kind and
// appends exactly one Transaction on success. Payments and withdrawals
// debit the sender; payments and deposits credit the receiver. Deposits
// and withdrawals are self-referential, so sender and receiver must match.
// Non-positive amounts are rejected here rather than trusted to callers.
func (s *LedgerService) Transfer(ctx context.Context, senderID, receiverID string, amount decimal.Decimal, note string, kind domain.TransactionKind) (*domain.Transaction, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%q: %w", kind, domain.ErrUnknownKind)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("%s: %w", amount, domain.ErrNonPositiveAmount)
	}
	if kind.SelfReferential() && senderID != receiverID {
		return nil, domain.ErrMismatchedParties
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sender, err := s.accounts.findByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accounts.findByID(ctx, receiverID); err != nil {
		return nil, err
	}

	debits := kind == domain.KindPayment || kind == domain.KindWithdrawal
	credits := kind == domain.KindPayment || kind == domain.KindDeposit
	if debits && sender.Balance.LessThan(amount) {
		return nil, fmt.Errorf("user %s has %s, needs %s: %w",
			senderID, sender.Balance, amount, domain.ErrInsufficientFunds)
	}

	// Debit before credit, applied to one loaded copy of the user set and
	// saved once, so the two legs cannot be split by a crash.
	var deltas []balanceDelta
	if debits {
		deltas = append(deltas, balanceDelta{userID: senderID, delta: amount.Neg()})
	}
	if credits {
		deltas = append(deltas, balanceDelta{userID: receiverID, delta: amount})
	}
	if err := s.accounts.applyDeltas(ctx, deltas...); err != nil {
		return nil, err
	}

	txs, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	tx := domain.Transaction{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Note:       note,
		Kind:       kind,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.SaveTransactions(ctx, append(txs, tx)); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"tx_id":       tx.ID,
		"sender_id":   senderID,
		"receiver_id": receiverID,
		"amount":      amount.String(),
		"kind":        string(kind),
	}).Info("transaction recorded")
	return &tx, nil
}

// History returns every transaction where the user is sender or receiver,
// oldest first.
func (s *LedgerService) History(ctx context.Context, userID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Transaction
	for _, tx := range txs {
		if tx.SenderID == userID || tx.ReceiverID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}
