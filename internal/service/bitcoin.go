package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
	"github.com/XCLUSIIVE05/cashapp/internal/store"
)

// PriceSource returns one simulated spot price per call. A quote is valid
// only for the single operation that requested it.
type PriceSource func() decimal.Decimal

// SimulatedPrice samples a fresh spot price: a 30 000 base with a uniform
// perturbation in [-1000, +1000], rounded to cents like a displayed quote.
func SimulatedPrice() decimal.Decimal {
	perturbation := rand.Float64()*2000 - 1000
	return decimal.NewFromFloat(30000 + perturbation).Round(2)
}

const addressAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newAddress builds a simulated bech32-looking wallet address: the fixed
// bc1q prefix plus 38 pseudo-random lowercase alphanumerics.
func newAddress() string {
	var b strings.Builder
	b.WriteString("bc1q")
	for i := 0; i < 38; i++ {
		b.WriteByte(addressAlphabet[rand.Intn(len(addressAlphabet))])
	}
	return b.String()
}

// TradeResult reports both legs of an executed trade and the single quote
// they were priced at.
type TradeResult struct {
	BTCAmount  decimal.Decimal
	CashAmount decimal.Decimal
	Price      decimal.Decimal
}

// BitcoinService owns one wallet per user and converts between the cash
// balance and the BTC balance at a simulated spot price.
type BitcoinService struct {
	store    store.Store
	accounts *AccountService
	price    PriceSource
	mu       *sync.Mutex
}

// Quote samples the current simulated spot price. The result is not
// cached; compound operations take their own single quote internally.
func (s *BitcoinService) Quote() decimal.Decimal {
	return s.price()
}

// CreateWallet provisions the user's wallet with a zero BTC balance and an
// empty trade log. A second call for the same user fails with
// domain.ErrWalletExists and leaves the single existing record in place.
func (s *BitcoinService) CreateWallet(ctx context.Context, userID string) (*domain.BitcoinWallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createWallet(ctx, userID)
}

func (s *BitcoinService) createWallet(ctx context.Context, userID string) (*domain.BitcoinWallet, error) {
	wallets, err := s.store.LoadWallets(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range wallets {
		if w.UserID == userID {
			return nil, fmt.Errorf("user %s: %w", userID, domain.ErrWalletExists)
		}
	}
	wallet := domain.BitcoinWallet{
		ID:        uuid.NewString(),
		UserID:    userID,
		Balance:   decimal.Zero,
		Address:   newAddress(),
		CreatedAt: time.Now().UTC(),
		Trades:    []domain.BitcoinTrade{},
	}
	if err := s.store.SaveWallets(ctx, append(wallets, wallet)); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"address": wallet.Address,
	}).Info("bitcoin wallet created")
	return &wallet, nil
}

// Wallet returns the user's wallet.
func (s *BitcoinService) Wallet(ctx context.Context, userID string) (*domain.BitcoinWallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallets, err := s.store.LoadWallets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range wallets {
		if wallets[i].UserID == userID {
			return &wallets[i], nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", userID, domain.ErrWalletNotFound)
}

// Buy converts cashAmount of the user's cash balance into BTC at one
// quote: the cash balance is debited, the wallet credited with
// cashAmount/price, and a buy trade appended — all under the ledger lock.
func (s *BitcoinService) Buy(ctx context.Context, userID string, cashAmount decimal.Decimal) (*TradeResult, error) {
	if cashAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%s: %w", cashAmount, domain.ErrNonPositiveAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.accounts.findByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	wallets, err := s.store.LoadWallets(ctx)
	if err != nil {
		return nil, err
	}
	idx := walletIndex(wallets, userID)
	if idx < 0 {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrWalletNotFound)
	}
	if user.Balance.LessThan(cashAmount) {
		return nil, fmt.Errorf("user %s has %s, needs %s: %w",
			userID, user.Balance, cashAmount, domain.ErrInsufficientFunds)
	}

	// One quote per operation: the same price converts the cash leg and is
	// recorded on the trade. The division result is carried unrounded so
	// repeated trades do not compound rounding error.
	price := s.price()
	btcAmount := cashAmount.Div(price)

	if err := s.accounts.applyDeltas(ctx, balanceDelta{userID: userID, delta: cashAmount.Neg()}); err != nil {
		return nil, err
	}
	wallets[idx].Balance = wallets[idx].Balance.Add(btcAmount)
	wallets[idx].Trades = append(wallets[idx].Trades, domain.BitcoinTrade{
		ID:        uuid.NewString(),
		Amount:    btcAmount,
		CashValue: cashAmount,
		Kind:      domain.TradeBuy,
		CreatedAt: time.Now().UTC(),
	})
	if err := s.store.SaveWallets(ctx, wallets); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"btc":     btcAmount.String(),
		"cash":    cashAmount.String(),
		"price":   price.String(),
	}).Info("bitcoin bought")
	return &TradeResult{BTCAmount: btcAmount, CashAmount: cashAmount, Price: price}, nil
}

// Sell converts btcAmount of the wallet balance back into cash at one
// quote: the wallet is debited, the cash balance credited with
// btcAmount*price, and a sell trade appended.
func (s *BitcoinService) Sell(ctx context.Context, userID string, btcAmount decimal.Decimal) (*TradeResult, error) {
	if btcAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%s: %w", btcAmount, domain.ErrNonPositiveAmount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.accounts.findByID(ctx, userID); err != nil {
		return nil, err
	}
	wallets, err := s.store.LoadWallets(ctx)
	if err != nil {
		return nil, err
	}
	idx := walletIndex(wallets, userID)
	if idx < 0 {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrWalletNotFound)
	}
	if wallets[idx].Balance.LessThan(btcAmount) {
		return nil, fmt.Errorf("user %s has %s BTC, needs %s: %w",
			userID, wallets[idx].Balance, btcAmount, domain.ErrInsufficientBitcoin)
	}

	price := s.price()
	cashAmount := btcAmount.Mul(price)

	// The debited wallet is saved before the cash credit, so an
	// interrupted sell can lose bitcoin but never mint cash.
	wallets[idx].Balance = wallets[idx].Balance.Sub(btcAmount)
	wallets[idx].Trades = append(wallets[idx].Trades, domain.BitcoinTrade{
		ID:        uuid.NewString(),
		Amount:    btcAmount,
		CashValue: cashAmount,
		Kind:      domain.TradeSell,
		CreatedAt: time.Now().UTC(),
	})
	if err := s.store.SaveWallets(ctx, wallets); err != nil {
		return nil, err
	}
	if err := s.accounts.applyDeltas(ctx, balanceDelta{userID: userID, delta: cashAmount}); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"btc":     btcAmount.String(),
		"cash":    cashAmount.String(),
		"price":   price.String(),
	}).Info("bitcoin sold")
	return &TradeResult{BTCAmount: btcAmount, CashAmount: cashAmount, Price: price}, nil
}

// Trades returns the wallet's trade log in execution order.
func (s *BitcoinService) Trades(ctx context.Context, userID string) ([]domain.BitcoinTrade, error) {
	wallet, err := s.Wallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	return wallet.Trades, nil
}

func walletIndex(wallets []domain.BitcoinWallet, userID string) int {
	for i := range wallets {
		if wallets[i].UserID == userID {
			return i
		}
	}
	return -1
}
