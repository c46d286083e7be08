package store

import (
	"context"
	"sync"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
)

// Memory is an in-memory Store used by tests and as a zero-dependency
// fallback. Load returns copies, so callers never alias the stored slices.
type Memory struct {
	mu           sync.RWMutex
	users        []domain.User
	transactions []domain.Transaction
	cards        []domain.Card
	wallets      []domain.BitcoinWallet
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadUsers(context.Context) ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.User(nil), m.users...), nil
}

func (m *Memory) SaveUsers(_ context.Context, users []domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append([]domain.User(nil), users...)
	return nil
}

func (m *Memory) LoadTransactions(context.Context) ([]domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Transaction(nil), m.transactions...), nil
}

func (m *Memory) SaveTransactions(_ context.Context, txs []domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append([]domain.Transaction(nil), txs...)
	return nil
}

func (m *Memory) LoadCards(context.Context) ([]domain.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Card(nil), m.cards...), nil
}

func (m *Memory) SaveCards(_ context.Context, cards []domain.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards = append([]domain.Card(nil), cards...)
	return nil
}

func (m *Memory) LoadWallets(context.Context) ([]domain.BitcoinWallet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyWallets(m.wallets), nil
}

func (m *Memory) SaveWallets(_ context.Context, wallets []domain.BitcoinWallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets = copyWallets(wallets)
	return nil
}

// copyWallets clones the wallet slice including each nested trade log, so
// a loaded copy can be mutated without touching the stored one.
func copyWallets(src []domain.BitcoinWallet) []domain.BitcoinWallet {
	out := make([]domain.BitcoinWallet, len(src))
	for i, w := range src {
		w.Trades = append([]domain.BitcoinTrade(nil), w.Trades...)
		out[i] = w
	}
	return out
}
