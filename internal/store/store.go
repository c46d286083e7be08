// Package store defines the persistence contract for the ledger engine:
// four independent record sets, each loaded and saved wholesale. There is
// no field-level update primitive, so every mutation is a full
// load-mutate-save cycle; serializing those cycles is the caller's job.
package store

import (
	"context"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
)

// Store is the injectable persistence boundary. Load returns records in
// insertion order; Save replaces the whole set. Implementations must not
// expose partial-collection mutation and must round-trip monetary fields
// without precision loss. An absent collection loads as an empty set.
type Store interface {
	LoadUsers(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error

	LoadTransactions(ctx context.Context) ([]domain.Transaction, error)
	SaveTransactions(ctx context.Context, txs []domain.Transaction) error

	LoadCards(ctx context.Context) ([]domain.Card, error)
	SaveCards(ctx context.Context, cards []domain.Card) error

	LoadWallets(ctx context.Context) ([]domain.BitcoinWallet, error)
	SaveWallets(ctx context.Context, wallets []domain.BitcoinWallet) error
}
