// Package gormstore binds the store contract to a relational database via
// GORM. Each Save replaces the collection wholesale inside one database
// transaction, so the pair of balance mutation and record append that the
// services perform under their lock commits as a unit per collection.
package gormstore

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/XCLUSIIVE05/cashapp/internal/domain"
)

// Store implements store.Store on top of *gorm.DB.
type Store struct {
	db *gorm.DB
}

// New wraps an open GORM handle. Callers run Migrate (or cmd/migrate)
// before first use.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the collection tables if absent, which also gives each
// collection its empty initial state.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&userRow{}, &transactionRow{}, &cardRow{}, &walletRow{}, &tradeRow{})
	if err != nil {
		return fmt.Errorf("migrate ledger tables: %w", err)
	}
	return nil
}

// replaceAll deletes every row of model inside tx and inserts rows. The
// explicit condition is required because GORM refuses unconditional
// deletes.
func replaceAll[T any](tx *gorm.DB, rows []T) error {
	var zero T
	if err := tx.Where("1 = 1").Delete(&zero).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (s *Store) LoadUsers(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	if err := s.db.WithContext(ctx).Order("pos").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	users := make([]domain.User, len(rows))
	for i, r := range rows {
		users[i] = r.toDomain()
	}
	return users, nil
}

func (s *Store) SaveUsers(ctx context.Context, users []domain.User) error {
	rows := make([]userRow, len(users))
	for i, u := range users {
		rows[i] = toUserRow(i, u)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceAll(tx, rows)
	})
	if err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (s *Store) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var rows []transactionRow
	if err := s.db.WithContext(ctx).Order("pos").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	txs := make([]domain.Transaction, len(rows))
	for i, r := range rows {
		txs[i] = r.toDomain()
	}
	return txs, nil
}

func (s *Store) SaveTransactions(ctx context.Context, txs []domain.Transaction) error {
	rows := make([]transactionRow, len(txs))
	for i, t := range txs {
		rows[i] = toTransactionRow(i, t)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceAll(tx, rows)
	})
	if err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	return nil
}

func (s *Store) LoadCards(ctx context.Context) ([]domain.Card, error) {
	var rows []cardRow
	if err := s.db.WithContext(ctx).Order("pos").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	cards := make([]domain.Card, len(rows))
	for i, r := range rows {
		cards[i] = r.toDomain()
	}
	return cards, nil
}

func (s *Store) SaveCards(ctx context.Context, cards []domain.Card) error {
	rows := make([]cardRow, len(cards))
	for i, c := range cards {
		rows[i] = toCardRow(i, c)
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceAll(tx, rows)
	})
	if err != nil {
		return fmt.Errorf("save cards: %w", err)
	}
	return nil
}

func (s *Store) LoadWallets(ctx context.Context) ([]domain.BitcoinWallet, error) {
	var wRows []walletRow
	if err := s.db.WithContext(ctx).Order("pos").Find(&wRows).Error; err != nil {
		return nil, fmt.Errorf("load wallets: %w", err)
	}
	var tRows []tradeRow
	if err := s.db.WithContext(ctx).Order("wallet_id, pos").Find(&tRows).Error; err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}

	tradesByWallet := make(map[string][]tradeRow)
	for _, r := range tRows {
		tradesByWallet[r.WalletID] = append(tradesByWallet[r.WalletID], r)
	}
	wallets := make([]domain.BitcoinWallet, len(wRows))
	for i, r := range wRows {
		rows := tradesByWallet[r.ID]
		sort.Slice(rows, func(a, b int) bool { return rows[a].Pos < rows[b].Pos })
		trades := make([]domain.BitcoinTrade, len(rows))
		for j, t := range rows {
			trades[j] = domain.BitcoinTrade{
				ID:        t.ID,
				Amount:    t.Amount,
				CashValue: t.CashValue,
				Kind:      domain.TradeKind(t.Kind),
				CreatedAt: t.CreatedAt,
			}
		}
		wallets[i] = domain.BitcoinWallet{
			ID:        r.ID,
			UserID:    r.UserID,
			Balance:   r.Balance,
			Address:   r.Address,
			CreatedAt: r.CreatedAt,
			Trades:    trades,
		}
	}
	return wallets, nil
}

func (s *Store) SaveWallets(ctx context.Context, wallets []domain.BitcoinWallet) error {
	wRows := make([]walletRow, len(wallets))
	var tRows []tradeRow
	for i, w := range wallets {
		wRows[i] = walletRow{
			Pos:       i,
			ID:        w.ID,
			UserID:    w.UserID,
			Balance:   w.Balance,
			Address:   w.Address,
			CreatedAt: w.CreatedAt,
		}
		for j, t := range w.Trades {
			tRows = append(tRows, tradeRow{
				WalletID:  w.ID,
				Pos:       j,
				ID:        t.ID,
				Amount:    t.Amount,
				CashValue: t.CashValue,
				Kind:      string(t.Kind),
				CreatedAt: t.CreatedAt,
			})
		}
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := replaceAll(tx, wRows); err != nil {
			return err
		}
		return replaceAll(tx, tRows)
	})
	if err != nil {
		return fmt.Errorf("save wallets: %w", err)
	}
	return nil
}
