// Package service implements the ledger engine: account identity, the
// cash ledger, the simulated bitcoin exchange, and the card registry.
// The first three share one mutex so that every balance-affecting
// read-mutate-write cycle against the whole-set store is serialized;
// without it two concurrent Save calls would silently drop one writer's
// update.
package service

import (
	"sync"

	"github.com/XCLUSIIVE05/cashapp/internal/store"
)

// Engine bundles the ledger services over a single store and a single
// ledger lock.
type Engine struct {
	Accounts *AccountService
	Ledger   *LedgerService
	Bitcoin  *BitcoinService
	Cards    *CardService
}

// New wires the services together. price supplies spot quotes for the
// exchange; production passes SimulatedPrice, tests freeze it.
func New(st store.Store, price PriceSource) *Engine {
	mu := &sync.Mutex{}
	accounts := &AccountService{store: st, mu: mu}
	bitcoin := &BitcoinService{store: st, accounts: accounts, price: price, mu: mu}
	accounts.wallets = bitcoin
	ledger := &LedgerService{store: st, accounts: accounts, mu: mu}
	cards := &CardService{store: st}
	return &Engine{
		Accounts: accounts,
		Ledger:   ledger,
		Bitcoin:  bitcoin,
		Cards:    cards,
	}
}
